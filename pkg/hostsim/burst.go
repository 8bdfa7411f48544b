package hostsim

import "math/rand"

// BurstRandomizer periodically scales the rate up for a run of iterations,
// modelling a workload spike (spec.md 8, "burst" scenarios). Adapted from
// the teacher's block-size burst mode, retargeted to rate/ceiling floats.
type BurstRandomizer struct {
	rng *rand.Rand

	burstProbability float64
	burstDurationMin int
	burstDurationMax int
	burstIntensity   float64

	inBurstMode    bool
	burstItersLeft int
}

func NewBurstRandomizer(seed int64, burstProbability float64, burstDurationMin, burstDurationMax int, burstIntensity float64) *BurstRandomizer {
	return &BurstRandomizer{
		rng:              rand.New(rand.NewSource(seed)),
		burstProbability: burstProbability,
		burstDurationMin: burstDurationMin,
		burstDurationMax: burstDurationMax,
		burstIntensity:   burstIntensity,
	}
}

// Reset clears any in-progress burst, for reuse across scenario runs.
func (s *BurstRandomizer) Reset() {
	s.inBurstMode = false
	s.burstItersLeft = 0
}

func (s *BurstRandomizer) AddRandomness(rate, ceiling float64) float64 {
	if s.burstProbability == 0 {
		return rate
	}

	if s.inBurstMode {
		s.burstItersLeft--
		if s.burstItersLeft <= 0 {
			s.inBurstMode = false
		}
	} else if s.rng.Float64() < s.burstProbability {
		s.inBurstMode = true
		s.burstItersLeft = s.burstDurationMin + s.rng.Intn(s.burstDurationMax-s.burstDurationMin+1)
	}

	if s.inBurstMode {
		result := rate * s.burstIntensity
		if result > ceiling {
			result = ceiling
		}
		return result
	}
	return rate
}
