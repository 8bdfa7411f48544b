package hostsim

import "math/rand"

// Randomizer perturbs a target rate, clamped to the scenario's ceiling. It
// is the same composable-decorator shape the teacher uses for gas-used
// jitter, retargeted from uint64 gas quantities to float64 rates.
type Randomizer interface {
	AddRandomness(rate, ceiling float64) float64
}

// CompoundRandomizer chains randomizers, feeding each one's output into the
// next.
type CompoundRandomizer struct {
	randomizers []Randomizer
}

func NewCompoundRandomizer(randomizers ...Randomizer) *CompoundRandomizer {
	return &CompoundRandomizer{randomizers: randomizers}
}

func (r *CompoundRandomizer) AddRandomness(rate, ceiling float64) float64 {
	for _, randomizer := range r.randomizers {
		rate = randomizer.AddRandomness(rate, ceiling)
	}
	return rate
}

// GaussianNoise perturbs a rate with mean-zero gaussian jitter.
type GaussianNoise struct {
	rng    *rand.Rand
	stdDev float64
}

func NewGaussianNoise(seed int64, stdDev float64) *GaussianNoise {
	return &GaussianNoise{
		rng:    rand.New(rand.NewSource(seed)),
		stdDev: stdDev,
	}
}

func (s *GaussianNoise) AddRandomness(rate, ceiling float64) float64 {
	if s.stdDev == 0 {
		return rate
	}

	noise := s.rng.NormFloat64() * s.stdDev
	multiplier := 1.0 + noise

	result := rate * multiplier
	if result < 0 {
		result = 0
	}
	if result > ceiling {
		result = ceiling
	}
	return result
}
