package control

import "github.com/wattctl/poet/pkg/numeric"

// newFilterState returns a Kalman filter state initialized to the shared
// starting constants (spec.md 3).
func newFilterState() filterState {
	return filterState{
		xHatMinus: xHatMinusStart,
		xHat:      xHatStart,
		pMinus:    pMinusStart,
		h:         hStart,
		k:         kStart,
		p:         pStart,
	}
}

// estimateBaseWorkload runs one step of the scalar Kalman recursion
// (spec.md 4.2) and returns the estimated per-iteration workload that would
// be incurred with no multiplier applied: w = 1 / x_hat.
//
//	x_hat_minus <- x_hat      ;  p_minus <- p + Q
//	h           <- u
//	k           <- (p_minus * h) / (h * p_minus * h + R)
//	x_hat       <- x_hat_minus + k * (y - h * x_hat_minus)
//	p           <- (1 - k * h) * p_minus
//
// y is the most recently observed metric (rate or power); u is the most
// recently applied multiplier. R > 0 guarantees the denominator in k's
// update is never zero, so this never fails.
func estimateBaseWorkload(y, u Real, s *filterState) Real {
	s.xHatMinus = s.xHat
	s.pMinus = s.p.Add(processNoiseQ)

	s.h = u
	s.k = s.pMinus.Mul(s.h).Div(s.h.Mul3(s.pMinus, s.h).Add(measurementNoiseR))
	s.xHat = s.xHatMinus.Add(s.k.Mul(y.Sub(s.h.Mul(s.xHatMinus))))
	s.p = numeric.One.Sub(s.k.Mul(s.h)).Mul(s.pMinus)

	return numeric.One.Div(s.xHat)
}
