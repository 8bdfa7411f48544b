package control

import "github.com/wattctl/poet/pkg/numeric"

// timeDivisionResult is what calculateTimeDivision writes back onto the
// session for the currently-proposed (lowerID, upperID) pair (spec.md 4.4).
type timeDivisionResult struct {
	lowStateIters   int
	idleNS          uint64
	costEstimate    Real
	costXupEstimate Real
}

// calculateTimeDivision solves for the fraction of the next control period
// spent in the lower configuration (or, for an idle lower configuration,
// the idle sub-iteration), given the target multiplier and the estimated
// base workload. lowerXup/upperXup/partnerXup are the controlled metric for
// the lower, upper, and idle-partner entries; the *_cost variants are the
// secondary metric (spec.md 4.4's "cost = speedup when constraint is POWER,
// cost = cost when constraint is PERFORMANCE").
func calculateTimeDivision(period int, lowerXup, upperXup, partnerXup, lowerCost, upperCost, partnerCost, targetXup, workload Real) timeDivisionResult {
	rPeriod := numeric.FromInt(period)

	if lowerXup.Less(numeric.One) {
		return calculateIdleTimeDivision(rPeriod, period, lowerXup, upperXup, partnerXup, lowerCost, upperCost, partnerCost, targetXup, workload)
	}
	return calculateNonIdleTimeDivision(rPeriod, period, lowerXup, upperXup, lowerCost, upperCost, targetXup)
}

// calculateNonIdleTimeDivision is the lowerXup >= 1 branch: solve
// 1/tau = x/lower + (1-x)/upper for x, the fraction of the period spent in
// the lower configuration.
func calculateNonIdleTimeDivision(rPeriod Real, period int, lowerXup, upperXup, lowerCost, upperCost, targetXup Real) timeDivisionResult {
	var rLowStateIters Real
	if upperXup.Equal(lowerXup) {
		rLowStateIters = numeric.Zero
	} else {
		x := upperXup.Mul(lowerXup).Sub(targetXup.Mul(lowerXup)).
			Div(upperXup.Mul(targetXup).Sub(targetXup.Mul(lowerXup)))
		rLowStateIters = rPeriod.Mul(x)
	}

	lowStateIters := rLowStateIters.ToInt()
	rActualLow := numeric.FromInt(lowStateIters)

	cost := rActualLow.Div(lowerXup).Mul(lowerCost).
		Add(rPeriod.Sub(rActualLow).Div(upperXup).Mul(upperCost))
	costXup := rActualLow.Mul(lowerCost).Add(rPeriod.Sub(rActualLow).Mul(upperCost)).Div(rPeriod)

	return timeDivisionResult{
		lowStateIters:   lowStateIters,
		idleNS:          0,
		costEstimate:    cost,
		costXupEstimate: costXup,
	}
}

// calculateIdleTimeDivision is the lowerXup < 1 branch: the lower
// configuration runs once and only for a fraction of an iteration.
func calculateIdleTimeDivision(rPeriod Real, period int, lowerXup, upperXup, partnerXup, lowerCost, upperCost, partnerCost, targetXup, workload Real) timeDivisionResult {
	// period/target = 1/hybrid + (period-1)/upper, solved for hybrid.
	hybridXup := targetXup.Mul(upperXup).
		Div(rPeriod.Mul(upperXup.Sub(targetXup)).Add(targetXup))

	if hybridXup.Greater(partnerXup) || hybridXup.Equal(partnerXup) {
		// A single hybrid iteration is already too fast to include idling.
		cost := rPeriod.Div(upperXup).Mul(upperCost)
		return timeDivisionResult{
			lowStateIters:   0,
			idleNS:          0,
			costEstimate:    cost,
			costXupEstimate: upperCost,
		}
	}

	var x, hybridCost Real
	if lowerXup.Less(numeric.Zero) || lowerXup.Equal(numeric.Zero) {
		// True idle: zero throughput during the idle portion.
		x = numeric.One.Sub(hybridXup.Div(partnerXup))
		hybridCost = x.Mul(lowerCost).Add(numeric.One.Sub(x).Mul(partnerCost))
	} else {
		x = lowerXup.Mul(hybridXup.Sub(partnerXup)).
			Div(hybridXup.Mul(lowerXup.Sub(partnerXup)))
		hybridCost = x.Div(lowerXup).Mul(lowerCost).
			Add(numeric.One.Sub(x).Div(partnerXup).Mul(partnerCost))
	}

	idleSec := workload.Mul(numeric.One.Div(hybridXup).Sub(x.Div(partnerXup)))
	idleNS := idleSec.Mul(numeric.Const(1e9)).ToInt()

	cost := numeric.One.Div(hybridXup).Mul(hybridCost).
		Add(rPeriod.Sub(numeric.One).Div(upperXup).Mul(upperCost))
	costXup := hybridCost.Add(rPeriod.Sub(numeric.One).Mul(upperCost)).Div(rPeriod)

	return timeDivisionResult{
		lowStateIters:   1,
		idleNS:          uint64(idleNS),
		costEstimate:    cost,
		costXupEstimate: costXup,
	}
}
