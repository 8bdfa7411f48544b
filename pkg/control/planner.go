package control

import "github.com/wattctl/poet/pkg/numeric"

// planResult names the winning (lower, upper) configuration pair and the
// timing the solver derived for it.
type planResult struct {
	lowerID int
	upperID int
	timeDivisionResult
}

// controlledMetric is the quantity the goal constrains: the relative
// performance for a PERFORMANCE goal, the relative cost for a POWER goal
// (spec.md 4.5).
func controlledMetric(constraint ConstraintType, s SystemState) Real {
	if constraint == Power {
		return s.Cost
	}
	return s.Speedup
}

// secondaryMetric is the quantity tracked but not constrained: the relative
// cost under a PERFORMANCE goal, the relative performance under a POWER
// goal.
func secondaryMetric(constraint ConstraintType, s SystemState) Real {
	if constraint == Power {
		return s.Speedup
	}
	return s.Cost
}

// planConfiguration is the N^2 search (spec.md 4.5): for every (upper,
// lower) pair of table entries that brackets target on the controlled
// metric, solve the time division and keep the pair that optimizes the
// secondary metric (minimize for PERFORMANCE, maximize for POWER). Ties
// keep the first pair found, matching the reference's nested-loop order.
func planConfiguration(table []SystemState, target Real, constraint ConstraintType, disableIdle bool, workload Real, period int) (planResult, bool) {
	var best planResult
	var bestCost Real
	found := false

	for i, upper := range table {
		upperXup := controlledMetric(constraint, upper)
		if upperXup.Less(target) || upperXup.Less(numeric.One) {
			continue
		}

		for j, lower := range table {
			lowerXup := controlledMetric(constraint, lower)
			if lowerXup.Greater(target) {
				continue
			}
			if lowerXup.Less(numeric.One) && disableIdle {
				continue
			}

			var partnerXup, partnerCost Real
			if lower.IsIdle() {
				partner := table[lower.IdlePartnerID]
				partnerXup = controlledMetric(constraint, partner)
				partnerCost = secondaryMetric(constraint, partner)
			}

			res := calculateTimeDivision(period,
				lowerXup, upperXup, partnerXup,
				secondaryMetric(constraint, lower), secondaryMetric(constraint, upper), partnerCost,
				target, workload)

			better := false
			switch constraint {
			case Power:
				better = res.costEstimate.Greater(bestCost)
			default:
				better = res.costEstimate.Less(bestCost)
			}

			if !found || better {
				found = true
				bestCost = res.costEstimate
				best = planResult{lowerID: j, upperID: i, timeDivisionResult: res}
			}
		}
	}

	return best, found
}
