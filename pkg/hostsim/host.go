package hostsim

import (
	"github.com/wattctl/poet/pkg/control"
	"github.com/wattctl/poet/pkg/numeric"
)

// Host is a synthetic system that exposes the Apply/Current collaborators
// control.Init expects (spec.md 3) and reports the rate/cost a real system
// running its active configuration would produce under a given demand.
type Host struct {
	table     []control.SystemState
	currentID int

	Noise     Randomizer
	NoiseCeil float64

	appliedCount int
	idleTotalNS  uint64
}

// NewHost creates a host starting on startID.
func NewHost(table []control.SystemState, startID int) *Host {
	return &Host{table: table, currentID: startID}
}

// Apply satisfies control.ApplyFunc: it idles for idleNS (conceptually;
// this simulation only accounts the duration) then switches the active
// configuration.
func (h *Host) Apply(states control.ApplyStates, n, newID, lastID int, idleNS uint64, isFirstApply bool) {
	h.currentID = newID
	h.appliedCount++
	h.idleTotalNS += idleNS
}

// Current satisfies control.CurrentFunc.
func (h *Host) Current(states control.ApplyStates, n int) (int, error) {
	return h.currentID, nil
}

// CurrentID reports the active configuration id.
func (h *Host) CurrentID() int { return h.currentID }

// AppliedCount reports how many times Apply has been called.
func (h *Host) AppliedCount() int { return h.appliedCount }

// IdleNanos reports the cumulative idle duration Apply has been asked to
// spend.
func (h *Host) IdleNanos() uint64 { return h.idleTotalNS }

// Observe reports the rate/cost the active configuration would produce
// under demand (a Scenario's target rate: its multiplier pattern scaled by
// the baseline), with the rate perturbed by Noise when configured.
func (h *Host) Observe(demand float64) (rate, cost control.Real) {
	s := h.table[h.currentID]
	r := s.Speedup.ToFloat64() * demand
	c := s.Cost.ToFloat64() * demand
	if h.Noise != nil {
		r = h.Noise.AddRandomness(r, h.NoiseCeil)
	}
	return numeric.Const(r), numeric.Const(c)
}

// RunResult is the tick-by-tick trace of one scenario run, the input to
// RunDetailedAnalysis and pkg/visualization.
type RunResult struct {
	ScenarioName string
	Rates        []float64
	Costs        []float64
	ChosenIDs    []int
	IdleNS       []uint64
}

// Run drives ctrl across scenario's target rates, one ApplyControl call per
// entry, and returns the full trace.
func Run(ctrl *control.Controller, host *Host, scenario Scenario) (RunResult, error) {
	result := RunResult{ScenarioName: scenario.Name}
	for n, demand := range scenario.TargetRates {
		rate, cost := host.Observe(demand)
		if err := ctrl.ApplyControl(n, rate, cost); err != nil {
			return result, err
		}
		result.Rates = append(result.Rates, rate.ToFloat64())
		result.Costs = append(result.Costs, cost.ToFloat64())
		result.ChosenIDs = append(result.ChosenIDs, host.CurrentID())
	}
	return result, nil
}
