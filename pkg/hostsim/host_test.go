package hostsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattctl/poet/pkg/control"
	"github.com/wattctl/poet/pkg/numeric"
)

func twoStateTable() []control.SystemState {
	return []control.SystemState{
		{Speedup: numeric.Const(1), Cost: numeric.Const(1)},
		{Speedup: numeric.Const(2), Cost: numeric.Const(3)},
	}
}

func TestRunDrivesControllerAcrossScenario(t *testing.T) {
	host := NewHost(twoStateTable(), 1)
	ctrl, err := control.Init(control.Config{
		Table:          twoStateTable(),
		Goal:           numeric.Const(1.5),
		ConstraintType: control.Performance,
		Period:         10,
		ApplyStates:    struct{}{},
		Apply:          host.Apply,
		Current:        host.Current,
	})
	require.NoError(t, err)

	gen := NewGenerator(nil)
	scenario, ok := gen.GetByName("stable", 1.0, 2.0)
	require.True(t, ok)

	result, err := Run(ctrl, host, scenario)
	require.NoError(t, err)
	assert.Len(t, result.Rates, len(scenario.TargetRates))
	assert.Len(t, result.ChosenIDs, len(scenario.TargetRates))
}

func TestGenerateAllProducesEveryNamedScenario(t *testing.T) {
	gen := NewGenerator(nil)
	scenarios := gen.GenerateAll(1.0, 2.0)
	for _, name := range ValidScenarioNames() {
		_, ok := scenarios[name]
		assert.True(t, ok, "missing scenario %q", name)
	}
}

func TestGaussianNoiseClampsToCeiling(t *testing.T) {
	n := NewGaussianNoise(1, 10) // absurd stddev forces clamping
	got := n.AddRandomness(1.0, 5.0)
	assert.LessOrEqual(t, got, 5.0)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestBurstRandomizerAlwaysBursts(t *testing.T) {
	b := NewBurstRandomizer(1, 1.0, 1, 1, 3.0)
	got := b.AddRandomness(1.0, 2.0)
	assert.Equal(t, 2.0, got) // 1.0*3.0 clamped to ceiling 2.0
}

func TestRunDetailedAnalysisCountsSwitches(t *testing.T) {
	host := NewHost(twoStateTable(), 0)
	run := RunResult{
		ScenarioName: "t",
		Rates:        []float64{1, 1, 2, 2, 1},
		Costs:        []float64{1, 1, 3, 3, 1},
		ChosenIDs:    []int{0, 0, 1, 1, 0},
	}
	result := RunDetailedAnalysis(run, host)
	assert.Equal(t, 2, result.ConfigSwitches)
}
