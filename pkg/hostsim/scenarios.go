package hostsim

// Scenario is a named sequence of target rates to drive a controller
// against across a run (spec.md 8's worked scenarios).
type Scenario struct {
	Name        string
	Description string
	TargetRates []float64
}

// Generator produces named scenarios scaled to a baseline rate, optionally
// perturbed by a Randomizer.
type Generator struct {
	randomizer Randomizer
}

// NewGenerator creates a scenario generator. randomizer may be nil to skip
// perturbation entirely.
func NewGenerator(randomizer Randomizer) *Generator {
	return &Generator{randomizer: randomizer}
}

// GenerateAll produces every named scenario, scaled around baseline and
// clamped to ceiling once randomness is applied.
func (g *Generator) GenerateAll(baseline, ceiling float64) map[string]Scenario {
	scenarios := map[string]Scenario{
		"high":   g.generateHighDemand(baseline),
		"idle":   g.generateIdleDemand(baseline),
		"stable": g.generateStableDemand(baseline),
		"mixed":  g.generateMixedDemand(baseline),
	}

	if g.randomizer != nil {
		for key, scenario := range scenarios {
			scenarios[key] = g.applyRandomness(scenario, ceiling)
		}
	}

	return scenarios
}

// GetByName returns one named scenario.
func (g *Generator) GetByName(name string, baseline, ceiling float64) (Scenario, bool) {
	scenario, ok := g.GenerateAll(baseline, ceiling)[name]
	return scenario, ok
}

// generateHighDemand sustains a rate well above baseline, testing the
// controller's response to persistent high load.
func (g *Generator) generateHighDemand(baseline float64) Scenario {
	return Scenario{
		Name:        "High Demand",
		Description: "Sustained demand well above baseline to exercise the upper end of the configuration table",
		TargetRates: generatePattern(baseline, []float64{
			1.6, 1.8, 1.9, 2.0, 1.95, 1.85, 1.9, 2.0, 1.9, 1.8,
			1.95, 2.0, 1.85, 1.9, 2.0, 1.95, 1.9, 1.85, 2.0, 1.9,
		}),
	}
}

// generateIdleDemand sustains a rate at or below the idle threshold, testing
// idle-class configuration selection (spec.md 8, scenario 3).
func (g *Generator) generateIdleDemand(baseline float64) Scenario {
	return Scenario{
		Name:        "Idle Demand",
		Description: "Sustained demand at or below the idle threshold to exercise idle time-division",
		TargetRates: generatePattern(baseline, []float64{
			0.05, 0.03, 0.08, 0.12, 0.06, 0.09, 0.11, 0.07, 0.10, 0.08,
			0.02, 0.13, 0.06, 0.09, 0.07, 0.04, 0.11, 0.08, 0.05, 0.12,
		}),
	}
}

// generateStableDemand stays close to baseline, testing steady-state
// behavior (spec.md 8, scenario 2).
func (g *Generator) generateStableDemand(baseline float64) Scenario {
	return Scenario{
		Name:        "Stable Demand",
		Description: "Demand fluctuating narrowly around baseline to exercise steady-state time division",
		TargetRates: generatePattern(baseline, []float64{
			0.9, 1.1, 1.05, 0.95, 1.0, 1.15, 0.85, 1.08, 0.98, 1.03,
			0.97, 1.12, 0.92, 1.06, 0.99, 1.01, 0.96, 1.14, 0.88, 1.09,
		}),
	}
}

// generateMixedDemand transitions through idle, stable, and high-demand
// periods to exercise replanning across configuration classes.
func (g *Generator) generateMixedDemand(baseline float64) Scenario {
	return Scenario{
		Name:        "Mixed Demand",
		Description: "Transitions between idle, stable, and high demand to exercise replanning",
		TargetRates: generatePattern(baseline, []float64{
			1.0, 0.95, 1.05, 0.98, 1.02, // stable open
			1.2, 1.4, 1.6, 1.8, 2.0, // ramp to high
			1.95, 1.9, 2.0, 1.85, 1.9, // sustained high
			0.6, 0.3, 0.1, 0.05, 0.08, // drop to idle
			0.5, 0.8, 1.0, 0.95, 1.02, // recover to stable
		}),
	}
}

// applyRandomness perturbs every rate in a scenario with the generator's
// configured randomizer, passing it the given ceiling.
func (g *Generator) applyRandomness(scenario Scenario, ceiling float64) Scenario {
	randomized := make([]float64, len(scenario.TargetRates))
	for i, rate := range scenario.TargetRates {
		randomized[i] = g.randomizer.AddRandomness(rate, ceiling)
	}
	return Scenario{
		Name:        scenario.Name + " (with randomness)",
		Description: scenario.Description + " - includes randomizer perturbation",
		TargetRates: randomized,
	}
}

// generatePattern scales a sequence of baseline multipliers into absolute
// target rates.
func generatePattern(baseline float64, multipliers []float64) []float64 {
	rates := make([]float64, len(multipliers))
	for i, m := range multipliers {
		rates[i] = baseline * m
	}
	return rates
}

// ValidScenarioNames lists every name GetByName accepts.
func ValidScenarioNames() []string {
	return []string{"high", "idle", "stable", "mixed"}
}
