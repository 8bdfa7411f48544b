package hostsim

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
)

// Result summarizes one scenario run (adapted from the teacher's fee-market
// run summary, retargeted from gas/base-fee statistics to rate/cost/idle
// statistics).
type Result struct {
	ScenarioName    string
	TotalIterations int
	AvgRate         float64
	AvgCost         float64
	MinRate         float64
	MaxRate         float64
	RateVolatility  float64
	ConfigSwitches  int
	TotalIdleNS     uint64
	TargetDeviation float64
}

// RunDetailedAnalysis computes summary statistics over a completed run.
func RunDetailedAnalysis(run RunResult, host *Host) Result {
	avgRate := averageFloat64(run.Rates)
	avgCost := averageFloat64(run.Costs)

	var deviations []float64
	if avgRate > 0 {
		for _, r := range run.Rates {
			deviations = append(deviations, math.Abs(r-avgRate)/avgRate)
		}
	}

	return Result{
		ScenarioName:    run.ScenarioName,
		TotalIterations: len(run.Rates),
		AvgRate:         avgRate,
		AvgCost:         avgCost,
		MinRate:         minFloat64(run.Rates),
		MaxRate:         maxFloat64(run.Rates),
		RateVolatility:  stdDev(run.Rates),
		ConfigSwitches:  countSwitches(run.ChosenIDs),
		TotalIdleNS:     host.IdleNanos(),
		TargetDeviation: averageFloat64(deviations),
	}
}

// PrintResults prints a tabular summary followed by a detailed breakdown
// per scenario, matching the teacher's two-pass report shape.
func PrintResults(results []Result) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("RUN SUMMARY")
	fmt.Println(strings.Repeat("=", 80))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Scenario\tAvg Rate\tAvg Cost\tSwitches\tIdle ns\tDeviation")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%d\t%d\t%.1f%%\n",
			r.ScenarioName, r.AvgRate, r.AvgCost, r.ConfigSwitches, r.TotalIdleNS, r.TargetDeviation*100)
	}
	w.Flush()

	for _, r := range results {
		fmt.Println()
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("DETAILED ANALYSIS: %s\n", r.ScenarioName)
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("  Iterations: %d\n", r.TotalIterations)
		fmt.Printf("  Rate: avg %.3f, range %.3f - %.3f, volatility %.3f\n", r.AvgRate, r.MinRate, r.MaxRate, r.RateVolatility)
		fmt.Printf("  Average cost: %.3f\n", r.AvgCost)
		fmt.Printf("  Configuration switches: %d\n", r.ConfigSwitches)
		fmt.Printf("  Cumulative idle time: %d ns\n", r.TotalIdleNS)
		fmt.Printf("  Average deviation from mean rate: %.1f%%\n", r.TargetDeviation*100)
	}
}

func countSwitches(ids []int) int {
	count := 0
	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[i-1] {
			count++
		}
	}
	return count
}

func averageFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	mean := averageFloat64(values)
	var sumSquares float64
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

func minFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func maxFloat64(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
