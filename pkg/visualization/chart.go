// Package visualization renders a completed controller run to an
// interactive HTML chart (spec.md, host simulation harness).
package visualization

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/wattctl/poet/pkg/hostsim"
)

// Generator renders hostsim.RunResult traces to HTML line charts.
type Generator struct{}

// NewGenerator creates a chart generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateChart renders rate and cost over iterations for one run, adapted from the teacher's dual-axis base-fee/
// learning-rate chart (rate takes the primary axis, cost the secondary).
func (g *Generator) GenerateChart(run hostsim.RunResult, filename string) error {
	iterations := make([]float64, len(run.Rates))
	for i := range run.Rates {
		iterations[i] = float64(i + 1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1200px",
			Height: "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("POET run: %s", run.ScenarioName),
			Subtitle: "Observed rate and cost over the run",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Iteration",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Rate",
			Type: "value",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "10%",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show: opts.Bool(true),
					Type: "png",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: opts.Bool(true),
				},
			},
		}),
	)

	line.ExtendYAxis(opts.YAxis{
		Name:     "Cost",
		Type:     "value",
		Position: "right",
		SplitLine: &opts.SplitLine{
			Show: opts.Bool(false),
		},
	})

	rateData := make([]opts.LineData, len(run.Rates))
	for i, r := range run.Rates {
		rateData[i] = opts.LineData{Value: []interface{}{iterations[i], r}}
	}
	costData := make([]opts.LineData, len(run.Costs))
	for i, c := range run.Costs {
		costData[i] = opts.LineData{Value: []interface{}{iterations[i], c}}
	}

	line.AddSeries("Rate", rateData,
		charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
	).AddSeries("Cost", costData,
		charts.WithLineChartOpts(opts.LineChart{YAxisIndex: 1, Smooth: opts.Bool(true)}),
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
	)

	if !strings.HasSuffix(filename, ".html") {
		filename = strings.TrimSuffix(filename, ".png") + ".html"
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("visualization: create chart file: %w", err)
	}
	defer file.Close()

	if err := line.Render(file); err != nil {
		return fmt.Errorf("visualization: render chart: %w", err)
	}
	return nil
}

// GenerateChartForRun derives a filename from the scenario name.
func (g *Generator) GenerateChartForRun(run hostsim.RunResult) error {
	filename := fmt.Sprintf("chart_%s.html", strings.ToLower(strings.ReplaceAll(run.ScenarioName, " ", "_")))
	return g.GenerateChart(run, filename)
}
