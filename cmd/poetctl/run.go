package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wattctl/poet/internal/api"
	"github.com/wattctl/poet/pkg/calibration"
	"github.com/wattctl/poet/pkg/control"
	"github.com/wattctl/poet/pkg/hostsim"
	"github.com/wattctl/poet/pkg/numeric"
	"github.com/wattctl/poet/pkg/visualization"
)

type runOpts struct {
	calibrationPath string
	scenario        string
	baseline        float64
	noiseSeed       int64
	noiseStdDev     float64
	burstSeed       int64
	burstProb       float64
	burstDurMin     int
	burstDurMax     int
	burstIntensity  float64
	serve           bool
	addr            string
	chart           bool
	chartDir        string
}

func newRunCommand() *cobra.Command {
	var o runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a POET controller against a synthetic host through a demand scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), o)
		},
	}

	cmd.Flags().StringVarP(&o.calibrationPath, "calibration", "c", "", "path to the calibration YAML file (required)")
	cmd.MarkFlagRequired("calibration")
	cmd.Flags().StringVarP(&o.scenario, "scenario", "s", "mixed", fmt.Sprintf("scenario to run: %s, or all", strings.Join(hostsim.ValidScenarioNames(), ", ")))
	cmd.Flags().Float64Var(&o.baseline, "baseline", 100.0, "baseline demand rate scenarios are scaled around")

	cmd.Flags().Float64Var(&o.noiseStdDev, "noise-stddev", 0, "gaussian noise standard deviation applied to demand [0..1]")
	cmd.Flags().Int64Var(&o.noiseSeed, "noise-seed", 1, "gaussian noise RNG seed")
	cmd.Flags().Float64Var(&o.burstProb, "burst-probability", 0, "per-iteration probability of entering a demand burst")
	cmd.Flags().IntVar(&o.burstDurMin, "burst-duration-min", 3, "minimum burst duration in iterations")
	cmd.Flags().IntVar(&o.burstDurMax, "burst-duration-max", 8, "maximum burst duration in iterations")
	cmd.Flags().Float64Var(&o.burstIntensity, "burst-intensity", 1.5, "demand multiplier while a burst is active")
	cmd.Flags().Int64Var(&o.burstSeed, "burst-seed", 2, "burst RNG seed")

	cmd.Flags().BoolVar(&o.serve, "serve", false, "serve the read-only monitoring API while the run executes")
	cmd.Flags().StringVar(&o.addr, "addr", ":8090", "address the monitoring API listens on, if --serve is set")

	cmd.Flags().BoolVar(&o.chart, "chart", false, "render an HTML chart per scenario run")
	cmd.Flags().StringVar(&o.chartDir, "chart-dir", ".", "directory charts are written to")

	return cmd
}

func runRun(ctx context.Context, o runOpts) error {
	calCfg, err := calibration.Load(o.calibrationPath)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	randomizer := buildRandomizer(o)
	generator := hostsim.NewGenerator(randomizer)

	var names []string
	if o.scenario == "all" {
		names = hostsim.ValidScenarioNames()
	} else {
		names = []string{o.scenario}
	}

	var results []hostsim.Result
	for _, name := range names {
		scenario, ok := generator.GetByName(name, o.baseline, o.baseline*2)
		if !ok {
			return fmt.Errorf("run: unknown scenario %q", name)
		}

		ctrl, host, err := newSession(calCfg)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}

		var stopServer func()
		if o.serve {
			stopServer = serveStatus(ctrl, o.addr)
		}

		fmt.Printf("\n=== Scenario: %s ===\n", scenario.Name)
		fmt.Printf("%s\n", scenario.Description)

		run, err := hostsim.Run(ctrl, host, scenario)
		if stopServer != nil {
			stopServer()
		}
		if err != nil {
			return fmt.Errorf("run: scenario %q: %w", name, err)
		}

		results = append(results, hostsim.RunDetailedAnalysis(run, host))

		if o.chart {
			path := fmt.Sprintf("%s/chart_%s.html", strings.TrimSuffix(o.chartDir, "/"), strings.ToLower(strings.ReplaceAll(scenario.Name, " ", "_")))
			if err := visualization.NewGenerator().GenerateChart(run, path); err != nil {
				return fmt.Errorf("run: chart for %q: %w", name, err)
			}
			fmt.Printf("wrote %s\n", path)
		}
	}

	hostsim.PrintResults(results)
	return nil
}

// newSession builds a fresh controller and synthetic host from a calibration
// file, one per scenario run, the way the teacher's runBasicSimulation
// creates a fresh adjuster per scenario rather than reusing state across
// runs.
func newSession(calCfg *calibration.Config) (*control.Controller, *hostsim.Host, error) {
	table := calCfg.Table()
	host := hostsim.NewHost(table, len(table)-1)

	var logSink *os.File
	if calCfg.LogPath != "" {
		f, err := os.Create(calCfg.LogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open log sink: %w", err)
		}
		logSink = f
	}

	cfg := control.Config{
		Table:          table,
		Goal:           numeric.Const(calCfg.Goal),
		ConstraintType: calCfg.Constraint(),
		Period:         calCfg.Period,
		ApplyStates:    host,
		Apply:          host.Apply,
		Current:        host.Current,
		BufferDepth:    calCfg.BufferDepth,
	}
	if logSink != nil {
		cfg.Log = logSink
	}

	ctrl, err := control.Init(cfg)
	if err != nil {
		return nil, nil, err
	}
	return ctrl, host, nil
}

// buildRandomizer composes the configured noise sources the way
// hostsim.NewCompoundRandomizer chains the teacher's gaussian/burst
// decorators.
func buildRandomizer(o runOpts) hostsim.Randomizer {
	var randomizers []hostsim.Randomizer
	if o.noiseStdDev > 0 {
		randomizers = append(randomizers, hostsim.NewGaussianNoise(o.noiseSeed, o.noiseStdDev))
	}
	if o.burstProb > 0 {
		randomizers = append(randomizers, hostsim.NewBurstRandomizer(o.burstSeed, o.burstProb, o.burstDurMin, o.burstDurMax, o.burstIntensity))
	}
	if len(randomizers) == 0 {
		return nil
	}
	return hostsim.NewCompoundRandomizer(randomizers...)
}

// serveStatus starts the read-only monitoring API in the background for the
// duration of one scenario run and returns a function that shuts it down.
func serveStatus(ctrl *control.Controller, addr string) func() {
	server := &http.Server{Addr: addr, Handler: api.NewRouter(ctrl)}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "monitoring API: %v\n", err)
		}
	}()
	fmt.Printf("monitoring API listening on %s\n", addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}
}
