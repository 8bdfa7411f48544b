// Command poetctl drives a POET controller against a calibration file and a
// synthetic host, the way feemarketsim's cmd/simulator drives its adjusters,
// but structured as a cobra root command the way
// github.com/ja7ad/consumption/cmd/consumption is.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "poetctl",
		Short: "Drive a POET controller session against a calibration file",
		Long: `poetctl exercises the POET controller end to end against a synthetic
host: it loads a calibration file describing the pre-characterised
configuration table and session parameters, drives the controller through a
named demand scenario, and reports summary statistics for each run.`,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newValidateCommand())

	if err := root.Execute(); err != nil {
		slog.Error("poetctl failed", "err", err)
		os.Exit(1)
	}
}
