package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wattctl/poet/pkg/calibration"
)

func newValidateCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate a calibration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(path)
		},
	}

	cmd.Flags().StringVarP(&path, "calibration", "c", "", "path to the calibration YAML file (required)")
	cmd.MarkFlagRequired("calibration")

	return cmd
}

func runValidate(path string) error {
	cfg, err := calibration.Load(path)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	fmt.Printf("calibration file %q is valid\n", path)
	fmt.Printf("  goal:            %.3f\n", cfg.Goal)
	fmt.Printf("  constraint_type: %s\n", cfg.ConstraintType)
	fmt.Printf("  period:          %d\n", cfg.Period)
	fmt.Printf("  buffer_depth:    %d\n", cfg.BufferDepth)
	if cfg.LogPath != "" {
		fmt.Printf("  log_path:        %s\n", cfg.LogPath)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPEEDUP\tCOST\tIDLE\tIDLE_PARTNER_ID")
	for i, s := range cfg.States {
		idle := "no"
		if s.Speedup < 1 {
			idle = "yes"
		}
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%s\t%d\n", i, s.Speedup, s.Cost, idle, s.IdlePartnerID)
	}
	return w.Flush()
}
