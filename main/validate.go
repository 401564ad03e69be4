package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a config file without running it",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Building the legs catches geometry which parses fine but can't be solved,
	// like two joints on top of each other.
	s, err := newSim(cfg)
	if err != nil {
		return err
	}

	for _, leg := range s.legs.Legs {
		if !leg.Chain.Enabled() {
			return fmt.Errorf("leg %s can't be solved; check the joints", leg.Name)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d legs, reach %.2f, step %v\n",
		len(s.legs.Legs), s.legs.Legs[0].Chain.TotalLength(), s.legs.Gait.StepDuration())
	return nil
}
