package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a machine definition",
		Long:  `Parses and builds the definition, then reports transitions that can never fire.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, m, err := a.load(args[0], nil)
			if err != nil {
				return err
			}

			if err := m.Engine.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d states, %d transitions, %d timed)\n",
				args[0], len(def.States), len(m.Engine.Transitions()), len(m.Engine.TimedTransitions()))

			return nil
		},
	}
}
