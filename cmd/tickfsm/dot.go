package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDotCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dot FILE",
		Short: "Print the machine as a Graphviz digraph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := a.load(args[0], nil)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), m.Engine.ToDOT())

			return nil
		},
	}
}
