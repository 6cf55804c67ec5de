package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbca/indy-go/pkg/indy/commands"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load libindy and report which catalogue commands it exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := a.library(cmd)
			if err != nil {
				return err
			}
			set, missing, err := commands.Register(lib)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "implemented: %d\n", len(set))
			fmt.Fprintf(out, "missing: %d\n", len(missing))
			for _, symbol := range missing {
				fmt.Fprintf(out, "  %s\n", symbol)
			}
			return nil
		},
	}
}
