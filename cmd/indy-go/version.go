package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sbca/indy-go/pkg/indy"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "indy-go %s\n", indy.WrapperVersion())
			fmt.Fprintf(out, "libindy %s\n", indy.UpstreamVersion())
			fmt.Fprintf(out, "go %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
