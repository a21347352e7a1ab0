package main

import (
	"fmt"

	"github.com/aretw0/termuxdev"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of termuxdev",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "termuxdev version %s\n", termuxdev.Version)
		},
	}
}
