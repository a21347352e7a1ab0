package main

import (
	"context"
	"fmt"

	"github.com/aretw0/termuxdev"
	"github.com/aretw0/termuxdev/internal/cli"
	"github.com/aretw0/termuxdev/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface and JSON API",
		Long: `Serves the TermuxDev page on / and the JSON API under /api.
The API description is available on /openapi.yaml and Prometheus metrics on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				rt.Config.Addr = addr
			}

			if cli.IsTerminal(cmd.ErrOrStderr()) {
				tui.PrintBanner(cmd.ErrOrStderr(), termuxdev.Version)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Serving TermuxDev on %s\n", rt.Config.Addr)

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx := cli.NewSignalContext(parent)
			defer ctx.Cancel()

			if err := cli.Serve(ctx, rt, rt.Config.Addr); err != nil {
				return err
			}
			if sig := ctx.Signal(); sig != nil {
				rt.Logger.Info("Server stopped", "signal", sig.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on (env TERMUXDEV_ADDR)")
	return cmd
}
