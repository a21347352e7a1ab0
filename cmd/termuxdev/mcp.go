package main

import (
	"context"
	"fmt"

	"github.com/aretw0/termuxdev/internal/cli"
	"github.com/aretw0/termuxdev/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(o *rootOptions) *cobra.Command {
	var (
		transport string
		addr      string
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the assistant and the catalog as MCP tools so AI agents can use them.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}
			srv := mcp.NewServer(rt.App, mcp.WithLogger(rt.Logger))

			switch transport {
			case "stdio":
				// Logs go to stderr so they never corrupt JSON-RPC on stdout.
				rt.Logger.Info("Starting TermuxDev MCP Server (Stdio)")
				return srv.ServeStdio()
			case "sse":
				parent := cmd.Context()
				if parent == nil {
					parent = context.Background()
				}
				ctx := cli.NewSignalContext(parent)
				defer ctx.Cancel()

				if err := srv.ServeSSE(ctx, addr); err != nil {
					return err
				}
				rt.Logger.Info("MCP Server stopped gracefully")
				return nil
			default:
				return usageError(cmd, fmt.Errorf("unknown transport %q, supported: stdio, sse", transport))
			}
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	cmd.Flags().StringVar(&addr, "addr", ":8090", "Address to listen on (only for SSE)")
	return cmd
}
