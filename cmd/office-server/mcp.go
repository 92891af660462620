package main

import (
	"github.com/spf13/cobra"

	"github.com/negokaz/office-server/internal/server"
)

func newMCPCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve MCP over stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			tb, cleanup, err := newToolbox(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return server.ServeStdio(version, tb)
		},
	}
}
