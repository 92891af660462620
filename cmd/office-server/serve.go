package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/negokaz/office-server/internal/server"
)

func newServeCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
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

			gin.SetMode(gin.ReleaseMode)
			s := server.New(version, tb, server.Options{
				Addr:         cfg.Server.Addr(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				MCP:          cfg.Server.MCP,
				CORSOrigins:  cfg.Server.CORSOrigins,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.Run(ctx)
		},
	}
	flags := cmd.Flags()
	flags.String("host", "127.0.0.1", "Listen host")
	flags.Int("port", 8765, "Listen port")
	flags.Bool("mcp", true, "Serve MCP over streamable HTTP at /mcp")
	flags.StringSlice("cors-origin", []string{"*"}, "Origins allowed to call the server from a browser")
	flags.Bool("visible", true, "Show the Office application windows")
	flags.Bool("attach", true, "Attach to running Office applications")
	for key, flag := range map[string]string{
		"server.host":         "host",
		"server.port":         "port",
		"server.mcp":          "mcp",
		"server.cors_origins": "cors-origin",
		"office.visible":      "visible",
		"office.attach":       "attach",
	} {
		_ = g.v.BindPFlag(key, flags.Lookup(flag))
	}
	return cmd
}
