package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.alis.build/alog"

	"github.com/negokaz/office-server/internal/com"
	"github.com/negokaz/office-server/internal/config"
	"github.com/negokaz/office-server/internal/office"
	"github.com/negokaz/office-server/internal/screenshot"
	"github.com/negokaz/office-server/internal/tools"
)

type globalFlags struct {
	config string
	v      *viper.Viper
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{v: viper.New()}
	root := &cobra.Command{
		Use:          "office-server",
		Short:        "Automate Word, Excel and PowerPoint over HTTP and MCP",
		SilenceUsage: true,
		Version:      version,
	}
	root.PersistentFlags().StringVarP(&g.config, "config", "c", "", "Config file (YAML)")
	root.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	_ = g.v.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newServeCommand(g),
		newMCPCommand(g),
		newSmokeCommand(g),
		newVersionCommand(),
	)
	return root
}

// load reads the configuration and applies the log settings.
func (g *globalFlags) load() (*config.Config, error) {
	cfg, err := config.Load(g.v, g.config)
	if err != nil {
		return nil, err
	}
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	alog.SetLevel(level)
	alog.SetLoggingEnvironment(cfg.Log.Environment())
	return cfg, nil
}

// newToolbox opens the COM apartment and the three application sessions.
// The returned function releases the applications and closes the apartment.
func newToolbox(cfg *config.Config) (*tools.Toolbox, func(), error) {
	apartment, err := com.OpenOleApartment()
	if err != nil {
		return nil, nil, err
	}
	connector := com.OleConnector{Attach: cfg.Office.Attach}
	options := office.Options{
		Visible:       cfg.Office.Visible,
		DisplayAlerts: cfg.Office.DisplayAlerts,
		CallTimeout:   cfg.Office.CallTimeout,
	}
	tb := &tools.Toolbox{
		Word:       office.NewSession(office.Word, apartment, connector, options),
		Excel:      office.NewSession(office.Excel, apartment, connector, options),
		PowerPoint: office.NewSession(office.PowerPoint, apartment, connector, options),
		Capturer: &screenshot.Capturer{
			TempDir:  cfg.Screenshot.TempDir,
			MaxWidth: cfg.Screenshot.MaxWidth,
		},
	}
	cleanup := func() {
		ctx := context.Background()
		for _, s := range []*office.Session{tb.Word, tb.Excel, tb.PowerPoint} {
			if err := s.Close(ctx); err != nil {
				alog.Warnf(ctx, "failed to release %s: %v", s.ProgID(), err)
			}
		}
		apartment.Close()
	}
	return tb, cleanup, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
