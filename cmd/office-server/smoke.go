package main

import (
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/negokaz/office-server/internal/smoke"
)

func newSmokeCommand(g *globalFlags) *cobra.Command {
	var (
		url         string
		timeout     time.Duration
		launchPause time.Duration
		suitePause  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Exercise every endpoint of a running server",
		Long: `smoke calls every Word, Excel and PowerPoint endpoint of a running server
in order and prints [OK], [FAIL] or [ERROR] per call. It exits non-zero when
any call fails. Office must be installed on the server machine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				cfg, err := g.load()
				if err != nil {
					return err
				}
				url = "http://" + cfg.Server.Addr()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			r := &smoke.Runner{
				BaseURL:     url,
				Client:      &http.Client{Timeout: timeout},
				Out:         cmd.OutOrStdout(),
				LaunchPause: launchPause,
				SuitePause:  suitePause,
			}
			return r.Run(ctx, smoke.Suites())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&url, "url", "", "Server URL (default: from the server configuration)")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "Timeout per request")
	flags.DurationVar(&launchPause, "launch-pause", time.Second, "Pause after each launch")
	flags.DurationVar(&suitePause, "suite-pause", time.Second, "Pause between applications")
	return cmd
}
