package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/server"
)

func serveCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser pager and its WebSocket hub",
		Long: `Start the HTTP server.

Routes:
  /          browser pager demo
  /ws        WebSocket endpoint (?group=name)
  /groups    groups, sessions and leader positions as JSON
  /healthz   liveness
  /metrics   Prometheus metrics

Examples:
  gridsync serve
  gridsync serve --addr=:9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runServe(ctx, cmd)
		},
	}

	cmd.Flags().StringP("addr", "a", "", "Address to listen on (default :8080)")
	cmd.Flags().Int("max-effect-runs", 0, "Cap on subscription runs per propagation")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = c.v.BindPFlag("sync.max_effect_runs", cmd.Flags().Lookup("max-effect-runs"))

	return cmd
}

func (c *cli) runServe(ctx context.Context, cmd *cobra.Command) error {
	cfg := server.ConfigFrom(c.cfg)
	cfg.Logger = c.logger

	w := cmd.OutOrStdout()
	printBanner(w)
	success(w, "listening on %s", cfg.Addr)

	return server.New(cfg).Run(ctx)
}
