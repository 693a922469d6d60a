package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/tui"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

func demoCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive terminal pager",
		Long: `Show a horizontal pager of card grids in the terminal.

Scroll any page and switch pages to see the others follow.

Keys:
  ←/→ h/l    change page
  ↑/↓ j/k    scroll one line (mouse wheel too)
  PgUp/PgDn  scroll one screen
  +/-        add or remove ten items on the current page
  q          quit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runDemo(cmd.Context())
		},
	}

	cmd.Flags().Int("pages", 0, "Number of pages")
	cmd.Flags().Int("columns", 0, "Cards per row")
	cmd.Flags().Int("items", 0, "Cards per page")
	_ = c.v.BindPFlag("demo.pages", cmd.Flags().Lookup("pages"))
	_ = c.v.BindPFlag("demo.columns", cmd.Flags().Lookup("columns"))
	_ = c.v.BindPFlag("demo.items", cmd.Flags().Lookup("items"))

	return cmd
}

func (c *cli) runDemo(ctx context.Context) error {
	if !isTerminal(os.Stdout) {
		return errors.New("E140").WithDetail("stdout is not a terminal")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	// The pager owns the screen.
	coord := scrollsync.New(
		scrollsync.WithGroup("demo"),
		scrollsync.WithLogger(c.cfg.Log.NewLogger(io.Discard)),
		scrollsync.WithMaxEffectRuns(c.cfg.Sync.MaxEffectRuns),
	)
	defer coord.Close()

	d := c.cfg.Demo
	err := tui.Run(ctx, tui.Options{
		Pages:        d.Pages,
		Columns:      d.Columns,
		Items:        d.Items,
		RowHeight:    d.RowHeight,
		ViewportRows: d.ViewportRows,
		ScrollIdle:   d.ScrollIdle,
	}, coord)
	if err != nil {
		return errors.New("E140").Wrap(err)
	}

	stats := coord.Stats()
	c.logger.Info("demo finished",
		"leader_writes", stats.LeaderWrites,
		"follower_scrolls", stats.FollowerScrolls,
		"episodes", stats.Episodes)
	return nil
}
