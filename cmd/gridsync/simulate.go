package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

// simulation is a scripted pager session.
type simulation struct {
	Grids   int
	Columns int
	Items   int
	Steps   int
	Stride  int
}

func (s simulation) validate() error {
	if s.Grids < 2 || s.Steps < 1 || s.Columns < 1 || s.Items < 0 || s.Stride < 1 {
		return errors.New("E141").WithDetail(fmt.Sprintf(
			"grids=%d columns=%d items=%d steps=%d stride=%d",
			s.Grids, s.Columns, s.Items, s.Steps, s.Stride))
	}
	return nil
}

// tracedGrid prints every ScrollTo the coordinator issues.
type tracedGrid struct {
	*scrollsync.Grid
	out io.Writer
}

func (g tracedGrid) ScrollTo(index, offset int) {
	g.Grid.ScrollTo(index, offset)
	fmt.Fprintf(g.out, "  scroll_to %-8s (%d,%d) -> %s\n", g.Name(), index, offset, g.Current())
}

func simulateCmd(c *cli) *cobra.Command {
	sim := simulation{Grids: 3, Columns: 3, Items: 50, Steps: 4, Stride: 1}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted scroll session and print follower scrolls",
		Long: `Register a set of in-memory grids and drive them through a script:

  1. the first grid scrolls down in steps
  2. the second grid drops to a handful of items and is re-clamped
  3. the second grid takes over and scrolls back up
  4. the second grid grows again and follows the leader once more

Every scroll_to issued to a follower is printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := sim.validate(); err != nil {
				return err
			}
			coord := scrollsync.New(
				scrollsync.WithGroup("simulate"),
				scrollsync.WithLogger(c.logger),
				scrollsync.WithMaxEffectRuns(c.cfg.Sync.MaxEffectRuns),
			)
			defer coord.Close()
			return runSimulation(cmd.OutOrStdout(), coord, sim, c.logger)
		},
	}

	cmd.Flags().IntVar(&sim.Grids, "grids", sim.Grids, "Number of grids")
	cmd.Flags().IntVar(&sim.Columns, "columns", sim.Columns, "Items per row")
	cmd.Flags().IntVar(&sim.Items, "items", sim.Items, "Items per grid")
	cmd.Flags().IntVar(&sim.Steps, "steps", sim.Steps, "Scroll steps per gesture")
	cmd.Flags().IntVar(&sim.Stride, "stride", sim.Stride, "Rows moved per step")

	return cmd
}

func runSimulation(w io.Writer, coord *scrollsync.Coordinator, sim simulation, logger *slog.Logger) error {
	if err := sim.validate(); err != nil {
		return err
	}
	const rowHeight = 10

	grids := make([]*scrollsync.Grid, sim.Grids)
	for i := range grids {
		grids[i] = scrollsync.NewGrid(scrollsync.GridConfig{
			Name:      fmt.Sprintf("grid-%d", i),
			Columns:   sim.Columns,
			RowHeight: rowHeight,
			Items:     sim.Items,
		})
		unregister := coord.Register(tracedGrid{Grid: grids[i], out: w})
		defer unregister()
	}
	leader, second := grids[0], grids[1]

	gesture := func(g *scrollsync.Grid, delta int) {
		fmt.Fprintf(w, "%s scrolls\n", g.Name())
		g.BeginScroll()
		for i := 0; i < sim.Steps; i++ {
			p := g.ScrollBy(delta)
			fmt.Fprintf(w, "  %s at %s\n", g.Name(), p)
		}
		g.EndScroll()
	}

	gesture(leader, sim.Stride*rowHeight+rowHeight/2)

	small := max(1, sim.Columns)
	fmt.Fprintf(w, "%s shrinks to %d items\n", second.Name(), small)
	second.SetItemCount(small)

	gesture(second, -rowHeight/2)

	fmt.Fprintf(w, "%s grows to %d items\n", second.Name(), sim.Items)
	second.SetItemCount(sim.Items)

	fmt.Fprintln(w, "final positions")
	for _, g := range grids {
		fmt.Fprintf(w, "  %-8s %s (%d items)\n", g.Name(), g.Current(), g.Items())
	}
	if p, ok := coord.Leader(); ok {
		fmt.Fprintf(w, "  leader   %s\n", p)
	}

	stats := coord.Stats()
	logger.Info("simulation finished",
		"leader_writes", stats.LeaderWrites,
		"follower_scrolls", stats.FollowerScrolls,
		"duplicates", stats.DuplicatePositions,
		"episodes", stats.Episodes)
	return nil
}
