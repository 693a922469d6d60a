package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

// Run shows the pager until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options, coord *scrollsync.Coordinator) error {
	app := New(opts, coord)
	defer app.Close()

	p := tea.NewProgram(app,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
