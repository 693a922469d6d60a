package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

const title = "HorizontalPager + Grid scroll-sync"

// Options sets the pager layout.
type Options struct {
	Pages        int
	Columns      int
	Items        int
	RowHeight    int
	ViewportRows int
	ScrollIdle   time.Duration
}

func (o Options) withDefaults() Options {
	if o.Pages <= 0 {
		o.Pages = 3
	}
	if o.Columns <= 0 {
		o.Columns = 3
	}
	if o.Items < 0 {
		o.Items = 0
	}
	if o.RowHeight <= 0 {
		o.RowHeight = 4
	}
	if o.ViewportRows <= 0 {
		o.ViewportRows = 5
	}
	if o.ScrollIdle <= 0 {
		o.ScrollIdle = 150 * time.Millisecond
	}
	return o
}

// idleMsg ends a gesture on page unless a newer one superseded it.
type idleMsg struct {
	page int
	gen  int
}

// App is the bubbletea model of the pager.
type App struct {
	opts  Options
	coord *scrollsync.Coordinator

	grids      []*scrollsync.Grid
	unregister []func()
	gens       []int

	page   int
	width  int
	height int
}

// New builds one grid per page and registers each with coord.
func New(opts Options, coord *scrollsync.Coordinator) *App {
	opts = opts.withDefaults()
	a := &App{
		opts:  opts,
		coord: coord,
		gens:  make([]int, opts.Pages),
		width: 80,
	}
	for p := 0; p < opts.Pages; p++ {
		g := scrollsync.NewGrid(scrollsync.GridConfig{
			Name:      fmt.Sprintf("page-%d", p),
			Columns:   opts.Columns,
			RowHeight: opts.RowHeight,
			Viewport:  opts.ViewportRows * opts.RowHeight,
			Items:     opts.Items,
		})
		a.grids = append(a.grids, g)
		a.unregister = append(a.unregister, coord.Register(g))
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case tea.KeyMsg:
		switch m.String() {
		case "q", "ctrl+c":
			a.Close()
			return a, tea.Quit
		case "left", "h":
			a.page = max(0, a.page-1)
		case "right", "l", "tab":
			a.page = min(len(a.grids)-1, a.page+1)
		case "up", "k":
			return a, a.scroll(-1)
		case "down", "j":
			return a, a.scroll(1)
		case "pgup":
			return a, a.scroll(-a.opts.ViewportRows * a.opts.RowHeight)
		case "pgdown", " ":
			return a, a.scroll(a.opts.ViewportRows * a.opts.RowHeight)
		case "+", "=":
			a.resize(10)
		case "-":
			a.resize(-10)
		}
	case tea.MouseMsg:
		switch m.Button {
		case tea.MouseButtonWheelUp:
			return a, a.scroll(-1)
		case tea.MouseButtonWheelDown:
			return a, a.scroll(1)
		}
	case idleMsg:
		if m.page < len(a.grids) && m.gen == a.gens[m.page] {
			a.grids[m.page].EndScroll()
		}
	}
	return a, nil
}

// scroll moves the current page as one user gesture and schedules the
// end of the gesture after the idle period.
func (a *App) scroll(delta int) tea.Cmd {
	g := a.grids[a.page]
	if !g.Scrolling() {
		g.BeginScroll()
	}
	g.ScrollBy(delta)

	a.gens[a.page]++
	page, gen := a.page, a.gens[a.page]
	return tea.Tick(a.opts.ScrollIdle, func(time.Time) tea.Msg {
		return idleMsg{page: page, gen: gen}
	})
}

func (a *App) resize(delta int) {
	g := a.grids[a.page]
	g.SetItemCount(max(0, g.Items()+delta))
}

// Close unregisters every grid. It is safe to call more than once.
func (a *App) Close() {
	for i, unregister := range a.unregister {
		if unregister != nil {
			unregister()
			a.unregister[i] = nil
		}
	}
}

// Page returns the index of the visible page.
func (a *App) Page() int { return a.page }

// Grid returns the grid of page p.
func (a *App) Grid(p int) *scrollsync.Grid { return a.grids[p] }

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(a.renderGrid())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())
	return b.String()
}

func (a *App) renderTabs() string {
	tabs := make([]string, len(a.grids))
	for p := range a.grids {
		label := fmt.Sprintf("Page %d", p+1)
		if p == a.page {
			tabs[p] = activeTabStyle.Render(label)
		} else {
			tabs[p] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderGrid draws the rows overlapping the viewport, then trims the
// first row by the scroll offset.
func (a *App) renderGrid() string {
	g := a.grids[a.page]
	cols, rh := a.opts.Columns, a.opts.RowHeight
	cardWidth := max(8, (a.width-2)/cols-1)
	style := cardStyle.Width(cardWidth).Height(rh - 1).Background(tint(a.page))
	blank := lipgloss.NewStyle().Width(cardWidth).Height(rh - 1).Render("")

	pos := g.Current()
	first := g.FirstRow()
	var lines []string
	for row := first; row <= first+a.opts.ViewportRows; row++ {
		cards := make([]string, 0, cols*2)
		for c := 0; c < cols; c++ {
			i := row*cols + c
			if i < g.Items() {
				cards = append(cards, style.Render(fmt.Sprintf("Page %d • #%d", a.page+1, i)))
			} else {
				cards = append(cards, blank)
			}
			cards = append(cards, " ")
		}
		rendered := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
		lines = append(lines, strings.Split(rendered, "\n")...)
		lines = append(lines, "")
	}

	start := min(pos.Offset, len(lines))
	end := min(start+a.opts.ViewportRows*rh, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func (a *App) renderFooter() string {
	g := a.grids[a.page]
	leader := "none"
	if p, ok := a.coord.Leader(); ok {
		leader = p.String()
	}
	return footerStyle.Render(fmt.Sprintf(
		"page %d/%d • position %s • leader %s • items %d • ←/→ page  ↑/↓ scroll  +/- items  q quit",
		a.page+1, len(a.grids), g.Current(), leader, g.Items()))
}
