package scrollsync

import (
	"sync/atomic"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/reactive"
)

// GridConfig describes the geometry of a Grid.
type GridConfig struct {
	// Name identifies the grid in logs and views.
	Name string

	// Columns is the number of items per row (default 1).
	Columns int

	// RowHeight is the height of one row in scroll units (default 1).
	RowHeight int

	// Viewport is the visible height in scroll units. Zero lets the last row
	// scroll to the top.
	Viewport int

	// Items is the initial item count.
	Items int
}

// Grid is a reactive, in-process scroll container laid out as fixed-height
// rows of Columns items. The first visible index is always the first item
// of a row.
//
// Its getters read reactive signals, so a Coordinator observes it
// directly.
type Grid struct {
	name      string
	columns   int
	rowHeight int
	viewport  int

	scrolling *reactive.Signal[bool]
	position  *reactive.Signal[Position]
	count     *reactive.Signal[int]

	scrollCalls atomic.Int64
}

// NewGrid creates a grid scrolled to the top.
func NewGrid(cfg GridConfig) *Grid {
	if cfg.Columns <= 0 {
		cfg.Columns = 1
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = 1
	}
	if cfg.Viewport < 0 {
		cfg.Viewport = 0
	}

	return &Grid{
		name:      cfg.Name,
		columns:   cfg.Columns,
		rowHeight: cfg.RowHeight,
		viewport:  cfg.Viewport,
		scrolling: reactive.NewSignal(false),
		position:  reactive.NewSignal(Position{}),
		count:     reactive.NewSignal(cfg.Items),
	}
}

// IsScrolling implements Container.
func (g *Grid) IsScrolling() bool { return g.scrolling.Get() }

// Position implements Container.
func (g *Grid) Position() Position { return g.position.Get() }

// ItemCount implements Container.
func (g *Grid) ItemCount() int { return g.count.Get() }

// ScrollTo implements Container. The index is clamped to the items held
// when the count is positive; the offset is kept as given.
func (g *Grid) ScrollTo(index, offset int) {
	g.scrollCalls.Add(1)

	n := g.count.Peek()
	switch {
	case index < 0:
		index = 0
	case n > 0 && index >= n:
		index = n - 1
	}
	g.position.Set(Position{Index: index, Offset: offset})
}

// BeginScroll marks the start of a user gesture.
func (g *Grid) BeginScroll() {
	g.scrolling.Set(true)
}

// EndScroll marks the end of a user gesture.
func (g *Grid) EndScroll() {
	g.scrolling.Set(false)
}

// ScrollBy moves the grid by delta scroll units, clamped to its content,
// and returns the resulting position.
func (g *Grid) ScrollBy(delta int) Position {
	cur := g.position.Peek()
	abs := (cur.Index/g.columns)*g.rowHeight + cur.Offset + delta
	abs = max(0, min(abs, g.maxScroll()))

	next := Position{
		Index:  (abs / g.rowHeight) * g.columns,
		Offset: abs % g.rowHeight,
	}
	g.position.Set(next)
	return next
}

// SetItemCount replaces the item count. Negative values are stored as-is;
// a Coordinator discards them.
func (g *Grid) SetItemCount(n int) {
	g.count.Set(n)
}

func (g *Grid) maxScroll() int {
	n := g.count.Peek()
	if n <= 0 {
		return 0
	}
	rows := (n + g.columns - 1) / g.columns
	return max(0, rows*g.rowHeight-g.viewport)
}

// Name returns the configured name.
func (g *Grid) Name() string { return g.name }

// Columns returns the number of items per row.
func (g *Grid) Columns() int { return g.columns }

// RowHeight returns the height of a row in scroll units.
func (g *Grid) RowHeight() int { return g.rowHeight }

// Scrolling returns the scroll flag without subscribing.
func (g *Grid) Scrolling() bool { return g.scrolling.Peek() }

// Current returns the position without subscribing.
func (g *Grid) Current() Position { return g.position.Peek() }

// Items returns the item count without subscribing.
func (g *Grid) Items() int { return g.count.Peek() }

// FirstRow returns the row of the first visible item.
func (g *Grid) FirstRow() int { return g.position.Peek().Index / g.columns }

// ScrollCalls returns how many times ScrollTo has been called.
func (g *Grid) ScrollCalls() int64 { return g.scrollCalls.Load() }
