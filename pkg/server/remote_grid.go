package server

import (
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/protocol"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/reactive"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

// remoteGrid is the Container for a grid rendered in a browser. Its
// signals are written by the owning session's read loop.
type remoteGrid struct {
	id      string
	session *Session

	scrolling *reactive.Signal[bool]
	position  *reactive.Signal[scrollsync.Position]
	count     *reactive.Signal[int]

	unregister func()
}

func newRemoteGrid(s *Session, id string, count int) *remoteGrid {
	return &remoteGrid{
		id:        id,
		session:   s,
		scrolling: reactive.NewSignal(false),
		position:  reactive.NewSignal(scrollsync.Position{}),
		count:     reactive.NewSignal(count),
	}
}

func (g *remoteGrid) IsScrolling() bool             { return g.scrolling.Get() }
func (g *remoteGrid) Position() scrollsync.Position { return g.position.Get() }
func (g *remoteGrid) ItemCount() int                { return g.count.Get() }

// ScrollTo records the new position and forwards it to the browser. It is
// a no-op once the session is closed.
func (g *remoteGrid) ScrollTo(index, offset int) {
	if g.session.isClosed() {
		return
	}
	g.position.Set(scrollsync.Position{Index: index, Offset: offset})
	g.session.send(protocol.ScrollTo(g.id, index, offset))
}
