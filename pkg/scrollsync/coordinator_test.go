package scrollsync_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/reactive"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

// rowHeight 100 with one column makes ScrollBy distances read as
// index*100 + offset.
func newGrid(name string, items int) *scrollsync.Grid {
	return scrollsync.NewGrid(scrollsync.GridConfig{
		Name:      name,
		Columns:   1,
		RowHeight: 100,
		Items:     items,
	})
}

func pos(index, offset int) scrollsync.Position {
	return scrollsync.Position{Index: index, Offset: offset}
}

// moveTo drags g to p as a user gesture would.
func moveTo(g *scrollsync.Grid, p scrollsync.Position) {
	cur := g.Current()
	from := (cur.Index/g.Columns())*g.RowHeight() + cur.Offset
	to := (p.Index/g.Columns())*g.RowHeight() + p.Offset
	g.ScrollBy(to - from)
}

func newCoordinator(t *testing.T, opts ...scrollsync.Option) *scrollsync.Coordinator {
	t.Helper()
	c := scrollsync.New(opts...)
	t.Cleanup(c.Close)
	return c
}

func TestLeaderHoldsLastDistinctPosition(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	c.Register(a)
	c.Register(b)

	_, ok := c.Leader()
	require.False(t, ok, "slot starts absent")

	a.BeginScroll()
	for _, p := range []scrollsync.Position{pos(1, 0), pos(2, 30), pos(2, 30), pos(7, 5)} {
		moveTo(a, p)
	}
	a.EndScroll()

	leader, ok := c.Leader()
	require.True(t, ok)
	assert.Equal(t, pos(7, 5), leader)

	// (0,0) on episode start, then three distinct moves.
	assert.Equal(t, int64(4), c.Stats().LeaderWrites)
	assert.Equal(t, pos(7, 5), b.Current())
}

func TestLeaderNotClearedWhenScrollingStops(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	c.Register(a)

	a.BeginScroll()
	moveTo(a, pos(3, 40))
	a.EndScroll()

	// Moves after the episode ended are not published.
	moveTo(a, pos(9, 0))

	leader, ok := c.Leader()
	require.True(t, ok)
	assert.Equal(t, pos(3, 40), leader)
	assert.Equal(t, int64(1), c.Stats().Episodes)
}

func TestEndToEndThreeGrids(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	d := newGrid("c", 50)
	for _, g := range []*scrollsync.Grid{a, b, d} {
		c.Register(g)
	}

	a.BeginScroll()
	moveTo(a, pos(0, 0))
	moveTo(a, pos(5, 12))
	moveTo(a, pos(5, 12))
	a.EndScroll()

	leader, ok := c.Leader()
	require.True(t, ok)
	assert.Equal(t, pos(5, 12), leader)

	assert.Equal(t, int64(1), b.ScrollCalls())
	assert.Equal(t, int64(1), d.ScrollCalls())
	assert.Equal(t, pos(5, 12), b.Current())
	assert.Equal(t, pos(5, 12), d.Current())
	assert.Zero(t, a.ScrollCalls(), "leader's own follower evaluation is a no-op")
}

func TestLeadershipMovesToNextScroller(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	c.Register(a)
	c.Register(b)

	a.BeginScroll()
	moveTo(a, pos(4, 0))
	a.EndScroll()

	b.BeginScroll()
	moveTo(b, pos(8, 50))
	b.EndScroll()

	assert.Equal(t, pos(8, 50), a.Current())
	assert.Equal(t, int64(1), a.ScrollCalls())
	assert.Equal(t, int64(1), b.ScrollCalls())
}

func TestClampedGridReclaimsLeadership(t *testing.T) {
	c := newCoordinator(t)
	long := newGrid("long", 50)
	short := newGrid("short", 6)
	c.Register(long)
	c.Register(short)

	short.BeginScroll()
	moveTo(short, pos(5, 0))
	short.EndScroll()
	require.Equal(t, pos(5, 0), long.Current())

	long.BeginScroll()
	moveTo(long, pos(10, 0))
	long.EndScroll()
	require.Equal(t, pos(5, 0), short.Current(), "clamped to the last item")

	// short starts a gesture at the position it published last time.
	short.BeginScroll()
	defer short.EndScroll()

	leader, ok := c.Leader()
	require.True(t, ok)
	assert.Equal(t, pos(5, 0), leader)
	assert.Equal(t, pos(5, 0), long.Current())
}

func TestFollowerIsIdempotent(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	c.Register(a)
	c.Register(b)

	a.BeginScroll()
	moveTo(a, pos(5, 12))
	require.Equal(t, int64(1), b.ScrollCalls())

	evaluations := c.Stats().FollowerEvaluations

	// Re-evaluate with the slot unchanged and the same effective target.
	b.SetItemCount(60)
	c.Flush()

	assert.Greater(t, c.Stats().FollowerEvaluations, evaluations)
	assert.Equal(t, int64(1), b.ScrollCalls(), "already in place: no second ScrollTo")
}

func TestClampingToEmptyGrid(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	empty := newGrid("empty", 0)
	c.Register(a)
	c.Register(empty)

	a.BeginScroll()
	moveTo(a, pos(12, 0))
	moveTo(a, pos(20, 7))

	assert.Zero(t, empty.ScrollCalls())
}

func TestClampingToShorterGrid(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	short := newGrid("short", 5)
	c.Register(a)
	c.Register(short)

	a.BeginScroll()
	moveTo(a, pos(12, 9))

	assert.Equal(t, pos(4, 9), short.Current())
	assert.Equal(t, int64(1), short.ScrollCalls())
}

func TestReclampOnItemCountChange(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	c.Register(a)

	a.BeginScroll()
	moveTo(a, pos(10, 3))
	a.EndScroll()

	f := newGrid("f", 3)
	c.Register(f)
	require.Equal(t, pos(2, 3), f.Current(), "clamped on registration")
	require.Equal(t, int64(1), f.ScrollCalls())

	f.SetItemCount(20)

	assert.Equal(t, pos(10, 3), f.Current())
	assert.Equal(t, int64(2), f.ScrollCalls(), "exactly one ScrollTo for the transition")
}

func TestNegativeItemCountIsDiscarded(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	f := newGrid("f", 3)
	c.Register(a)
	c.Register(f)

	a.BeginScroll()
	moveTo(a, pos(10, 3))
	require.Equal(t, pos(2, 3), f.Current())

	f.SetItemCount(-1)
	assert.Equal(t, int64(1), c.Stats().InvalidItemCounts)
	assert.Equal(t, pos(2, 3), f.Current())
	assert.Equal(t, int64(1), f.ScrollCalls())

	// The last valid count still applies to new leader positions.
	moveTo(a, pos(11, 0))
	assert.Equal(t, pos(2, 0), f.Current())
}

func TestNegativeItemCountBeforeAnyValidCount(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	c.Register(a)
	a.BeginScroll()
	moveTo(a, pos(6, 1))

	f := newGrid("f", -5)
	c.Register(f)
	assert.Zero(t, f.ScrollCalls())

	f.SetItemCount(20)
	assert.Equal(t, pos(6, 1), f.Current())
}

func TestUnregisterStopsFollowing(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	c.Register(a)
	unregister := c.Register(b)
	require.Equal(t, 2, c.Registrations())

	unregister()
	unregister()
	assert.Equal(t, 1, c.Registrations())

	a.BeginScroll()
	moveTo(a, pos(9, 9))

	assert.Zero(t, b.ScrollCalls())
	assert.Equal(t, pos(0, 0), b.Current())
}

func TestUnregisteredLeaderStopsPublishing(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	unregister := c.Register(a)
	c.Register(b)

	a.BeginScroll()
	moveTo(a, pos(2, 0))
	unregister()
	moveTo(a, pos(30, 0))

	leader, _ := c.Leader()
	assert.Equal(t, pos(2, 0), leader)
	assert.Equal(t, pos(2, 0), b.Current())
}

func TestReregisterJumpsToLeader(t *testing.T) {
	c := newCoordinator(t)
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	c.Register(a)
	unregister := c.Register(b)
	unregister()

	a.BeginScroll()
	moveTo(a, pos(7, 7))
	a.EndScroll()

	c.Register(b)
	assert.Equal(t, pos(7, 7), b.Current())
}

func TestCloseStopsEverything(t *testing.T) {
	c := scrollsync.New()
	a := newGrid("a", 50)
	b := newGrid("b", 50)
	c.Register(a)
	c.Register(b)

	c.Close()
	assert.Zero(t, c.Registrations())

	a.BeginScroll()
	moveTo(a, pos(3, 0))
	assert.Zero(t, b.ScrollCalls())

	unregister := c.Register(newGrid("late", 10))
	assert.Zero(t, c.Registrations())
	unregister()
}

// noisyContainer notifies on every position write, even repeated ones, so
// duplicate suppression has to happen in the coordinator.
type noisyContainer struct {
	scrolling *reactive.Signal[bool]
	position  *reactive.Signal[scrollsync.Position]
	count     *reactive.Signal[int]

	mu      sync.Mutex
	scrolls []scrollsync.Position
}

func newNoisyContainer(items int) *noisyContainer {
	return &noisyContainer{
		scrolling: reactive.NewSignal(false),
		position: reactive.NewSignal(scrollsync.Position{}).
			WithEquals(func(a, b scrollsync.Position) bool { return false }),
		count: reactive.NewSignal(items),
	}
}

func (n *noisyContainer) IsScrolling() bool             { return n.scrolling.Get() }
func (n *noisyContainer) Position() scrollsync.Position { return n.position.Get() }
func (n *noisyContainer) ItemCount() int                { return n.count.Get() }

func (n *noisyContainer) ScrollTo(index, offset int) {
	n.mu.Lock()
	n.scrolls = append(n.scrolls, pos(index, offset))
	n.mu.Unlock()
	n.position.Set(pos(index, offset))
}

func TestDuplicatePositionsAreSuppressed(t *testing.T) {
	c := newCoordinator(t)
	leader := newNoisyContainer(50)
	follower := newGrid("follower", 50)
	c.Register(leader)
	c.Register(follower)

	leader.scrolling.Set(true)
	leader.position.Set(pos(5, 12))

	before := c.Stats()
	require.Equal(t, int64(1), follower.ScrollCalls())

	leader.position.Set(pos(5, 12))

	after := c.Stats()
	assert.Equal(t, before.LeaderWrites, after.LeaderWrites, "no second write to the slot")
	assert.Equal(t, before.DuplicatePositions+1, after.DuplicatePositions)
	assert.Equal(t, before.FollowerEvaluations, after.FollowerEvaluations, "followers are not re-evaluated")
	assert.Equal(t, int64(1), follower.ScrollCalls())
}

func TestConcurrentRegistration(t *testing.T) {
	c := newCoordinator(t)
	leader := newGrid("leader", 50)
	c.Register(leader)

	const n = 16
	grids := make([]*scrollsync.Grid, n)
	var wg sync.WaitGroup
	for i := range grids {
		grids[i] = newGrid("g", 50)
		wg.Add(1)
		go func(g *scrollsync.Grid) {
			defer wg.Done()
			defer reactive.ReleaseGoroutine()
			c.Register(g)
		}(grids[i])
	}
	wg.Wait()
	require.Equal(t, n+1, c.Registrations())

	leader.BeginScroll()
	moveTo(leader, pos(21, 4))
	leader.EndScroll()

	for _, g := range grids {
		assert.Equal(t, pos(21, 4), g.Current())
	}
}
