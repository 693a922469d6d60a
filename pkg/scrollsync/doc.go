// Package scrollsync keeps the scroll position of a group of scrollable
// containers converged on whichever container the user is dragging.
//
// A Coordinator owns one shared leader slot. Every registered Container gets
// two subscriptions:
//
//   - leader detection: while the container reports IsScrolling, each
//     distinct Position it reports is written to the slot;
//   - follower application: whenever the slot or the container's item count
//     changes, the slot's position is clamped to the container's items and
//     applied with ScrollTo unless the container is already there.
//
// The follower subscription is not skipped for the leader itself; the
// already-there check makes it a no-op.
//
// Containers are observed through package reactive: getters that read
// reactive signals are re-evaluated automatically. Grid is the in-process
// container used by the terminal demo and by tests.
//
//	c := scrollsync.New(scrollsync.WithGroup("pager"))
//	defer c.Close()
//
//	for _, g := range grids {
//	    unregister := c.Register(g)
//	    defer unregister()
//	}
package scrollsync
