package scrollsync

//go:generate mockgen -destination=mocks/mock_container.go -package=mocks -source=container.go Container

// Container is the capability a scrollable container exposes to the
// Coordinator.
//
// IsScrolling, Position and ItemCount are observed: implementations backed
// by reactive signals are re-evaluated whenever those signals change.
// Position must be readable at any time, not only while scrolling.
type Container interface {
	// IsScrolling reports whether a user scroll gesture is in progress.
	IsScrolling() bool

	// Position returns the first visible item and the offset into it.
	Position() Position

	// ItemCount returns the number of items. Negative values are treated as
	// invalid and ignored.
	ItemCount() int

	// ScrollTo jumps to index with the given offset. A container that can no
	// longer scroll must make this a no-op.
	ScrollTo(index, offset int)
}
