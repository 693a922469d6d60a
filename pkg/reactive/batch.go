package reactive

// Batch groups signal writes made by fn so every affected listener is
// notified once, after the outermost batch on this goroutine completes.
//
//	Batch(func() {
//	    scrolling.Set(true)
//	    position.Set(next)
//	})
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// Tx is an alias for Batch.
func Tx(fn func()) {
	Batch(fn)
}

func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	for _, listener := range updates {
		id := listener.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		listener.MarkDirty()
	}
}

// Untracked runs fn without subscribing the current listener to anything
// read inside it.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedGet reads s without creating a dependency.
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}
