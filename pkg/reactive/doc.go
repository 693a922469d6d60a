// Package reactive provides the fine-grained reactive substrate used to keep
// scroll containers synchronized.
//
// Dependencies are tracked at runtime: reading a Signal inside an Effect
// subscribes that effect, and writing a different value schedules every
// subscriber to run again.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	pos := NewSignal(0)
//	v := pos.Get()  // Read (subscribes current listener)
//	pos.Set(5)      // Write (notifies subscribers only if the value changed)
//
// Effect runs side effects when dependencies change:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("position:", pos.Get())
//	    return func() { /* runs before the next run and on dispose */ }
//	})
//
// Owner scopes effects. Disposing an owner disposes its children, its
// effects, and runs its cleanups:
//
//	scope := NewOwner(parent)
//	WithOwner(scope, func() { CreateEffect(...) })
//	scope.Dispose()
//
// # Scheduling
//
// Effects marked dirty are queued on their owner. A plain owner tree is
// drained explicitly with RunPendingEffects. A tree rooted at NewRoot drains
// itself: scheduling an effect runs every pending effect in the tree before
// the write that caused it returns, unless another goroutine is already
// draining, in which case that goroutine picks the effect up.
//
// # Thread Safety
//
// Signals are safe for concurrent use. The tracking context is
// per-goroutine, so effects always observe the reads made on the goroutine
// that runs them.
package reactive
