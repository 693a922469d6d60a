package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner is a scope that owns effects. When an Owner is disposed, its child
// owners, effects, and cleanups are disposed with it.
//
// Owners form a tree. Pending effects anywhere in the tree are run by
// RunPendingEffects on any ancestor.
type Owner struct {
	id uint64

	// parent is nil for a root.
	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	effects   []*Effect
	effectsMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	pendingEffects   []*Effect
	pendingEffectsMu sync.Mutex

	disposed atomic.Bool

	// Root-only drain state. autoDrain is fixed at construction.
	autoDrain bool
	budget    StormBudgetChecker
	onDrain   func(DrainStats)
	draining  atomic.Bool
}

// DrainStats describes one automatic drain of a root owner.
type DrainStats struct {
	EffectRuns int
	Exceeded   bool
}

// RootOption configures a root created by NewRoot.
type RootOption func(*Owner)

// WithStormBudget caps the number of effect runs per drain.
func WithStormBudget(b StormBudgetChecker) RootOption {
	return func(o *Owner) {
		o.budget = b
	}
}

// WithDrainHook registers fn to observe every completed drain.
func WithDrainHook(fn func(DrainStats)) RootOption {
	return func(o *Owner) {
		o.onDrain = fn
	}
}

// NewOwner creates an Owner registered as a child of parent. A nil parent
// creates a manually drained root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// NewRoot creates a root Owner that drains pending effects as soon as they
// are scheduled.
func NewRoot(opts ...RootOption) *Owner {
	o := &Owner{
		id:        nextID(),
		autoDrain: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) root() *Owner {
	r := o
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

func (o *Owner) childSnapshot() []*Owner {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	return children
}

func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnCleanup registers fn to run when this Owner is disposed. If the Owner
// is already disposed fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// scheduleEffect queues e and, for auto-draining trees, drains the root.
func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = append(o.pendingEffects, e)
	o.pendingEffectsMu.Unlock()

	if r := o.root(); r.autoDrain {
		r.drain()
	}
}

// requeue puts effects back without triggering a drain.
func (o *Owner) requeue(effects []*Effect) {
	o.pendingEffectsMu.Lock()
	o.pendingEffects = append(effects, o.pendingEffects...)
	o.pendingEffectsMu.Unlock()
}

// RunPendingEffects runs every effect pending in this Owner and its
// descendants once. Effects scheduled while it runs stay pending.
//
// budget may be nil. When the budget is exhausted the remaining effects stay
// queued and ErrBudgetExceeded is returned.
func (o *Owner) RunPendingEffects(budget StormBudgetChecker) error {
	_, err := o.runPending(budget)
	return err
}

func (o *Owner) runPending(budget StormBudgetChecker) (int, error) {
	if o.disposed.Load() {
		return 0, nil
	}

	o.pendingEffectsMu.Lock()
	effects := o.pendingEffects
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()

	runs := 0
	for i, e := range effects {
		if !e.pending.Load() || e.disposed.Load() {
			continue
		}
		if budget != nil {
			if err := budget.CheckEffectRun(); err != nil {
				o.requeue(effects[i:])
				return runs, err
			}
		}
		e.run()
		runs++
	}

	for _, child := range o.childSnapshot() {
		n, err := child.runPending(budget)
		runs += n
		if err != nil {
			return runs, err
		}
	}

	return runs, nil
}

// HasPendingEffects reports whether this Owner or any descendant has
// queued effects.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}

	o.pendingEffectsMu.Lock()
	hasPending := len(o.pendingEffects) > 0
	o.pendingEffectsMu.Unlock()
	if hasPending {
		return true
	}

	for _, child := range o.childSnapshot() {
		if child.HasPendingEffects() {
			return true
		}
	}
	return false
}

// Flush drains the tree until no effect is pending or the budget runs out.
// It is a no-op while another goroutine holds the drain.
func (o *Owner) Flush() {
	o.root().drain()
}

// drain runs pending effects until the tree is idle. Only one goroutine
// drains a root at a time; effects scheduled meanwhile are picked up by the
// goroutine already draining.
func (o *Owner) drain() {
	for {
		if !o.draining.CompareAndSwap(false, true) {
			return
		}

		stats := o.drainOnce()

		if o.onDrain != nil && (stats.EffectRuns > 0 || stats.Exceeded) {
			o.onDrain(stats)
		}
		if stats.Exceeded || !o.HasPendingEffects() {
			return
		}
	}
}

func (o *Owner) drainOnce() (stats DrainStats) {
	defer o.draining.Store(false)

	if o.budget != nil {
		o.budget.ResetTick()
	}
	for o.HasPendingEffects() {
		n, err := o.runPending(o.budget)
		stats.EffectRuns += n
		if err != nil {
			stats.Exceeded = true
			return stats
		}
	}
	return stats
}

// Dispose disposes this Owner and everything it owns: children in reverse
// creation order, then effects, then cleanups in reverse registration
// order. Disposing twice is a no-op.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := o.children
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()
}
