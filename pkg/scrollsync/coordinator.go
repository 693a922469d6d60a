package scrollsync

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/reactive"
)

const tracerName = "github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"

// leaderSlot is the shared leader position; ok is false until the first
// leader write and never becomes false again.
type leaderSlot struct {
	pos Position
	ok  bool
}

func slotEqual(a, b leaderSlot) bool {
	return a == b
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithGroup names the synchronized group in logs, metrics and spans.
func WithGroup(name string) Option {
	return func(c *Coordinator) {
		c.group = name
	}
}

// WithMetrics reports into shared collectors created by NewMetrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) {
		c.sharedMetrics = m
	}
}

// WithTracer sets the tracer used for scroll episode spans. Defaults to the
// global OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		c.tracer = tracer
	}
}

// WithMaxEffectRuns caps how many subscription runs a single propagation
// may perform before it is cut short. Zero disables the cap.
func WithMaxEffectRuns(n int) Option {
	return func(c *Coordinator) {
		c.maxEffectRuns = n
	}
}

// Stats is a point-in-time snapshot of a Coordinator's counters.
type Stats struct {
	Registrations       int
	LeaderWrites        int64
	DuplicatePositions  int64
	Episodes            int64
	FollowerEvaluations int64
	FollowerScrolls     int64
	InvalidItemCounts   int64
}

// Coordinator keeps a group of registered containers converged on the
// position of whichever one is being scrolled.
type Coordinator struct {
	group         string
	logger        *slog.Logger
	tracer        trace.Tracer
	sharedMetrics *Metrics
	metrics       groupMetrics
	maxEffectRuns int
	budget        *reactive.StormBudget

	root   *reactive.Owner
	leader *reactive.Signal[leaderSlot]

	mu     sync.Mutex
	regs   map[string]*registration
	closed bool

	leaderWrites        atomic.Int64
	duplicates          atomic.Int64
	episodes            atomic.Int64
	followerEvaluations atomic.Int64
	followerScrolls     atomic.Int64
	invalidCounts       atomic.Int64
}

// New creates a Coordinator with an empty leader slot.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		group: defaultGroupLabel,
		regs:  make(map[string]*registration),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("group", c.group)
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	if c.sharedMetrics == nil {
		c.sharedMetrics = NewMetrics()
	}
	c.metrics = groupMetrics{m: c.sharedMetrics, group: c.group}

	c.budget = reactive.NewStormBudget(c.maxEffectRuns)
	c.root = reactive.NewRoot(
		reactive.WithStormBudget(c.budget),
		reactive.WithDrainHook(c.onDrain),
	)
	c.leader = reactive.NewSignal(leaderSlot{}).WithEquals(slotEqual)

	return c
}

// Group returns the group name.
func (c *Coordinator) Group() string {
	return c.group
}

// Register starts synchronizing ct and returns the handle that stops it.
// The handle is idempotent. A container registered after a leader position
// was published is moved to it immediately.
func (c *Coordinator) Register(ct Container) (unregister func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return func() {}
	}
	r := &registration{
		id:    uuid.NewString(),
		c:     c,
		ct:    ct,
		scope: reactive.NewOwner(c.root),
	}
	c.regs[r.id] = r
	c.mu.Unlock()

	c.metrics.registered(1)
	c.logger.Debug("container registered", "registration", r.id)

	// Batched so notifications raised by the first runs are delivered only
	// after both subscriptions exist.
	reactive.Batch(func() {
		reactive.WithOwner(r.scope, func() {
			r.watchLeadership()
			r.follow()
		})
	})

	return r.unregister
}

// Leader returns the shared leader position and whether one was published.
func (c *Coordinator) Leader() (Position, bool) {
	slot := c.leader.Peek()
	return slot.pos, slot.ok
}

// Registrations returns the number of registered containers.
func (c *Coordinator) Registrations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.regs)
}

// Flush runs any propagation left pending, e.g. after the effect budget cut
// a drain short.
func (c *Coordinator) Flush() {
	c.root.Flush()
}

// Stats returns a snapshot of the coordinator's counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		Registrations:       c.Registrations(),
		LeaderWrites:        c.leaderWrites.Load(),
		DuplicatePositions:  c.duplicates.Load(),
		Episodes:            c.episodes.Load(),
		FollowerEvaluations: c.followerEvaluations.Load(),
		FollowerScrolls:     c.followerScrolls.Load(),
		InvalidItemCounts:   c.invalidCounts.Load(),
	}
}

// Close unregisters every container. Registering on a closed Coordinator
// is a no-op.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	regs := make([]*registration, 0, len(c.regs))
	for _, r := range c.regs {
		regs = append(regs, r)
	}
	c.mu.Unlock()

	for _, r := range regs {
		r.unregister()
	}
	c.root.Dispose()
}

// publish writes pos to the leader slot. It reports whether the slot
// changed.
func (c *Coordinator) publish(pos Position, from string) bool {
	if !c.leader.Set(leaderSlot{pos: pos, ok: true}) {
		c.duplicates.Add(1)
		c.metrics.duplicate()
		return false
	}
	c.leaderWrites.Add(1)
	c.metrics.leaderWrite()
	c.logger.Debug("leader position", "registration", from, "position", pos.String())
	return true
}

func (c *Coordinator) forget(r *registration) {
	c.mu.Lock()
	delete(c.regs, r.id)
	c.mu.Unlock()
}

func (c *Coordinator) onDrain(stats reactive.DrainStats) {
	c.metrics.drained(stats.EffectRuns)
	if stats.Exceeded {
		c.metrics.budgetExceeded()
		c.logger.Warn("propagation cut short by effect budget",
			"effect_runs", stats.EffectRuns,
			"max_effect_runs", c.maxEffectRuns)
	}
}
