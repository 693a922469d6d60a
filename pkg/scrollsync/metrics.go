package scrollsync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Follower skip reasons used as the "reason" label.
const (
	skipNoItems       = "no_items"
	skipAlreadyThere  = "already_there"
	skipNoValidCount  = "no_valid_count"
	skipUnregistered  = "unregistered"
	defaultNamespace  = "gridsync"
	defaultSubsystem  = "scrollsync"
	defaultGroupLabel = "default"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "gridsync").
	Namespace string

	// Subsystem is the metrics subsystem (default: "scrollsync").
	Subsystem string

	// ConstLabels are added to every collector.
	ConstLabels prometheus.Labels

	// Registry receives the collectors. nil leaves them unregistered.
	Registry prometheus.Registerer
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*MetricsConfig)

// WithMetricsNamespace sets the metrics namespace.
func WithMetricsNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithMetricsRegistry sets the registerer the collectors are added to.
func WithMetricsRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithMetricsConstLabels sets constant labels for all collectors.
func WithMetricsConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// Metrics holds the collectors shared by every Coordinator of a process.
// Each coordinator reports under its group label.
type Metrics struct {
	leaderWrites     *prometheus.CounterVec
	duplicates       *prometheus.CounterVec
	followerScrolls  *prometheus.CounterVec
	followerSkips    *prometheus.CounterVec
	invalidCounts    *prometheus.CounterVec
	episodes         *prometheus.CounterVec
	registered       *prometheus.GaugeVec
	drainEffectRuns  *prometheus.HistogramVec
	budgetExceedings *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with the configured
// registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: defaultNamespace,
		Subsystem: defaultSubsystem,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, append([]string{"group"}, labels...))
	}

	return &Metrics{
		leaderWrites:     counter("leader_writes_total", "Positions written to the shared leader slot"),
		duplicates:       counter("duplicate_positions_total", "Leader positions suppressed as consecutive duplicates"),
		followerScrolls:  counter("follower_scrolls_total", "ScrollTo calls issued to followers"),
		followerSkips:    counter("follower_skips_total", "Follower evaluations that issued no ScrollTo", "reason"),
		invalidCounts:    counter("invalid_item_counts_total", "Negative item counts discarded"),
		episodes:         counter("scroll_episodes_total", "Scroll episodes started by registered containers"),
		budgetExceedings: counter("storm_budget_exceeded_total", "Drains stopped by the effect storm budget"),
		registered: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registered_containers",
			Help:        "Containers currently registered",
			ConstLabels: config.ConstLabels,
		}, []string{"group"}),
		drainEffectRuns: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drain_effect_runs",
			Help:        "Effects run per propagation drain",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"group"}),
	}
}

// groupMetrics binds Metrics to one group label.
type groupMetrics struct {
	m     *Metrics
	group string
}

func (g groupMetrics) leaderWrite()     { g.m.leaderWrites.WithLabelValues(g.group).Inc() }
func (g groupMetrics) duplicate()       { g.m.duplicates.WithLabelValues(g.group).Inc() }
func (g groupMetrics) followerScroll()  { g.m.followerScrolls.WithLabelValues(g.group).Inc() }
func (g groupMetrics) invalidCount()    { g.m.invalidCounts.WithLabelValues(g.group).Inc() }
func (g groupMetrics) episode()         { g.m.episodes.WithLabelValues(g.group).Inc() }
func (g groupMetrics) budgetExceeded()  { g.m.budgetExceedings.WithLabelValues(g.group).Inc() }
func (g groupMetrics) registered(d int) { g.m.registered.WithLabelValues(g.group).Add(float64(d)) }
func (g groupMetrics) drained(runs int) { g.m.drainEffectRuns.WithLabelValues(g.group).Observe(float64(runs)) }

func (g groupMetrics) skip(reason string) {
	g.m.followerSkips.WithLabelValues(g.group, reason).Inc()
}
