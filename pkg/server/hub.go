package server

import (
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/scrollsync"
)

// DefaultGroup is used when a connection names no group.
const DefaultGroup = "default"

var groupNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// ValidateGroupName checks a group name from a request.
func ValidateGroupName(name string) error {
	if !groupNamePattern.MatchString(name) {
		return errors.New("E083").WithSuggestion("Use letters, digits, '-', '_' or '.'")
	}
	return nil
}

// group is one synchronized set of grids.
type group struct {
	name  string
	coord *scrollsync.Coordinator

	// mu serializes every event applied to coord.
	mu sync.Mutex

	// refs is guarded by Hub.mu.
	refs int
}

// GroupInfo summarizes a group for /groups.
type GroupInfo struct {
	Name       string               `json:"name"`
	Sessions   int                  `json:"sessions"`
	Containers int                  `json:"containers"`
	Leader     *scrollsync.Position `json:"leader,omitempty"`
}

// Hub owns the coordinators of all active groups.
type Hub struct {
	mu     sync.Mutex
	groups map[string]*group

	metrics       *scrollsync.Metrics
	serverMetrics *metrics
	tracer        trace.Tracer
	logger        *slog.Logger
	maxEffectRuns int
}

func newHub(cfg *Config, m *scrollsync.Metrics, sm *metrics, logger *slog.Logger) *Hub {
	return &Hub{
		groups:        make(map[string]*group),
		metrics:       m,
		serverMetrics: sm,
		tracer:        cfg.Tracer,
		logger:        logger,
		maxEffectRuns: cfg.MaxEffectRuns,
	}
}

// acquire returns the named group, creating its coordinator on first use.
func (h *Hub) acquire(name string) *group {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.groups[name]
	if !ok {
		opts := []scrollsync.Option{
			scrollsync.WithGroup(name),
			scrollsync.WithLogger(h.logger),
			scrollsync.WithMetrics(h.metrics),
			scrollsync.WithMaxEffectRuns(h.maxEffectRuns),
		}
		if h.tracer != nil {
			opts = append(opts, scrollsync.WithTracer(h.tracer))
		}
		g = &group{name: name, coord: scrollsync.New(opts...)}
		h.groups[name] = g
		h.serverMetrics.groups.Inc()
		h.logger.Info("group created", "group", name)
	}
	g.refs++
	return g
}

// release drops one reference and closes the group after the last one.
func (h *Hub) release(g *group) {
	h.mu.Lock()
	defer h.mu.Unlock()

	g.refs--
	if g.refs > 0 {
		return
	}
	delete(h.groups, g.name)
	h.serverMetrics.groups.Dec()

	g.mu.Lock()
	g.coord.Close()
	g.mu.Unlock()
	h.logger.Info("group released", "group", g.name)
}

// Groups returns a snapshot of the active groups sorted by name.
func (h *Hub) Groups() []GroupInfo {
	h.mu.Lock()
	infos := make([]GroupInfo, 0, len(h.groups))
	for _, g := range h.groups {
		info := GroupInfo{
			Name:       g.name,
			Sessions:   g.refs,
			Containers: g.coord.Registrations(),
		}
		if pos, ok := g.coord.Leader(); ok {
			info.Leader = &pos
		}
		infos = append(infos, info)
	}
	h.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
