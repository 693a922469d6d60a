package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/config"
)

// Config holds server settings.
type Config struct {
	// Addr is the listen address (default ":8080").
	Addr string

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// WriteTimeout bounds every WebSocket write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// MaxGridsPerConn limits registrations per connection.
	MaxGridsPerConn int

	// MaxEffectRuns caps propagation work per group event. Zero disables
	// the cap.
	MaxEffectRuns int

	// CheckOrigin validates the Origin header of WebSocket upgrades.
	// nil accepts every origin.
	CheckOrigin func(*http.Request) bool

	// Registry collects server and coordinator metrics and backs /metrics.
	// nil creates a private registry.
	Registry *prometheus.Registry

	// Tracer records session and scroll episode spans. nil uses the global
	// provider.
	Tracer trace.Tracer

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Addr:            config.DefaultAddr,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		WriteTimeout:    2 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxGridsPerConn: 16,
		MaxEffectRuns:   config.DefaultMaxEffectRuns,
	}
}

// ConfigFrom builds a server Config from loaded settings.
func ConfigFrom(c *config.Config) *Config {
	return &Config{
		Addr:            c.Server.Addr,
		ReadBufferSize:  c.Server.ReadBufferSize,
		WriteBufferSize: c.Server.WriteBufferSize,
		WriteTimeout:    c.Server.WriteTimeout,
		ShutdownTimeout: c.Server.ShutdownTimeout,
		MaxGridsPerConn: c.Server.MaxGridsPerConn,
		MaxEffectRuns:   c.Sync.MaxEffectRuns,
	}
}

// withDefaults fills unset fields.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Addr == "" {
		out.Addr = d.Addr
	}
	if out.ReadBufferSize <= 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize <= 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.MaxGridsPerConn <= 0 {
		out.MaxGridsPerConn = d.MaxGridsPerConn
	}
	if out.MaxEffectRuns < 0 {
		out.MaxEffectRuns = 0
	}
	return &out
}
