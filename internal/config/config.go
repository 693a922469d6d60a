package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/internal/errors"
)

const (
	// ConfigName is the base name searched for when no file is given.
	ConfigName = "gridsync"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GRIDSYNC"

	// DefaultAddr is the default server listen address.
	DefaultAddr = ":8080"

	// DefaultMaxEffectRuns caps subscription runs per propagation.
	DefaultMaxEffectRuns = 10000
)

// Config is the complete gridsync configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Sync   SyncConfig   `mapstructure:"sync"`
	Server ServerConfig `mapstructure:"server"`
	Demo   DemoConfig   `mapstructure:"demo"`

	// file is the configuration file that was read, if any.
	file string
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`

	// Format is text or json.
	Format string `mapstructure:"format"`
}

// SyncConfig holds coordinator settings.
type SyncConfig struct {
	// MaxEffectRuns caps subscription runs per propagation. Zero disables
	// the cap.
	MaxEffectRuns int `mapstructure:"max_effect_runs"`
}

// ServerConfig holds HTTP and WebSocket settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadBufferSize  int           `mapstructure:"read_buffer_size"`
	WriteBufferSize int           `mapstructure:"write_buffer_size"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxGridsPerConn limits registrations per WebSocket connection.
	MaxGridsPerConn int `mapstructure:"max_grids_per_conn"`
}

// DemoConfig holds the terminal demo layout.
type DemoConfig struct {
	Pages   int `mapstructure:"pages"`
	Columns int `mapstructure:"columns"`
	Items   int `mapstructure:"items"`

	// RowHeight is the height of a card row in terminal lines.
	RowHeight int `mapstructure:"row_height"`

	// ViewportRows is the number of card rows visible at once.
	ViewportRows int `mapstructure:"viewport_rows"`

	// ScrollIdle ends a scroll episode after this long without input.
	ScrollIdle time.Duration `mapstructure:"scroll_idle"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("sync.max_effect_runs", DefaultMaxEffectRuns)
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.read_buffer_size", 1024)
	v.SetDefault("server.write_buffer_size", 1024)
	v.SetDefault("server.write_timeout", 2*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_grids_per_conn", 16)
	v.SetDefault("demo.pages", 3)
	v.SetDefault("demo.columns", 3)
	v.SetDefault("demo.items", 50)
	v.SetDefault("demo.row_height", 4)
	v.SetDefault("demo.viewport_rows", 5)
	v.SetDefault("demo.scroll_idle", 150*time.Millisecond)
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var c Config
	// Defaults always decode.
	_ = v.Unmarshal(&c)
	return &c
}

// Load reads configuration into v and validates it. path names an explicit
// file; when empty, GRIDSYNC_CONFIG is consulted and then "gridsync.*" is
// searched in the working directory and $HOME/.config/gridsync. A missing
// searched-for file is not an error.
//
// Flags bound to v before Load take precedence over file and environment.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, errors.New("E100").Wrap(err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.New("E100").Wrap(fmt.Errorf("unmarshal config: %w", err))
	}
	c.file = v.ConfigFileUsed()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// File returns the configuration file that was read, or "".
func (c *Config) File() string {
	return c.file
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E101").
			WithSuggestion(fmt.Sprintf("log.level is %q; use debug, info, warn or error", c.Log.Level))
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return errors.New("E101").
			WithDetail("The log format must be text or json.").
			WithSuggestion(fmt.Sprintf("log.format is %q", c.Log.Format))
	}
	if c.Sync.MaxEffectRuns < 0 {
		return errors.New("E102").
			WithSuggestion(fmt.Sprintf("sync.max_effect_runs is %d", c.Sync.MaxEffectRuns))
	}

	s := c.Server
	switch {
	case s.Addr == "":
		return errors.New("E103").WithSuggestion("Set server.addr, e.g. \":8080\"")
	case s.ReadBufferSize <= 0, s.WriteBufferSize <= 0:
		return errors.New("E103").WithSuggestion("Buffer sizes must be positive")
	case s.WriteTimeout <= 0, s.ShutdownTimeout <= 0:
		return errors.New("E103").WithSuggestion("Timeouts must be positive durations, e.g. \"5s\"")
	case s.MaxGridsPerConn <= 0:
		return errors.New("E103").WithSuggestion("server.max_grids_per_conn must be positive")
	}

	d := c.Demo
	if d.Pages < 1 || d.Columns < 1 || d.Items < 0 || d.RowHeight < 1 || d.ViewportRows < 1 || d.ScrollIdle <= 0 {
		return errors.New("E104").
			WithSuggestion(fmt.Sprintf("pages=%d columns=%d items=%d row_height=%d viewport_rows=%d scroll_idle=%s",
				d.Pages, d.Columns, d.Items, d.RowHeight, d.ViewportRows, d.ScrollIdle))
	}
	return nil
}

// SlogLevel returns the configured level.
func (l LogConfig) SlogLevel() slog.Level {
	level, _ := parseLevel(l.Level)
	return level
}

// NewLogger builds the process logger writing to w.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
