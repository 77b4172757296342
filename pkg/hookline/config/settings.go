package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Settings is the dispatcher configuration recognised in a config file.
//
//	default_priority: 10
//	max_depth: 32
//	observability:
//	  log_level: debug
//	  metrics: true
//	  tracing: true
type Settings struct {
	// DefaultPriority is the priority Add uses.
	DefaultPriority int

	// MaxDepth bounds nested dispatch; 0 means unlimited.
	MaxDepth int

	// LogLevel enables JSON logging to stderr at the given level when set.
	// One of debug, info, warn, error.
	LogLevel string

	// Metrics enables OpenTelemetry metrics.
	Metrics bool

	// Tracing enables OpenTelemetry tracing.
	Tracing bool
}

// DefaultPriority is the priority a handler gets when none is given.
const DefaultPriority = 10

// DefaultSettings returns the settings used when a key is absent.
func DefaultSettings() Settings {
	return Settings{DefaultPriority: DefaultPriority}
}

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// SettingsFrom reads Settings from cfg, falling back to DefaultSettings for
// missing keys, and validates the result.
func SettingsFrom(cfg Config) (Settings, error) {
	def := DefaultSettings()
	obs := cfg.Sub("observability")
	s := Settings{
		DefaultPriority: cfg.Int("default_priority", def.DefaultPriority),
		MaxDepth:        cfg.Int("max_depth", def.MaxDepth),
		LogLevel:        obs.String("log_level", def.LogLevel),
		Metrics:         obs.Bool("metrics", def.Metrics),
		Tracing:         obs.Bool("tracing", def.Tracing),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the settings for values the dispatcher cannot use.
func (s Settings) Validate() error {
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrInvalidSettings, s.MaxDepth)
	}
	if s.LogLevel != "" {
		if _, ok := parseLevel(s.LogLevel); !ok {
			return fmt.Errorf("%w: unknown log_level %q", ErrInvalidSettings, s.LogLevel)
		}
	}
	return nil
}

// Level returns the slog level for LogLevel, and false when logging is off.
func (s Settings) Level() (slog.Level, bool) {
	if s.LogLevel == "" {
		return 0, false
	}
	return parseLevel(s.LogLevel)
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
