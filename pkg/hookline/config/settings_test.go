package config_test

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/hookline/pkg/hookline/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsFromDefaults(t *testing.T) {
	s, err := config.SettingsFrom(config.New(nil))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), s)
	assert.Equal(t, config.DefaultPriority, s.DefaultPriority)

	_, ok := s.Level()
	assert.False(t, ok, "logging is off unless log_level is set")
}

func TestSettingsFromDocument(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
default_priority: 20
max_depth: 8
observability:
  log_level: WARN
  metrics: true
  tracing: true
`))
	require.NoError(t, err)

	s, err := config.SettingsFrom(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.Settings{
		DefaultPriority: 20,
		MaxDepth:        8,
		LogLevel:        "WARN",
		Metrics:         true,
		Tracing:         true,
	}, s)

	level, ok := s.Level()
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		wantErr string
	}{
		{"negative depth", map[string]any{"max_depth": -1}, "max_depth"},
		{"unknown level", map[string]any{"observability": map[string]any{"log_level": "loud"}}, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.SettingsFrom(config.New(tt.data))
			require.ErrorIs(t, err, config.ErrInvalidSettings)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSettingsLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, ok := config.Settings{LogLevel: name}.Level()
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	write := func(t *testing.T, name, body string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
		return path
	}

	t.Run("yaml", func(t *testing.T) {
		s, err := config.SettingsFromFile(write(t, "hooks.yml", "max_depth: 4\nobservability:\n  metrics: true\n"))
		require.NoError(t, err)
		assert.Equal(t, config.Settings{DefaultPriority: config.DefaultPriority, MaxDepth: 4, Metrics: true}, s)
	})

	t.Run("json", func(t *testing.T) {
		s, err := config.SettingsFromFile(write(t, "hooks.json", `{"default_priority": 3, "observability": {"log_level": "error"}}`))
		require.NoError(t, err)
		assert.Equal(t, config.Settings{DefaultPriority: 3, LogLevel: "error"}, s)
	})

	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"unsupported extension", "hooks.toml", "max_depth = 4\n", `".toml"`},
		{"no extension", "hooks", "max_depth: 4\n", `""`},
		{"malformed yaml", "bad.yaml", "observability: [metrics\n", "malformed yaml"},
		{"malformed json", "bad.json", `{"max_depth": `, "malformed json"},
		{"invalid value", "deep.yaml", "max_depth: -2\n", "max_depth must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, tt.file, tt.body)

			_, err := config.SettingsFromFile(path)
			require.ErrorIs(t, err, config.ErrInvalidSettings)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.ErrorContains(t, err, path)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := config.SettingsFromFile(filepath.Join(dir, "absent.json"))
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.NotErrorIs(t, err, config.ErrInvalidSettings)
	})
}
