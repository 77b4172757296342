package hookline

import (
	"log/slog"
	"os"

	"github.com/randalmurphal/hookline/pkg/hookline/config"
)

// OptionsFromSettings converts file settings into dispatcher options.
// A LogLevel produces a JSON logger writing to stderr.
func OptionsFromSettings(s config.Settings) []Option {
	opts := []Option{
		WithDefaultPriority(s.DefaultPriority),
		WithMaxDepth(s.MaxDepth),
		WithMetrics(s.Metrics),
		WithTracing(s.Tracing),
	}
	if level, ok := s.Level(); ok {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		opts = append(opts, WithLogger(logger))
	}
	return opts
}

// LoadOptions reads a YAML or JSON settings file and returns the matching
// dispatcher options. Files that cannot be parsed or hold unusable values
// fail with an error wrapping config.ErrInvalidSettings.
//
// Example:
//
//	opts, err := hookline.LoadOptions("hooks.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d := hookline.New(opts...)
func LoadOptions(path string) ([]Option, error) {
	s, err := config.SettingsFromFile(path)
	if err != nil {
		return nil, err
	}
	return OptionsFromSettings(s), nil
}
