/*
Package config loads hookline dispatcher settings from YAML or JSON.

# Overview

Config wraps a decoded document and offers typed accessors that fall back
to a default when a key is missing or has the wrong type. Dotted keys reach
into nested sections.

	cfg := config.New(map[string]any{
	    "default_priority": 5,
	    "observability": map[string]any{"metrics": true},
	})

	cfg.Int("default_priority", 10)          // 5
	cfg.Bool("observability.metrics", false) // true
	cfg.String("missing", "default")         // "default"

# Settings

SettingsFrom turns a Config into the Settings the dispatcher understands
and validates them:

	cfg, err := config.FromFile("hooks.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	settings, err := config.SettingsFrom(cfg)

SettingsFromFile does both steps. Unknown extensions, malformed documents
and invalid values all wrap ErrInvalidSettings:

	settings, err := config.SettingsFromFile("hooks.json")
	if errors.Is(err, config.ErrInvalidSettings) {
	    // fix the file
	}

hookline.OptionsFromSettings converts Settings into dispatcher options.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
