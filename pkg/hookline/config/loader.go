package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// decoder turns a settings document into its generic key/value form.
type decoder func(data []byte, into *map[string]any) error

func decodeYAML(data []byte, into *map[string]any) error { return yaml.Unmarshal(data, into) }
func decodeJSON(data []byte, into *map[string]any) error { return json.Unmarshal(data, into) }

// formats maps a lower-cased file extension to its document format.
var formats = map[string]struct {
	name   string
	decode decoder
}{
	".yaml": {"yaml", decodeYAML},
	".yml":  {"yaml", decodeYAML},
	".json": {"json", decodeJSON},
}

// SettingsFromFile reads a hook settings file and returns the validated
// Settings. The format follows the extension: .yaml, .yml or .json.
//
// An unknown extension, a document that does not parse and a document
// that fails Validate all wrap ErrInvalidSettings. A file that cannot be
// read returns the underlying os error.
func SettingsFromFile(path string) (Settings, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	s, err := SettingsFrom(cfg)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// FromFile reads a settings document without interpreting it.
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formats[ext]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s: extension %q is not .yaml, .yml or .json", ErrInvalidSettings, path, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read hook settings: %w", err)
	}
	cfg, err := decode(format.name, format.decode, data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromYAML parses a YAML settings document.
func FromYAML(data []byte) (Config, error) {
	return decode("yaml", decodeYAML, data)
}

// FromJSON parses a JSON settings document.
func FromJSON(data []byte) (Config, error) {
	return decode("json", decodeJSON, data)
}

func decode(format string, fn decoder, data []byte) (Config, error) {
	var m map[string]any
	if err := fn(data, &m); err != nil {
		return Config{}, fmt.Errorf("%w: malformed %s: %v", ErrInvalidSettings, format, err)
	}
	return New(m), nil
}
