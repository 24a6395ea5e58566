// Package config holds the server configuration and reads it from workspace
// files and client settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"bennypowers.dev/svls/internal/documents"
	"bennypowers.dev/svls/internal/log"
	"bennypowers.dev/svls/internal/scanner"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// SettingsKey is the key client settings and package.json nest our
// configuration under.
const SettingsKey = "styleValuesLanguageServer"

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the server configuration.
type Config struct {
	// Include lists doublestar globs, relative to the workspace root, of the
	// documents that get annotated. Empty means every supported document.
	Include []string `json:"include" yaml:"include"`
	// HistoryDelay is the idle time after which free-text edits become one
	// undo entry.
	HistoryDelay Duration `json:"historyDelay" yaml:"historyDelay"`
	// ScanCacheSize bounds the number of cached scan results.
	ScanCacheSize int `json:"scanCacheSize" yaml:"scanCacheSize"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel" yaml:"logLevel"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Include:       []string{},
		HistoryDelay:  Duration(documents.DefaultHistoryDelay),
		ScanCacheSize: scanner.DefaultCacheSize,
		LogLevel:      "info",
	}
}

// Validate reports the first out-of-range value, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	if c.HistoryDelay < 0 {
		return fmt.Errorf("%w: historyDelay must not be negative, got %s", ErrInvalidConfig, c.HistoryDelay)
	}
	if c.ScanCacheSize <= 0 {
		return fmt.Errorf("%w: scanCacheSize must be positive, got %d", ErrInvalidConfig, c.ScanCacheSize)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad include pattern %q", ErrInvalidConfig, pattern)
		}
	}
	return nil
}

// Includes reports whether the file at path is covered by the include globs.
// Relative patterns match against the path relative to rootPath.
func (c Config) Includes(rootPath, path string) bool {
	if len(c.Include) == 0 {
		return true
	}
	rel := path
	if rootPath != "" {
		if r, err := filepath.Rel(rootPath, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	abs := filepath.ToSlash(path)
	for _, pattern := range c.Include {
		target := rel
		if strings.HasPrefix(pattern, "/") {
			target = abs
		}
		if ok, err := doublestar.Match(pattern, target); err == nil && ok {
			return true
		}
	}
	return false
}

// FromSettings overlays client settings onto base. Settings arrive either
// nested under SettingsKey or as the bare object.
func FromSettings(base Config, settings any) (Config, error) {
	if settings == nil {
		return base, nil
	}
	m, ok := settings.(map[string]any)
	if !ok {
		return base, fmt.Errorf("%w: settings is not an object", ErrInvalidConfig)
	}
	if nested, ok := m[SettingsKey]; ok {
		if m, ok = nested.(map[string]any); !ok {
			return base, fmt.Errorf("%w: %s must be an object", ErrInvalidConfig, SettingsKey)
		}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return base, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return overlayJSON(base, data)
}

func overlayJSON(base Config, data []byte) (Config, error) {
	c := base
	if err := json.Unmarshal(data, &c); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return base, err
	}
	return c, nil
}

func overlayYAML(base Config, data []byte) (Config, error) {
	c := base
	if err := yaml.Unmarshal(data, &c); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return base, err
	}
	return c, nil
}

// Duration is a time.Duration that reads from a Go duration string such as
// "300ms" or from a bare number of milliseconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalText writes the Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts a duration string or milliseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return d.set(v)
}

// UnmarshalYAML accepts a duration string or milliseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch v := v.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("bad duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(v * float64(time.Millisecond)))
	case int:
		*d = Duration(time.Duration(v) * time.Millisecond)
	default:
		return fmt.Errorf("bad duration %v", v)
	}
	return nil
}
