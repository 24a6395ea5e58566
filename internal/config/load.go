package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bennypowers.dev/svls/internal/log"
	"github.com/tidwall/jsonc"
)

// Files are the workspace configuration files, in lookup order. The first
// one present wins.
var Files = []string{
	".config/style-values.yaml",
	".config/style-values.yml",
	".config/style-values.json",
}

// Load reads the workspace configuration under rootPath on top of the
// defaults. A configuration file under .config wins over a
// styleValuesLanguageServer key in package.json. A workspace without either
// yields the defaults.
func Load(rootPath string) (Config, error) {
	if rootPath == "" {
		return Default(), nil
	}
	for _, name := range Files {
		path := filepath.Join(rootPath, name)
		data, err := os.ReadFile(path) //nolint:gosec // G304: workspace config file
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Default(), fmt.Errorf("failed to read %s: %w", name, err)
		}
		log.Info("Loading configuration from %s", path)
		return LoadFile(path, data)
	}
	return loadPackageJSON(rootPath)
}

// LoadFile parses a configuration file's data on top of the defaults,
// choosing the format by extension.
func LoadFile(path string, data []byte) (Config, error) {
	var (
		c   Config
		err error
	)
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		c, err = overlayYAML(Default(), data)
	case ".json":
		c, err = overlayJSON(Default(), jsonc.ToJSON(data))
	default:
		return Default(), fmt.Errorf("%w: unsupported config file %s", ErrInvalidConfig, filepath.Base(path))
	}
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// ReadFile reads and parses a configuration file.
func ReadFile(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied config path
	if err != nil {
		return Default(), fmt.Errorf("failed to read config: %w", err)
	}
	return LoadFile(path, data)
}

func loadPackageJSON(rootPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Join(rootPath, "package.json")) //nolint:gosec // G304: workspace package.json
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return Default(), fmt.Errorf("failed to parse package.json: %w", err)
	}
	raw, ok := pkg[SettingsKey]
	if !ok {
		return Default(), nil
	}
	c, err := overlayJSON(Default(), raw)
	if err != nil {
		return Default(), fmt.Errorf("package.json: %w", err)
	}
	log.Info("Loaded configuration from package.json")
	return c, nil
}
