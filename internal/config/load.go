package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileName is looked up in the working directory, then in ConfigDir.
const fileName = "config.yaml"

// Load builds the effective config. Defaults are overlaid by the config
// file, then by command-line flags, and the result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolvePath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolvePath returns the --config path if set, else the first search
// path holding a regular file, else "".
func resolvePath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	for _, p := range searchPaths() {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

func searchPaths() []string {
	paths := []string{fileName}
	if dir := ConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return paths
}

// ConfigDir is the campfire directory under the user's config root:
// $XDG_CONFIG_HOME or ~/.config on Linux, ~/Library/Application Support
// on macOS, %AppData% on Windows. It is "" when no root can be found.
func ConfigDir() string {
	root, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(root, "campfire")
}

// loadFromFile overlays the YAML document at path onto cfg. Keys that
// match no field are an error so typos do not pass silently.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
