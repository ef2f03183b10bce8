package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes c to ConfigDir, where Load finds it on the next start, and
// returns the file written.
func (c *Config) Save() (string, error) {
	dir := ConfigDir()
	if dir == "" {
		return "", errors.New("no user config directory")
	}
	path := filepath.Join(dir, fileName)
	return path, c.SaveTo(path)
}

// SaveTo writes c as YAML to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
