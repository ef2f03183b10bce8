package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Faultbox/campfire/internal/procgen"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.Background != 0x1e2749 {
		t.Errorf("expected background 0x1e2749, got %#x", cfg.Graphics.Background)
	}

	if !cfg.Graphics.Shadows || cfg.Graphics.MSAA != 4 {
		t.Errorf("expected shadows with 4x MSAA, got %v/%d", cfg.Graphics.Shadows, cfg.Graphics.MSAA)
	}

	// Test audio defaults
	if !cfg.Audio.Enabled || cfg.Audio.Ambience != "campfire" || cfg.Audio.Volume != 0.6 {
		t.Errorf("unexpected audio defaults %+v", cfg.Audio)
	}

	// Test scene defaults
	if cfg.Scene.Forest.Count != 100 {
		t.Errorf("expected 100 trees, got %d", cfg.Scene.Forest.Count)
	}
	if cfg.Scene.Forest.Area != (procgen.Area{Width: 30, Depth: 20, Offset: 15}) {
		t.Errorf("unexpected forest area %+v", cfg.Scene.Forest.Area)
	}
	if cfg.Scene.Rocks.Count != 12 || cfg.Scene.Rocks.Radius != 0.7 {
		t.Errorf("unexpected rock ring %+v", cfg.Scene.Rocks)
	}
	if cfg.Scene.Stars.Count != 5000 {
		t.Errorf("expected 5000 stars, got %d", cfg.Scene.Stars.Count)
	}
	if cfg.Scene.Fireflies.Count != 100 {
		t.Errorf("expected 100 fireflies, got %d", cfg.Scene.Fireflies.Count)
	}
	if cfg.Scene.Seed != 0 {
		t.Errorf("expected clock seed by default, got %d", cfg.Scene.Seed)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  background: 0x000010

camera:
  auto_orbit: false
  position: {x: 1, y: 2, z: 3}

scene:
  seed: 1234
  forest:
    count: 40
    area: {width: 10, depth: 8, offset: 2}
  fireflies:
    count: 25
    flicker: [0.2, 0.9]
    bounds: {x_min: -3, x_max: 3, y_min: 0, y_max: 2, z_min: -1, z_max: 1}

logging:
  level: "debug"
  log_file: "campfire.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.Background != 0x10 {
		t.Errorf("expected background 0x10, got %#x", cfg.Graphics.Background)
	}
	if cfg.Camera.AutoOrbit {
		t.Error("expected auto orbit to be disabled")
	}
	if cfg.Camera.Position.Z != 3 {
		t.Errorf("expected camera z 3, got %v", cfg.Camera.Position.Z)
	}
	if cfg.Scene.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Scene.Seed)
	}
	if cfg.Scene.Forest.Count != 40 || cfg.Scene.Forest.Area.Width != 10 {
		t.Errorf("unexpected forest %+v", cfg.Scene.Forest)
	}
	// untouched keys keep their defaults
	if cfg.Scene.Forest.GroundY != -1.5 {
		t.Errorf("expected default ground y -1.5, got %v", cfg.Scene.Forest.GroundY)
	}
	if cfg.Scene.Fireflies.Count != 25 {
		t.Errorf("expected 25 fireflies, got %d", cfg.Scene.Fireflies.Count)
	}
	if cfg.Scene.Fireflies.Flicker != [2]float64{0.2, 0.9} {
		t.Errorf("unexpected flicker %v", cfg.Scene.Fireflies.Flicker)
	}
	if cfg.Scene.Fireflies.Bounds.XMax != 3 {
		t.Errorf("expected x_max 3, got %v", cfg.Scene.Fireflies.Bounds.XMax)
	}
	if cfg.Scene.Fireflies.MaxSpeed != 0.05 {
		t.Errorf("expected default max speed, got %v", cfg.Scene.Fireflies.MaxSpeed)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "campfire.log" {
		t.Errorf("expected log file 'campfire.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative msaa", func(c *Config) { c.Graphics.MSAA = -1 }},
		{"loud audio", func(c *Config) { c.Audio.Volume = 1.5 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"flat fov", func(c *Config) { c.Camera.FOV = 180 }},
		{"empty forest area", func(c *Config) { c.Scene.Forest.Area.Depth = 0 }},
		{"negative stars", func(c *Config) { c.Scene.Stars.Count = -5 }},
		{"rock sizes inverted", func(c *Config) { c.Scene.Rocks.MinSize, c.Scene.Rocks.MaxSize = 0.3, 0.1 }},
		{"fire flicker inverted", func(c *Config) { c.Scene.Campfire.FlickerMin = 3 }},
		{"firefly bounds", func(c *Config) { c.Scene.Fireflies.Bounds.ZMin = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, procgen.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir := ConfigDir()
	if dir == "" {
		t.Fatal("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
	if runtime.GOOS == "linux" && dir != filepath.Join(xdg, "campfire") {
		t.Errorf("expected dir under XDG_CONFIG_HOME, got %s", dir)
	}
}

func TestResolvePath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	// No config file exists - should return empty
	if path := resolvePath(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if runtime.GOOS == "linux" {
		userPath := filepath.Join(xdg, "campfire", "config.yaml")
		if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(userPath, []byte("graphics:\n  width: 640\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if path := resolvePath(); path != userPath {
			t.Errorf("expected %s, got %s", userPath, path)
		}
	}

	// The working directory wins over the user config directory
	if err := os.WriteFile("config.yaml", []byte("graphics:\n  width: 800\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := resolvePath(); path != "config.yaml" {
		t.Errorf("expected config.yaml in current directory, got %s", path)
	}

	*flagConfig = "/elsewhere/campfire.yaml"
	defer func() { *flagConfig = "" }()
	if path := resolvePath(); path != "/elsewhere/campfire.yaml" {
		t.Errorf("expected --config path, got %s", path)
	}
}

func TestLoadFromFileUnknownKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  widht: 800\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for misspelled key, got nil")
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should keep defaults: %v", err)
	}
	if cfg.Graphics.Width != Default().Graphics.Width {
		t.Errorf("expected default width, got %d", cfg.Graphics.Width)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("config root follows XDG_CONFIG_HOME on linux only")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	cfg := Default()
	cfg.Scene.Seed = 9
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != filepath.Join(xdg, "campfire", "config.yaml") {
		t.Errorf("unexpected save path %s", path)
	}

	// Load picks the saved file up from the user config directory
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Scene.Seed != 9 {
		t.Errorf("expected seed 9 from saved config, got %d", loaded.Scene.Seed)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Seed = 77
	cfg.Scene.Fireflies.Count = 5
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Scene.Seed != 77 || loaded.Scene.Fireflies.Count != 5 {
		t.Errorf("saved values not restored: seed=%d fireflies=%d",
			loaded.Scene.Seed, loaded.Scene.Fireflies.Count)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 42 },
			verify: func(cfg *Config) {
				if cfg.Scene.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Scene.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "count flags",
			setup: func() {
				*flagFireflies = 0
				*flagTrees = 7
			},
			verify: func(cfg *Config) {
				if cfg.Scene.Fireflies.Count != 0 {
					t.Errorf("expected 0 fireflies, got %d", cfg.Scene.Fireflies.Count)
				}
				if cfg.Scene.Forest.Count != 7 {
					t.Errorf("expected 7 trees, got %d", cfg.Scene.Forest.Count)
				}
			},
			teardown: func() {
				*flagFireflies = -1
				*flagTrees = -1
			},
		},
		{
			name:  "no-orbit flag",
			setup: func() { *flagNoOrbit = true },
			verify: func(cfg *Config) {
				if cfg.Camera.AutoOrbit {
					t.Error("expected auto orbit off")
				}
			},
			teardown: func() { *flagNoOrbit = false },
		},
		{
			name:  "no-shadows flag",
			setup: func() { *flagNoShadows = true },
			verify: func(cfg *Config) {
				if cfg.Graphics.Shadows {
					t.Error("expected shadows off")
				}
			},
			teardown: func() { *flagNoShadows = false },
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(cfg *Config) {
				if cfg.Audio.Enabled {
					t.Error("expected audio off")
				}
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides the config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  rocks:\n    min_size: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, procgen.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
