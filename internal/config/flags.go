package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.Uint64("seed", 0, "Scene random seed (0 = from clock)")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFireflies  = flag.Int("fireflies", -1, "Number of fireflies")
	flagTrees      = flag.Int("trees", -1, "Number of forest trees")
	flagNoOrbit    = flag.Bool("no-orbit", false, "Disable the automatic camera orbit")
	flagNoShadows  = flag.Bool("no-shadows", false, "Disable moonlight shadows")
	flagMute       = flag.Bool("mute", false, "Disable the fire ambience")

	flagWriteConfig = flag.Bool("write-config", false, "Write the effective config to the user config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfig reports whether --write-config was given.
func WriteConfig() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != 0 {
		cfg.Scene.Seed = *flagSeed
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFireflies >= 0 {
		cfg.Scene.Fireflies.Count = *flagFireflies
	}
	if *flagTrees >= 0 {
		cfg.Scene.Forest.Count = *flagTrees
	}
	if *flagNoOrbit {
		cfg.Camera.AutoOrbit = false
	}
	if *flagNoShadows {
		cfg.Graphics.Shadows = false
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
