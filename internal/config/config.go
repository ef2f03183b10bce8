// Package config handles scene configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/campfire/internal/fireflies"
	"github.com/Faultbox/campfire/internal/procgen"
	"github.com/Faultbox/campfire/pkg/math"
)

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Textures TexturesConfig `yaml:"textures"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	Background uint32  `yaml:"background"`
	FogDensity float32 `yaml:"fog_density"`
	Shadows    bool    `yaml:"shadows"`
	MSAA       int     `yaml:"msaa"` // samples, 0 disables
	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// CameraConfig holds the orbit camera settings.
type CameraConfig struct {
	Position   math.Vec3 `yaml:"position"`
	Target     math.Vec3 `yaml:"target"`
	FOV        float32   `yaml:"fov"`
	Near       float32   `yaml:"near"`
	Far        float32   `yaml:"far"`
	AutoOrbit  bool      `yaml:"auto_orbit"`
	OrbitSpeed float32   `yaml:"orbit_speed"` // radians per second
}

// SceneConfig holds the campsite layout.
type SceneConfig struct {
	// Seed drives every random draw. Zero picks a seed from the clock.
	Seed      uint64           `yaml:"seed"`
	Ground    GroundConfig     `yaml:"ground"`
	Forest    ForestConfig     `yaml:"forest"`
	Rocks     RocksConfig      `yaml:"rocks"`
	Campfire  CampfireConfig   `yaml:"campfire"`
	Stars     StarsConfig      `yaml:"stars"`
	Moon      MoonConfig       `yaml:"moon"`
	Fireflies fireflies.Config `yaml:"fireflies"`
}

// GroundConfig is the flat plane under the camp.
type GroundConfig struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
	Y     float64 `yaml:"y"`
}

// ForestConfig is the scatter of trees behind the camp.
type ForestConfig struct {
	Area    procgen.Area `yaml:"area"`
	Count   int          `yaml:"count"`
	GroundY float64      `yaml:"ground_y"`
}

// RocksConfig is the ring of stones around the fire.
type RocksConfig struct {
	Radius  float64 `yaml:"radius"`
	Count   int     `yaml:"count"`
	MinSize float64 `yaml:"min_size"`
	MaxSize float64 `yaml:"max_size"`
}

// CampfireConfig positions the fire pit.
type CampfireConfig struct {
	Center        math.Vec3 `yaml:"center"`
	LogHeight     float64   `yaml:"log_height"`
	ChairPosition math.Vec3 `yaml:"chair_position"`
	ChairRotation math.Vec3 `yaml:"chair_rotation"`
	FlickerMin    float32   `yaml:"flicker_min"`
	FlickerMax    float32   `yaml:"flicker_max"`
	LightOffset   math.Vec3 `yaml:"light_offset"`
	LightRange    float32   `yaml:"light_range"`
}

// StarsConfig is the random star field.
type StarsConfig struct {
	Count  int     `yaml:"count"`
	Extent float64 `yaml:"extent"`
	Size   float64 `yaml:"size"`
}

// MoonConfig places the moon and its light.
type MoonConfig struct {
	Position      math.Vec3 `yaml:"position"`
	LightPosition math.Vec3 `yaml:"light_position"`
}

// TexturesConfig locates texture images.
type TexturesConfig struct {
	Dir string `yaml:"dir"`
}

// AudioConfig holds the ambience settings.
type AudioConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Dir      string  `yaml:"dir"`
	Ambience string  `yaml:"ambience"` // file name without .wav
	Volume   float64 `yaml:"volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config reproducing the campsite.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			Background: 0x1e2749,
			FogDensity: 0.03,
			Shadows:    true,
			MSAA:       4,

			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			Position:   math.Vec3{X: 0, Y: 1, Z: 10},
			Target:     math.Vec3{},
			FOV:        75,
			Near:       0.1,
			Far:        1000,
			AutoOrbit:  true,
			OrbitSpeed: 0.05,
		},
		Scene: SceneConfig{
			Ground: GroundConfig{Width: 33, Depth: 55, Y: -1.5},
			Forest: ForestConfig{
				Area:    procgen.Area{Width: 30, Depth: 20, Offset: 15},
				Count:   100,
				GroundY: -1.5,
			},
			Rocks: RocksConfig{Radius: 0.7, Count: 12, MinSize: 0.1, MaxSize: 0.3},
			Campfire: CampfireConfig{
				Center:        math.Vec3{X: 3, Y: -1.4, Z: 0},
				LogHeight:     -1.3,
				ChairPosition: math.Vec3{X: 2.5, Y: -1.3, Z: -1.2},
				ChairRotation: math.Vec3{X: 1.5707963267948966, Y: 0, Z: 1.3},
				FlickerMin:    0.5,
				FlickerMax:    2.0,
				LightOffset:   math.Vec3{X: 0.25, Y: 0.4, Z: 0},
				LightRange:    10,
			},
			Stars: StarsConfig{Count: 5000, Extent: 100, Size: 0.05},
			Moon: MoonConfig{
				Position:      math.Vec3{X: 5, Y: 15, Z: -15},
				LightPosition: math.Vec3{X: 5, Y: 10, Z: -10},
			},
			Fireflies: fireflies.DefaultConfig(),
		},
		Textures: TexturesConfig{Dir: "texture"},
		Audio: AudioConfig{
			Enabled:  true,
			Dir:      "sound",
			Ambience: "campfire",
			Volume:   0.6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings that would otherwise fail deep inside
// scene assembly or the renderer.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics size %dx%d: %w", c.Graphics.Width, c.Graphics.Height, procgen.ErrInvalidArgument)
	}
	if c.Graphics.MSAA < 0 || c.Graphics.FogDensity < 0 {
		return fmt.Errorf("graphics msaa %d fog %v: %w", c.Graphics.MSAA, c.Graphics.FogDensity, procgen.ErrInvalidArgument)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range [%v, %v]: %w", c.Camera.Near, c.Camera.Far, procgen.ErrInvalidArgument)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov %v: %w", c.Camera.FOV, procgen.ErrInvalidArgument)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %v: %w", c.Audio.Volume, procgen.ErrInvalidArgument)
	}
	s := c.Scene
	if err := s.Forest.Area.Validate(); err != nil {
		return fmt.Errorf("forest: %w", err)
	}
	if s.Forest.Count < 0 || s.Rocks.Count < 0 || s.Stars.Count < 0 {
		return fmt.Errorf("negative object count: %w", procgen.ErrInvalidArgument)
	}
	if s.Rocks.MinSize <= 0 || s.Rocks.MaxSize < s.Rocks.MinSize {
		return fmt.Errorf("rock size range [%v, %v]: %w", s.Rocks.MinSize, s.Rocks.MaxSize, procgen.ErrInvalidArgument)
	}
	if s.Campfire.FlickerMin < 0 || s.Campfire.FlickerMax < s.Campfire.FlickerMin {
		return fmt.Errorf("fire flicker range [%v, %v]: %w", s.Campfire.FlickerMin, s.Campfire.FlickerMax, procgen.ErrInvalidArgument)
	}
	if err := s.Fireflies.Validate(); err != nil {
		return fmt.Errorf("fireflies: %w", err)
	}
	return nil
}
