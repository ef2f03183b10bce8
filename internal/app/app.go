// Package app runs the campfire scene: window, frame loop and input.
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/campsite"
	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/engine/audio"
	"github.com/Faultbox/campfire/internal/engine/camera"
	"github.com/Faultbox/campfire/internal/engine/debug"
	"github.com/Faultbox/campfire/internal/engine/input"
	"github.com/Faultbox/campfire/internal/engine/renderer"
	"github.com/Faultbox/campfire/internal/engine/window"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/internal/procgen"
	"github.com/Faultbox/campfire/pkg/math"
)

const (
	title = "Campfire"

	// volumeStep is the master volume change per key press.
	volumeStep = 0.1
)

// App is the running scene.
type App struct {
	config  *config.Config
	log     *zap.Logger
	running bool
	paused  bool

	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	camera      *camera.OrbitCamera
	scene       *campsite.Scene
	audio       *audio.Manager
	screenshots *debug.ScreenshotCapture
}

// New builds the scene and opens the window.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		log:    logger.Named("app"),
	}

	seed := ResolveSeed(cfg.Scene.Seed, time.Now())
	a.log.Info("building scene", zap.Uint64("seed", seed))

	var err error
	a.scene, err = campsite.Build(cfg.Scene, procgen.NewRandom(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Graphics.Background,
		FogDensity: cfg.Graphics.FogDensity,
		TextureDir: cfg.Textures.Dir,
		Shadows:    cfg.Graphics.Shadows,
		MSAA:       cfg.Graphics.MSAA > 0,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := a.renderer.Load(a.scene); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to upload scene: %w", err)
	}

	a.camera = newCamera(cfg.Camera)
	a.camera.SetViewport(width, height)
	a.input = input.New()
	a.screenshots = debug.NewScreenshotCapture(cfg.Graphics.ScreenshotDir, "campfire")
	if cfg.Audio.Enabled {
		a.startAudio(cfg.Audio)
	}

	a.log.Info("app initialized")
	return a, nil
}

// ResolveSeed returns seed, or a seed taken from now when seed is zero.
func ResolveSeed(seed uint64, now time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	if s := uint64(now.UnixNano()); s != 0 {
		return s
	}
	return 1
}

// startAudio begins the fire ambience. Audio is optional: any failure is
// logged and the scene runs silent.
func (a *App) startAudio(cfg config.AudioConfig) {
	path, err := audio.Resolve(cfg.Dir, cfg.Ambience)
	if err != nil {
		a.log.Info("no ambience track", zap.Error(err))
		return
	}
	m := audio.New(cfg.Volume)
	if err := m.Init(); err != nil {
		a.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	f, err := os.Open(path)
	if err != nil {
		a.log.Warn("ambience unreadable", zap.Error(err))
		m.Close()
		return
	}
	if err := m.PlayLoop(f); err != nil {
		a.log.Warn("ambience unplayable", zap.String("file", path), zap.Error(err))
		m.Close()
		return
	}
	a.audio = m
	a.log.Info("ambience playing", zap.String("file", path))
}

func newCamera(cfg config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera(vec(cfg.Position), vec(cfg.Target))
	cam.FOV = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.AutoOrbit = cfg.AutoOrbit
	cam.OrbitSpeed = cfg.OrbitSpeed
	return cam
}

func vec(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3(v.Float32())
}

// Run starts the frame loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var minFrame time.Duration
	if a.config.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(a.config.Graphics.FPSLimit)
	}

	a.log.Info("starting frame loop")

	for a.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		if a.input.Update() {
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event)
		}

		a.camera.Update(dt)
		if !a.paused {
			a.scene.Update()
			if a.audio != nil {
				fc := a.config.Scene.Campfire
				a.audio.SetLevel(audio.FireLevel(a.scene.FireLight.Intensity, fc.FlickerMin, fc.FlickerMax))
			}
		}
		a.renderer.Render(a.camera, a.scene)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("dt_ms", dt*1000),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if rest := minFrame - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	a.running = false
	return nil
}

func (a *App) handle(event input.Event) {
	switch event.Type {
	case input.EventQuit:
		a.running = false
	case input.EventWindowResize:
		width, height := a.window.DrawableSize()
		a.renderer.Resize(width, height)
		a.camera.SetViewport(width, height)
	case input.EventDrag:
		a.camera.HandleDrag(event.DX, event.DY)
	case input.EventZoom:
		a.camera.HandleZoom(event.Wheel)
	case input.EventKeyDown:
		a.handleKey(event.Key)
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_SPACE:
		a.paused = !a.paused
		if a.audio != nil {
			a.audio.SetPaused(a.paused)
		}
		a.log.Info("simulation paused", zap.Bool("paused", a.paused))
	case sdl.SCANCODE_O:
		a.camera.AutoOrbit = !a.camera.AutoOrbit
		a.log.Info("auto orbit", zap.Bool("enabled", a.camera.AutoOrbit))
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_MINUS:
		if a.audio == nil {
			return
		}
		step := volumeStep
		if key == sdl.SCANCODE_MINUS {
			step = -step
		}
		a.audio.SetMasterVolume(a.audio.MasterVolume() + step)
		a.log.Info("volume", zap.Float64("master", a.audio.MasterVolume()))
	case sdl.SCANCODE_F12:
		pixels, w, h := a.renderer.ReadPixels()
		name, err := a.screenshots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			a.log.Warn("screenshot failed", zap.Error(err))
			return
		}
		a.log.Info("screenshot saved", zap.String("file", name))
	}
}

// Close releases the renderer and window.
func (a *App) Close() {
	a.log.Info("closing app")

	if a.audio != nil {
		a.audio.Close()
		a.audio = nil
	}
	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}
