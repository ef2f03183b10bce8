// Package fireflies simulates a fixed swarm of drifting point lights.
//
// The integrator is frame-locked: every Tick advances each particle by its
// velocity once, regardless of wall-clock time. When a particle leaves the
// bounds on an axis, that velocity component is negated but the position is
// left where it is, so a particle may sit outside the box for a frame
// before it turns around.
package fireflies

import (
	"fmt"

	"github.com/Faultbox/campfire/internal/procgen"
	"github.com/Faultbox/campfire/pkg/math"
)

// Bounds is the axis-aligned box particles are reflected inside.
type Bounds struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
	ZMin float64 `yaml:"z_min"`
	ZMax float64 `yaml:"z_max"`
}

// Validate checks that each axis has min < max.
func (b Bounds) Validate() error {
	axes := []struct {
		name     string
		min, max float64
	}{
		{"x", b.XMin, b.XMax},
		{"y", b.YMin, b.YMax},
		{"z", b.ZMin, b.ZMax},
	}
	for _, a := range axes {
		if !math.IsFinite(a.min) || !math.IsFinite(a.max) || a.min >= a.max {
			return fmt.Errorf("bounds %s [%v, %v]: %w", a.name, a.min, a.max, procgen.ErrInvalidArgument)
		}
	}
	return nil
}

// Config describes how the swarm is spawned and constrained.
type Config struct {
	Count       int        `yaml:"count"`
	Center      math.Vec3  `yaml:"center"`
	Radius      float64    `yaml:"radius"`
	HeightBoost float64    `yaml:"height_boost"`
	MaxSpeed    float64    `yaml:"max_speed"`
	Bounds      Bounds     `yaml:"bounds"`
	Flicker     [2]float64 `yaml:"flicker"`
}

// DefaultConfig returns the campsite swarm: a hundred fireflies around the
// origin, kept over the ground and under the tree tops.
func DefaultConfig() Config {
	return Config{
		Count:       100,
		Radius:      2,
		HeightBoost: 2,
		MaxSpeed:    0.05,
		Bounds: Bounds{
			XMin: -10, XMax: 10,
			YMin: -1.0, YMax: 4,
			ZMin: -5, ZMax: 5,
		},
		Flicker: [2]float64{0.5, 1.3},
	}
}

// Validate checks every field for domain errors.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("firefly count %d: %w", c.Count, procgen.ErrInvalidArgument)
	}
	if !c.Center.IsFinite() {
		return fmt.Errorf("spawn center %v: %w", c.Center, procgen.ErrInvalidArgument)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"spawn radius", c.Radius},
		{"height boost", c.HeightBoost},
		{"max speed", c.MaxSpeed},
	} {
		if !math.IsFinite(f.v) || f.v < 0 {
			return fmt.Errorf("%s %v: %w", f.name, f.v, procgen.ErrInvalidArgument)
		}
	}
	lo, hi := c.Flicker[0], c.Flicker[1]
	if !math.IsFinite(lo) || !math.IsFinite(hi) || lo < 0 || lo > hi {
		return fmt.Errorf("flicker range [%v, %v]: %w", lo, hi, procgen.ErrInvalidArgument)
	}
	return c.Bounds.Validate()
}

// Particle is a single firefly.
type Particle struct {
	Position   math.Vec3
	Velocity   math.Vec3
	Brightness float64
}

// View is the read-only projection handed to the renderer.
type View struct {
	Position   math.Vec3
	Brightness float64
}

// Simulation owns the swarm. It is not safe for concurrent use.
type Simulation struct {
	cfg       Config
	particles []Particle
	flicker   procgen.RandomSource
	views     []View
}

// New spawns cfg.Count particles using spawn for positions and velocities.
// flicker drives the per-tick brightness and nothing else, so trajectories
// depend only on spawn.
func New(cfg Config, spawn, flicker procgen.RandomSource) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:       cfg,
		particles: make([]Particle, cfg.Count),
		flicker:   flicker,
		views:     make([]View, cfg.Count),
	}
	for i := range s.particles {
		p := &s.particles[i]
		p.Position = math.Vec3{
			X: cfg.Center.X + (spawn.Float64()-0.5)*cfg.Radius,
			Y: cfg.Center.Y + spawn.Float64()*cfg.HeightBoost,
			Z: cfg.Center.Z + (spawn.Float64()-0.5)*cfg.Radius,
		}
		p.Velocity = math.Vec3{
			X: spawn.Float64()*2*cfg.MaxSpeed - cfg.MaxSpeed,
			Y: spawn.Float64()*2*cfg.MaxSpeed - cfg.MaxSpeed,
			Z: spawn.Float64()*2*cfg.MaxSpeed - cfg.MaxSpeed,
		}
		p.Brightness = cfg.Flicker[0]
	}
	return s, nil
}

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Len returns the fixed number of particles.
func (s *Simulation) Len() int {
	return len(s.particles)
}

// At returns a copy of particle i.
func (s *Simulation) At(i int) Particle {
	return s.particles[i]
}

// Tick advances every particle one step and resamples its brightness.
func (s *Simulation) Tick() {
	b := s.cfg.Bounds
	lo, hi := s.cfg.Flicker[0], s.cfg.Flicker[1]
	for i := range s.particles {
		p := &s.particles[i]
		p.Position = p.Position.Add(p.Velocity)

		if p.Position.X < b.XMin || p.Position.X > b.XMax {
			p.Velocity.X = -p.Velocity.X
		}
		if p.Position.Z < b.ZMin || p.Position.Z > b.ZMax {
			p.Velocity.Z = -p.Velocity.Z
		}
		if p.Position.Y < b.YMin || p.Position.Y > b.YMax {
			p.Velocity.Y = -p.Velocity.Y
		}

		p.Brightness = lo + s.flicker.Float64()*(hi-lo)
	}
}

// Views returns the current positions and brightness. The slice is reused
// between calls and is only valid until the next Tick.
func (s *Simulation) Views() []View {
	for i, p := range s.particles {
		s.views[i] = View{Position: p.Position, Brightness: p.Brightness}
	}
	return s.views
}
