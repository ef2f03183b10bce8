package fireflies

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/campfire/internal/procgen"
	"github.com/Faultbox/campfire/pkg/math"
)

// constSource always returns the same draw.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func newSim(t *testing.T, cfg Config) *Simulation {
	t.Helper()
	s, err := New(cfg, procgen.NewRandom(1), procgen.NewRandom(2))
	require.NoError(t, err)
	return s
}

func TestNew_Spawn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Center = math.Vec3{X: 1, Y: 0.5, Z: -2}
	s := newSim(t, cfg)
	require.Equal(t, 100, s.Len())

	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		assert.GreaterOrEqual(t, p.Position.X, cfg.Center.X-cfg.Radius/2)
		assert.Less(t, p.Position.X, cfg.Center.X+cfg.Radius/2)
		assert.GreaterOrEqual(t, p.Position.Y, cfg.Center.Y)
		assert.Less(t, p.Position.Y, cfg.Center.Y+cfg.HeightBoost)
		assert.GreaterOrEqual(t, p.Position.Z, cfg.Center.Z-cfg.Radius/2)
		assert.Less(t, p.Position.Z, cfg.Center.Z+cfg.Radius/2)
		for _, v := range []float64{p.Velocity.X, p.Velocity.Y, p.Velocity.Z} {
			assert.GreaterOrEqual(t, v, -0.05)
			assert.Less(t, v, 0.05)
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.Count = -1 }},
		{"negative radius", func(c *Config) { c.Radius = -1 }},
		{"negative height", func(c *Config) { c.HeightBoost = -0.5 }},
		{"nan speed", func(c *Config) { c.MaxSpeed = gomath.NaN() }},
		{"inf center", func(c *Config) { c.Center.Y = gomath.Inf(1) }},
		{"inverted x bounds", func(c *Config) { c.Bounds.XMin, c.Bounds.XMax = 1, -1 }},
		{"empty y bounds", func(c *Config) { c.Bounds.YMax = c.Bounds.YMin }},
		{"inverted flicker", func(c *Config) { c.Flicker = [2]float64{1.3, 0.5} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, procgen.NewRandom(1), procgen.NewRandom(1))
			assert.ErrorIs(t, err, procgen.ErrInvalidArgument)
		})
	}
}

func TestNew_Empty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 0
	s := newSim(t, cfg)
	assert.Equal(t, 0, s.Len())
	s.Tick()
	assert.Empty(t, s.Views())
}

func TestTick_Integrates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	s := newSim(t, cfg)
	s.particles[0] = Particle{
		Position: math.Vec3{X: 0, Y: 1, Z: 0},
		Velocity: math.Vec3{X: 0.01, Y: -0.02, Z: 0.03},
	}

	s.Tick()
	p := s.At(0)
	assert.InDelta(t, 0.01, p.Position.X, 1e-12)
	assert.InDelta(t, 0.98, p.Position.Y, 1e-12)
	assert.InDelta(t, 0.03, p.Position.Z, 1e-12)
	assert.Equal(t, math.Vec3{X: 0.01, Y: -0.02, Z: 0.03}, p.Velocity)
}

func TestTick_ReflectsWithOvershoot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	s := newSim(t, cfg)
	s.particles[0] = Particle{
		Position: math.Vec3{X: 9.98, Y: 1, Z: 0},
		Velocity: math.Vec3{X: 0.04, Y: 0, Z: 0},
	}

	s.Tick()
	p := s.At(0)
	assert.InDelta(t, 10.02, p.Position.X, 1e-12, "position is not clamped")
	assert.InDelta(t, -0.04, p.Velocity.X, 1e-12, "velocity flipped")

	s.Tick()
	p = s.At(0)
	assert.InDelta(t, 9.98, p.Position.X, 1e-12)
	assert.InDelta(t, -0.04, p.Velocity.X, 1e-12, "back inside, no second flip")
}

func TestTick_AxesIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 1
	s := newSim(t, cfg)
	s.particles[0] = Particle{
		Position: math.Vec3{X: 0, Y: -0.99, Z: -4.99},
		Velocity: math.Vec3{X: 0.01, Y: -0.02, Z: -0.02},
	}

	s.Tick()
	p := s.At(0)
	assert.InDelta(t, 0.01, p.Velocity.X, 1e-12)
	assert.InDelta(t, 0.02, p.Velocity.Y, 1e-12)
	assert.InDelta(t, 0.02, p.Velocity.Z, 1e-12)
}

func TestTick_StaysNearBounds(t *testing.T) {
	cfg := DefaultConfig()
	s := newSim(t, cfg)
	b := cfg.Bounds
	slack := cfg.MaxSpeed

	for range 5000 {
		s.Tick()
	}
	for _, v := range s.Views() {
		assert.GreaterOrEqual(t, v.Position.X, b.XMin-slack)
		assert.LessOrEqual(t, v.Position.X, b.XMax+slack)
		assert.GreaterOrEqual(t, v.Position.Y, b.YMin-slack)
		assert.LessOrEqual(t, v.Position.Y, b.YMax+slack)
		assert.GreaterOrEqual(t, v.Position.Z, b.ZMin-slack)
		assert.LessOrEqual(t, v.Position.Z, b.ZMax+slack)
	}
}

func TestTick_FlickerRange(t *testing.T) {
	s := newSim(t, DefaultConfig())
	for range 20 {
		s.Tick()
		for _, v := range s.Views() {
			assert.GreaterOrEqual(t, v.Brightness, 0.5)
			assert.Less(t, v.Brightness, 1.3)
		}
	}
}

func TestTick_FlickerDoesNotAffectTrajectory(t *testing.T) {
	cfg := DefaultConfig()
	a, err := New(cfg, procgen.NewRandom(5), constSource(0))
	require.NoError(t, err)
	b, err := New(cfg, procgen.NewRandom(5), procgen.NewRandom(99))
	require.NoError(t, err)

	for range 300 {
		a.Tick()
		b.Tick()
	}
	for i := 0; i < a.Len(); i++ {
		assert.Equal(t, a.At(i).Position, b.At(i).Position)
		assert.Equal(t, a.At(i).Velocity, b.At(i).Velocity)
	}
	assert.Equal(t, 0.5, a.At(0).Brightness)
}

func TestViews_Reused(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 3
	s := newSim(t, cfg)
	v1 := s.Views()
	require.Len(t, v1, 3)
	assert.Equal(t, s.At(2).Position, v1[2].Position)

	s.Tick()
	v2 := s.Views()
	assert.Equal(t, s.At(2).Position, v2[2].Position)
	assert.Same(t, &v1[0], &v2[0])
}
