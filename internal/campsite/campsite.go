// Package campsite assembles the campfire scene from its configuration.
package campsite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/config"
	"github.com/Faultbox/campfire/internal/engine/lighting"
	"github.com/Faultbox/campfire/internal/fireflies"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/internal/procgen"
	"github.com/Faultbox/campfire/pkg/math"
)

// Scene is everything the renderer draws. Instances and Stars never change
// after Build; Fireflies and the fire light are advanced by the frame loop.
type Scene struct {
	Instances []procgen.InstanceDescriptor
	Stars     []math.Vec3
	StarStyle procgen.InstanceDescriptor
	Firefly   procgen.InstanceDescriptor
	Fireflies *fireflies.Simulation
	Lights    lighting.Rig

	// FireLight points into Lights.Points.
	FireLight *lighting.PointLight
	Flicker   *lighting.Flicker
}

// Build lays out the campsite. Every random draw comes from rng, so the
// same seed always yields the same scene.
func Build(cfg config.SceneConfig, rng procgen.RandomSource) (*Scene, error) {
	log := logger.Named("campsite")
	s := &Scene{}

	ground, err := procgen.Ground(cfg.Ground.Width, cfg.Ground.Depth, cfg.Ground.Y)
	if err != nil {
		return nil, fmt.Errorf("ground: %w", err)
	}
	central, err := procgen.CentralTree()
	if err != nil {
		return nil, fmt.Errorf("central tree: %w", err)
	}
	s.Instances = append(s.Instances, ground, central)

	trees, err := forest(cfg.Forest, rng)
	if err != nil {
		return nil, fmt.Errorf("forest: %w", err)
	}
	s.Instances = append(s.Instances, trees...)

	rocks, err := rockRing(cfg.Campfire.Center, cfg.Rocks, rng)
	if err != nil {
		return nil, fmt.Errorf("rocks: %w", err)
	}
	s.Instances = append(s.Instances, rocks...)

	fire, err := campfire(cfg.Campfire)
	if err != nil {
		return nil, fmt.Errorf("campfire: %w", err)
	}
	s.Instances = append(s.Instances, fire...)

	moon, err := procgen.Moon(cfg.Moon.Position)
	if err != nil {
		return nil, fmt.Errorf("moon: %w", err)
	}
	s.Instances = append(s.Instances, moon)

	if s.Stars, err = procgen.ScatterInCube(cfg.Stars.Extent, cfg.Stars.Count, rng); err != nil {
		return nil, fmt.Errorf("stars: %w", err)
	}
	if s.StarStyle, err = procgen.StarPoint(cfg.Stars.Size); err != nil {
		return nil, fmt.Errorf("stars: %w", err)
	}

	if s.Firefly, err = procgen.FireflyBody(); err != nil {
		return nil, fmt.Errorf("fireflies: %w", err)
	}
	if s.Fireflies, err = fireflies.New(cfg.Fireflies, rng, rng); err != nil {
		return nil, fmt.Errorf("fireflies: %w", err)
	}

	s.Lights = rig(cfg)
	s.FireLight = &s.Lights.Points[len(s.Lights.Points)-1]
	s.Flicker = lighting.NewFlicker(s.FireLight, cfg.Campfire.FlickerMin, cfg.Campfire.FlickerMax, rng)

	log.Debug("scene built",
		zap.Int("instances", len(s.Instances)),
		zap.Int("trees", len(trees)),
		zap.Int("rocks", len(rocks)),
		zap.Int("stars", len(s.Stars)),
		zap.Int("fireflies", s.Fireflies.Len()),
	)
	return s, nil
}

// Update advances the per-frame state: fireflies and fire flicker.
func (s *Scene) Update() {
	s.Fireflies.Tick()
	s.Flicker.Update()
}

func forest(cfg config.ForestConfig, rng procgen.RandomSource) ([]procgen.InstanceDescriptor, error) {
	poses, err := procgen.ScatterInArea(cfg.Area, cfg.GroundY, cfg.Count, rng)
	if err != nil {
		return nil, err
	}
	trees := make([]procgen.InstanceDescriptor, 0, len(poses))
	for _, p := range poses {
		t, err := procgen.Tree(p.Position)
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

func rockRing(center math.Vec3, cfg config.RocksConfig, rng procgen.RandomSource) ([]procgen.InstanceDescriptor, error) {
	poses, err := procgen.RingPlacement(center, cfg.Radius, cfg.Count, rng)
	if err != nil {
		return nil, err
	}
	rocks := make([]procgen.InstanceDescriptor, 0, len(poses))
	for _, p := range poses {
		size := cfg.MinSize + rng.Float64()*(cfg.MaxSize-cfg.MinSize)
		r, err := procgen.Rock(size, p)
		if err != nil {
			return nil, err
		}
		rocks = append(rocks, r)
	}
	return rocks, nil
}

func campfire(cfg config.CampfireConfig) ([]procgen.InstanceDescriptor, error) {
	base, err := procgen.FireBase(cfg.Center)
	if err != nil {
		return nil, err
	}
	logPos := math.Vec3{X: cfg.Center.X, Y: cfg.LogHeight, Z: cfg.Center.Z}
	logs, err := procgen.CrossedLogs(logPos)
	if err != nil {
		return nil, err
	}
	chair, err := procgen.ChairLog(cfg.ChairPosition, cfg.ChairRotation)
	if err != nil {
		return nil, err
	}
	out := append([]procgen.InstanceDescriptor{base}, logs...)
	return append(out, chair), nil
}

// rig returns the night lighting. The fire light is always the last point
// light.
func rig(cfg config.SceneConfig) lighting.Rig {
	groundTarget := [3]float32{0, float32(cfg.Ground.Y), 0}
	return lighting.Rig{
		AmbientColor:     lighting.RGB(0xffffff),
		AmbientIntensity: 0.4,
		Directional: []lighting.DirectionalLight{
			{
				Position:  [3]float32{5, 10, 5},
				Color:     lighting.RGB(0xffffff),
				Intensity: 1,
			},
			{
				Position:   lighting.Vec(cfg.Moon.LightPosition),
				Target:     groundTarget,
				Color:      lighting.RGB(0xb0c4de),
				Intensity:  0.8,
				CastShadow: true,
			},
		},
		Points: []lighting.PointLight{
			{
				Position:  [3]float32{2, 5, 2},
				Color:     lighting.RGB(0xffffff),
				Range:     20,
				Intensity: 1,
			},
			{
				Position:  lighting.Vec(cfg.Campfire.Center.Add(cfg.Campfire.LightOffset)),
				Color:     lighting.RGB(0xffa500),
				Range:     cfg.Campfire.LightRange,
				Intensity: 1,
			},
		},
	}
}
