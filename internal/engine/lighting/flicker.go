package lighting

import "github.com/Faultbox/campfire/internal/procgen"

// Flicker rerolls a point light's intensity every frame.
type Flicker struct {
	Light    *PointLight
	Min, Max float32
	rng      procgen.RandomSource
}

// NewFlicker drives light with intensities in [min, max).
func NewFlicker(light *PointLight, min, max float32, rng procgen.RandomSource) *Flicker {
	return &Flicker{Light: light, Min: min, Max: max, rng: rng}
}

// Update draws a new intensity.
func (f *Flicker) Update() {
	f.Light.Intensity = f.Min + float32(f.rng.Float64())*(f.Max-f.Min)
}
