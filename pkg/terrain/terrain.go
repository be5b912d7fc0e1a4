// Package terrain provides height and slope lookups over the ground plane.
package terrain

import "math"

// Sampler answers height and slope queries at a world (x, z) coordinate.
// Slope is in degrees, within [0, 90].
type Sampler interface {
	Height(x, z float64) float64
	Slope(x, z float64) float64
}

// HeightFunc is a height-only terrain description.
type HeightFunc func(x, z float64) float64

// SlopeDelta is the forward-difference step used by SlopeAt, in world units.
const SlopeDelta = 0.5

// SlopeAt derives the slope in degrees at (x, z) from forward differences
// of h along each axis.
func SlopeAt(h HeightFunc, x, z float64) float64 {
	h0 := h(x, z)
	gx := (h(x+SlopeDelta, z) - h0) / SlopeDelta
	gz := (h(x, z+SlopeDelta) - h0) / SlopeDelta
	deg := math.Atan(math.Hypot(gx, gz)) * 180 / math.Pi
	if math.IsNaN(deg) {
		return 0
	}
	return math.Min(math.Max(deg, 0), 90)
}

// Flat is a constant-height terrain with zero slope everywhere.
type Flat struct {
	Y float64
}

func (f Flat) Height(_, _ float64) float64 { return f.Y }

func (Flat) Slope(_, _ float64) float64 { return 0 }

// Procedural evaluates a height formula; slope comes from SlopeAt.
type Procedural struct {
	Fn HeightFunc
}

func (p Procedural) Height(x, z float64) float64 {
	return p.Fn(x, z)
}

func (p Procedural) Slope(x, z float64) float64 {
	return SlopeAt(p.Fn, x, z)
}

// Hills is a rolling sinusoidal surface around base height.
func Hills(amplitude, wavelength, base float64) Procedural {
	if wavelength <= 0 {
		return Procedural{Fn: func(_, _ float64) float64 { return base }}
	}
	k := 2 * math.Pi / wavelength
	return Procedural{Fn: func(x, z float64) float64 {
		return base + amplitude*math.Sin(x*k)*math.Cos(z*k)
	}}
}

// Incline is a plane rising gradX per unit along X and gradZ per unit along Z.
func Incline(gradX, gradZ, base float64) Procedural {
	return Procedural{Fn: func(x, z float64) float64 {
		return base + gradX*x + gradZ*z
	}}
}
