// Package constraint holds the per-point placement predicates of a layer.
package constraint

import (
	"math"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/terrain"
)

// Type discriminates the constraint variants.
type Type string

const (
	TypeSlope          Type = "slope"
	TypeExclusion      Type = "exclusion"
	TypeHeightBand     Type = "height_band"
	TypeDensityFalloff Type = "density_falloff"
)

// DefaultMaxSlope is the slope ceiling in degrees when none is configured.
const DefaultMaxSlope = 45.0

// Constraint is a stateless predicate over a ground position. Variants are
// Slope, Exclusion, HeightBand and DensityFalloff; the interface is sealed.
type Constraint interface {
	Type() Type
	// Allows reports whether a point at (x, z) may be placed.
	Allows(x, z float64, t terrain.Sampler) bool

	sealed()
}

// Slope rejects points steeper than MaxDegrees.
type Slope struct {
	MaxDegrees float64
}

func (Slope) Type() Type { return TypeSlope }

func (s Slope) Allows(x, z float64, t terrain.Sampler) bool {
	return t.Slope(x, z) <= s.MaxDegrees
}

func (Slope) sealed() {}

// Exclusion rejects points inside a disk, rim included.
type Exclusion struct {
	Center geo.Point2D
	Radius float64
}

func (Exclusion) Type() Type { return TypeExclusion }

func (e Exclusion) Allows(x, z float64, _ terrain.Sampler) bool {
	return e.Center.DistanceSq(geo.Pt(x, z)) > e.Radius*e.Radius
}

func (Exclusion) sealed() {}

// HeightBand rejects points whose terrain height lies outside [Min, Max].
// Use math.Inf for an open side.
type HeightBand struct {
	Min, Max float64
}

// AnyHeight returns a band with both sides open.
func AnyHeight() HeightBand {
	return HeightBand{Min: math.Inf(-1), Max: math.Inf(1)}
}

func (HeightBand) Type() Type { return TypeHeightBand }

func (h HeightBand) Allows(x, z float64, t terrain.Sampler) bool {
	y := t.Height(x, z)
	return y >= h.Min && y <= h.Max
}

func (HeightBand) sealed() {}

// DensityFalloff is read by the density distribution. As a predicate it
// accepts every point.
type DensityFalloff struct {
	Center geo.Point2D
	Radius float64
}

func (DensityFalloff) Type() Type { return TypeDensityFalloff }

func (DensityFalloff) Allows(_, _ float64, _ terrain.Sampler) bool { return true }

func (DensityFalloff) sealed() {}

// Weight returns the linear falloff max(0, 1 - d/Radius) at p.
func (f DensityFalloff) Weight(p geo.Point2D) float64 {
	if f.Radius <= 0 {
		return 0
	}
	return math.Max(0, 1-f.Center.Distance(p)/f.Radius)
}

// EvaluateAll reports whether every constraint allows (x, z). It stops at
// the first rejection and is safe to call concurrently.
func EvaluateAll(x, z float64, cs []Constraint, t terrain.Sampler) bool {
	for _, c := range cs {
		if !c.Allows(x, z, t) {
			return false
		}
	}
	return true
}

// Filter returns the points of pts that pass every constraint, plus the
// number rejected.
func Filter(pts []geo.Point2D, cs []Constraint, t terrain.Sampler) ([]geo.Point2D, int) {
	if len(cs) == 0 {
		return pts, 0
	}
	out := make([]geo.Point2D, 0, len(pts))
	for _, p := range pts {
		if EvaluateAll(p.X, p.Z, cs, t) {
			out = append(out, p)
		}
	}
	return out, len(pts) - len(out)
}

// FindFalloff returns the first DensityFalloff in cs, or nil.
func FindFalloff(cs []Constraint) *DensityFalloff {
	for _, c := range cs {
		if f, ok := c.(DensityFalloff); ok {
			return &f
		}
	}
	return nil
}
