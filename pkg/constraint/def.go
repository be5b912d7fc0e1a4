package constraint

import (
	"fmt"
	"math"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
)

// Def is the serializable, type-tagged form of a Constraint.
type Def struct {
	Type Type `yaml:"type" json:"type"`

	MaxDegrees *float64 `yaml:"max_degrees,omitempty" json:"max_degrees,omitempty"`

	Center geo.Point2D `yaml:"center,omitempty" json:"center,omitempty"`
	Radius float64     `yaml:"radius,omitempty" json:"radius,omitempty"`

	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Constraint builds the runtime constraint described by d.
func (d Def) Constraint() (Constraint, error) {
	switch d.Type {
	case TypeSlope:
		maxDeg := DefaultMaxSlope
		if d.MaxDegrees != nil {
			maxDeg = *d.MaxDegrees
		}
		if maxDeg < 0 || maxDeg > 90 {
			return nil, fmt.Errorf("slope constraint: max_degrees %g outside [0,90]", maxDeg)
		}
		return Slope{MaxDegrees: maxDeg}, nil
	case TypeExclusion:
		if d.Radius < 0 {
			return nil, fmt.Errorf("exclusion constraint: negative radius %g", d.Radius)
		}
		return Exclusion{Center: d.Center, Radius: d.Radius}, nil
	case TypeHeightBand:
		band := AnyHeight()
		if d.Min != nil {
			band.Min = *d.Min
		}
		if d.Max != nil {
			band.Max = *d.Max
		}
		if band.Min > band.Max {
			return nil, fmt.Errorf("height_band constraint: min %g above max %g", band.Min, band.Max)
		}
		return band, nil
	case TypeDensityFalloff:
		if d.Radius <= 0 {
			return nil, fmt.Errorf("density_falloff constraint: radius %g must be positive", d.Radius)
		}
		return DensityFalloff{Center: d.Center, Radius: d.Radius}, nil
	case "":
		return nil, fmt.Errorf("constraint type is required")
	default:
		return nil, fmt.Errorf("unknown constraint type %q", d.Type)
	}
}

// DefOf returns the serializable form of c.
func DefOf(c Constraint) Def {
	switch v := c.(type) {
	case Slope:
		deg := v.MaxDegrees
		return Def{Type: TypeSlope, MaxDegrees: &deg}
	case Exclusion:
		return Def{Type: TypeExclusion, Center: v.Center, Radius: v.Radius}
	case HeightBand:
		d := Def{Type: TypeHeightBand}
		if !math.IsInf(v.Min, -1) {
			lo := v.Min
			d.Min = &lo
		}
		if !math.IsInf(v.Max, 1) {
			hi := v.Max
			d.Max = &hi
		}
		return d
	case DensityFalloff:
		return Def{Type: TypeDensityFalloff, Center: v.Center, Radius: v.Radius}
	}
	return Def{}
}
