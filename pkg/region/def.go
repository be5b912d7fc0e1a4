package region

import (
	"fmt"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
)

// Def is the serializable, type-tagged form of a Region. It is what project
// files and manifests carry.
type Def struct {
	Type Kind `yaml:"type" json:"type"`

	MinX float64 `yaml:"min_x,omitempty" json:"min_x,omitempty"`
	MaxX float64 `yaml:"max_x,omitempty" json:"max_x,omitempty"`
	MinZ float64 `yaml:"min_z,omitempty" json:"min_z,omitempty"`
	MaxZ float64 `yaml:"max_z,omitempty" json:"max_z,omitempty"`

	CenterX float64 `yaml:"center_x,omitempty" json:"center_x,omitempty"`
	CenterZ float64 `yaml:"center_z,omitempty" json:"center_z,omitempty"`
	Radius  float64 `yaml:"radius,omitempty" json:"radius,omitempty"`

	Points []geo.Point2D `yaml:"points,omitempty" json:"points,omitempty"`
}

// Region builds the runtime region described by d.
func (d Def) Region() (Region, error) {
	switch d.Type {
	case KindBox:
		if d.MaxX < d.MinX || d.MaxZ < d.MinZ {
			return nil, fmt.Errorf("box region: max (%g,%g) is below min (%g,%g)", d.MaxX, d.MaxZ, d.MinX, d.MinZ)
		}
		return Box{MinX: d.MinX, MaxX: d.MaxX, MinZ: d.MinZ, MaxZ: d.MaxZ}, nil
	case KindCircle:
		if d.Radius < 0 {
			return nil, fmt.Errorf("circle region: negative radius %g", d.Radius)
		}
		return Circle{Center: geo.Pt(d.CenterX, d.CenterZ), Radius: d.Radius}, nil
	case KindPolygon:
		if len(d.Points) < 3 {
			return nil, fmt.Errorf("polygon region: need at least 3 points, got %d", len(d.Points))
		}
		return NewPolygon(d.Points...), nil
	case "":
		return nil, fmt.Errorf("region type is required")
	default:
		return nil, fmt.Errorf("unknown region type %q", d.Type)
	}
}

// DefOf returns the serializable form of r.
func DefOf(r Region) Def {
	switch v := r.(type) {
	case Box:
		return Def{Type: KindBox, MinX: v.MinX, MaxX: v.MaxX, MinZ: v.MinZ, MaxZ: v.MaxZ}
	case Circle:
		return Def{Type: KindCircle, CenterX: v.Center.X, CenterZ: v.Center.Z, Radius: v.Radius}
	case Polygon:
		return Def{Type: KindPolygon, Points: v.Points()}
	}
	return Def{}
}
