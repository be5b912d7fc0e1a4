// Package region models the bounded ground-plane areas that points are
// scattered into.
package region

import (
	"math"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
)

// Kind discriminates the region variants.
type Kind string

const (
	KindBox     Kind = "box"
	KindCircle  Kind = "circle"
	KindPolygon Kind = "polygon"
)

// Bounds is an axis-aligned rectangle on the XZ plane.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinZ float64 `json:"min_z"`
	MaxZ float64 `json:"max_z"`
}

// Width returns the extent along X.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Depth returns the extent along Z.
func (b Bounds) Depth() float64 { return b.MaxZ - b.MinZ }

// Area returns Width * Depth.
func (b Bounds) Area() float64 { return b.Width() * b.Depth() }

// Empty reports whether the rectangle has no interior.
func (b Bounds) Empty() bool { return b.Width() <= 0 || b.Depth() <= 0 }

// Region is a closed set on the XZ plane. The variants are Box, Circle and
// Polygon; the interface is sealed so no other implementation exists.
type Region interface {
	Kind() Kind
	Bounds() Bounds
	Contains(x, z float64) bool
	Area() float64

	sealed()
}

// Box is an axis-aligned rectangle. Containment is inclusive on all edges.
type Box struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Centered returns a box of the given width and depth centered on the origin.
func Centered(width, depth float64) Box {
	return Box{MinX: -width / 2, MaxX: width / 2, MinZ: -depth / 2, MaxZ: depth / 2}
}

func (Box) Kind() Kind { return KindBox }

func (b Box) Bounds() Bounds {
	return Bounds{MinX: b.MinX, MaxX: b.MaxX, MinZ: b.MinZ, MaxZ: b.MaxZ}
}

func (b Box) Contains(x, z float64) bool {
	return x >= b.MinX && x <= b.MaxX && z >= b.MinZ && z <= b.MaxZ
}

func (b Box) Area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxZ - b.MinZ)
}

func (Box) sealed() {}

// Circle is a disk around Center.
type Circle struct {
	Center geo.Point2D
	Radius float64
}

func (Circle) Kind() Kind { return KindCircle }

func (c Circle) Bounds() Bounds {
	return Bounds{
		MinX: c.Center.X - c.Radius,
		MaxX: c.Center.X + c.Radius,
		MinZ: c.Center.Z - c.Radius,
		MaxZ: c.Center.Z + c.Radius,
	}
}

func (c Circle) Contains(x, z float64) bool {
	return c.Center.DistanceSq(geo.Pt(x, z)) <= c.Radius*c.Radius
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (Circle) sealed() {}

// Polygon is a simple or self-intersecting polygon evaluated with the
// even-odd rule.
type Polygon struct {
	shape geo.Polygon
}

// NewPolygon copies pts into a new polygon region.
func NewPolygon(pts ...geo.Point2D) Polygon {
	owned := make([]geo.Point2D, len(pts))
	copy(owned, pts)
	return Polygon{shape: geo.NewPolygon(owned...)}
}

// Points returns a copy of the vertices in order.
func (p Polygon) Points() []geo.Point2D {
	out := make([]geo.Point2D, len(p.shape.Vertices))
	copy(out, p.shape.Vertices)
	return out
}

func (Polygon) Kind() Kind { return KindPolygon }

func (p Polygon) Bounds() Bounds {
	mn, mx := p.shape.BoundingBox()
	return Bounds{MinX: mn.X, MaxX: mx.X, MinZ: mn.Z, MaxZ: mx.Z}
}

func (p Polygon) Contains(x, z float64) bool {
	return p.shape.Contains(geo.Pt(x, z))
}

func (p Polygon) Area() float64 {
	return p.shape.Area()
}

func (Polygon) sealed() {}

// ContainsPoint is Contains for a Point2D.
func ContainsPoint(r Region, p geo.Point2D) bool {
	return r.Contains(p.X, p.Z)
}

// Outline returns a polygon tracing the region's boundary. Circles are
// approximated with the given number of segments.
func Outline(r Region, segments int) geo.Polygon {
	switch v := r.(type) {
	case Box:
		return geo.NewPolygon(
			geo.Pt(v.MinX, v.MinZ), geo.Pt(v.MaxX, v.MinZ),
			geo.Pt(v.MaxX, v.MaxZ), geo.Pt(v.MinX, v.MaxZ),
		)
	case Circle:
		return geo.ApproximateCircle(v.Center, v.Radius, segments)
	case Polygon:
		return geo.NewPolygon(v.Points()...)
	}
	return geo.Polygon{}
}
