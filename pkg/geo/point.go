package geo

import "math"

// Point2D represents a point on the ground plane. Y is up in world space, so the
// plane is spanned by X and Z.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Z float64 `json:"z" yaml:"z"`
}

// Origin is the zero point.
var Origin = Point2D{0, 0}

// Pt is a shorthand constructor for Point2D.
func Pt(x, z float64) Point2D {
	return Point2D{X: x, Z: z}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Z * s}
}

// Length returns the Euclidean length of the vector.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Z)
}

// Distance returns the Euclidean distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return p.Sub(q).Length()
}

// DistanceSq returns the squared distance from p to q.
func (p Point2D) DistanceSq(q Point2D) float64 {
	dx, dz := p.X-q.X, p.Z-q.Z
	return dx*dx + dz*dz
}

// Polar returns the point at the given distance and angle (radians from +X) from p.
func (p Point2D) Polar(dist, angle float64) Point2D {
	return Point2D{
		X: p.X + dist*math.Cos(angle),
		Z: p.Z + dist*math.Sin(angle),
	}
}

// Vec3 is a 3D vector in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Uniform returns a vector with all components set to s.
func Uniform(s float64) Vec3 {
	return Vec3{s, s, s}
}

// Ground drops the Y component.
func (v Vec3) Ground() Point2D {
	return Point2D{X: v.X, Z: v.Z}
}
