package distribute

import (
	"math"
	"math/rand"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
)

// DefaultJitter is the lattice perturbation as a fraction of spacing.
const DefaultJitter = 0.2

// MaxLatticeCells bounds how many lattice points Grid visits over a region's
// bounding rectangle.
const MaxLatticeCells = 1 << 20

// Grid lays a lattice with the given spacing over the region's bounds, with
// lattice points at bounds.Min + spacing*(i+0.5). Each point moves by up to
// ±spacing*jitter/2 on each axis, then points outside the region are dropped.
//
// When maxPoints > 0 the spacing grows to sqrt(area/maxPoints) if that is
// larger, and the result is shuffled and truncated to maxPoints.
//
// The lattice covers the bounding rectangle, so cost follows bounds area
// over spacing squared, not region area. Thin diagonal polygons waste most
// of it. Spacing is raised so the lattice never exceeds MaxLatticeCells.
func Grid(r region.Region, spacing, jitter float64, maxPoints int, rnd *rand.Rand) []geo.Point2D {
	if maxPoints > 0 {
		if area := r.Area(); area > 0 {
			spacing = math.Max(spacing, math.Sqrt(area/float64(maxPoints)))
		}
	}
	if spacing <= 0 {
		return nil
	}
	jitter = math.Max(jitter, 0)

	b := r.Bounds()
	if !b.Empty() {
		spacing = math.Max(spacing, math.Sqrt(b.Area()/MaxLatticeCells))
	}
	amp := spacing * jitter / 2

	var pts []geo.Point2D
	for i := 0; ; i++ {
		x := b.MinX + spacing*(float64(i)+0.5)
		if x > b.MaxX {
			break
		}
		for j := 0; ; j++ {
			z := b.MinZ + spacing*(float64(j)+0.5)
			if z > b.MaxZ {
				break
			}
			p := geo.Pt(
				x+(rnd.Float64()*2-1)*amp,
				z+(rnd.Float64()*2-1)*amp,
			)
			if region.ContainsPoint(r, p) {
				pts = append(pts, p)
			}
		}
	}
	return capPoints(pts, maxPoints, rnd)
}

// LatticePoint returns the unperturbed lattice point nearest to p for a
// grid over b at the given spacing.
func LatticePoint(b region.Bounds, spacing float64, p geo.Point2D) geo.Point2D {
	i := math.Round((p.X-b.MinX)/spacing - 0.5)
	j := math.Round((p.Z-b.MinZ)/spacing - 0.5)
	return geo.Pt(b.MinX+spacing*(i+0.5), b.MinZ+spacing*(j+0.5))
}
