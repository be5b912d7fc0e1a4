package distribute

import (
	"math/rand"

	"github.com/fogleman/poissondisc"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
)

// PoissonTries is how many annulus candidates are tried around an active
// point before it is retired.
const PoissonTries = 30

// Poisson returns blue-noise points at least minDist apart. Sampling runs
// over the region's bounding rectangle and is then filtered to the region
// shape. When more than maxPoints survive, a random subset of maxPoints is
// kept; maxPoints <= 0 keeps everything.
func Poisson(r region.Region, minDist float64, maxPoints int, rnd *rand.Rand) []geo.Point2D {
	b := r.Bounds()
	if minDist <= 0 || b.Empty() {
		return nil
	}

	samples := poissondisc.Sample(b.MinX, b.MinZ, b.MaxX, b.MaxZ, minDist, PoissonTries, rnd)

	pts := make([]geo.Point2D, 0, len(samples))
	for _, s := range samples {
		if r.Contains(s.X, s.Y) {
			pts = append(pts, geo.Pt(s.X, s.Y))
		}
	}
	return capPoints(pts, maxPoints, rnd)
}
