package distribute

import (
	"math"
	"math/rand"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
)

const (
	minClusters          = 20
	maxClusters          = 80
	pointsPerCluster     = 15
	clusterCenterRetries = 100
)

// clusterSizes are odd so that groups never read as symmetric pairs.
var clusterSizes = [...]int{3, 5, 7, 9, 11, 13, 17, 21}

// Clustered places up to count points in groups. Each group has a center
// inside the region, a spread radius varied by 0.5x-1.5x around the mean
// share of area, and a member count drawn from clusterSizes. Member
// distances follow a one-sided Gaussian with sigma = radius/2.
func Clustered(r region.Region, count int, rnd *rand.Rand) []geo.Point2D {
	area := r.Area()
	if count <= 0 || area <= 0 {
		return nil
	}

	clusters := int(math.Round(float64(count) / pointsPerCluster))
	clusters = min(max(clusters, minClusters), maxClusters)
	baseRadius := math.Sqrt(area / float64(clusters) / math.Pi)
	b := r.Bounds()

	pts := make([]geo.Point2D, 0, count)
	for c := 0; c < clusters && len(pts) < count; c++ {
		center, ok := clusterCenter(r, b, rnd)
		if !ok {
			continue
		}
		radius := baseRadius * (0.5 + rnd.Float64())
		size := clusterSizes[rnd.Intn(len(clusterSizes))]

		for m := 0; m < size && len(pts) < count; m++ {
			dist := math.Abs(gaussian(rnd)) * radius / 2
			angle := rnd.Float64() * 2 * math.Pi
			p := center.Polar(dist, angle)
			if region.ContainsPoint(r, p) {
				pts = append(pts, p)
			}
		}
	}
	return pts
}

// clusterCenter draws uniformly from the bounds until a point lands inside
// the region, giving up after clusterCenterRetries attempts.
func clusterCenter(r region.Region, b region.Bounds, rnd *rand.Rand) (geo.Point2D, bool) {
	for i := 0; i < clusterCenterRetries; i++ {
		p := geo.Pt(b.MinX+rnd.Float64()*b.Width(), b.MinZ+rnd.Float64()*b.Depth())
		if region.ContainsPoint(r, p) {
			return p, true
		}
	}
	return geo.Point2D{}, false
}

// gaussian returns a standard normal deviate via the Box-Muller transform.
func gaussian(rnd *rand.Rand) float64 {
	u1 := 1 - rnd.Float64() // (0, 1], keeps the log finite
	u2 := rnd.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
