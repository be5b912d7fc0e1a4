package distribute

import (
	"math/rand"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/constraint"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
)

const (
	// DefaultDensitySpacing is the oversampling min-distance when none is given.
	DefaultDensitySpacing = 3.0
	densityOversample     = 3
)

// Density oversamples blue noise at densityOversample*count candidates and
// thins them against the falloff: each candidate survives with probability
// falloff.Weight(p). Without a falloff a random subset of count candidates is kept.
// Candidates are visited in shuffled order so stopping at count never keeps
// the sampler's growth front.
func Density(r region.Region, count int, spacing float64, falloff *constraint.DensityFalloff, rnd *rand.Rand) []geo.Point2D {
	if count <= 0 {
		return nil
	}
	if spacing <= 0 {
		spacing = DefaultDensitySpacing
	}

	candidates := Poisson(r, spacing, count*densityOversample, rnd)
	Shuffle(candidates, rnd)
	if falloff == nil {
		if len(candidates) > count {
			candidates = candidates[:count]
		}
		return candidates
	}

	pts := make([]geo.Point2D, 0, count)
	for _, p := range candidates {
		if len(pts) >= count {
			break
		}
		if rnd.Float64() < falloff.Weight(p) {
			pts = append(pts, p)
		}
	}
	return pts
}
