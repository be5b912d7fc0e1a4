// Package distribute generates candidate points inside a region. Every
// generator draws only from the *rand.Rand it is given, so a fixed seed
// reproduces its output exactly.
package distribute

import (
	"fmt"
	"math/rand"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
)

// Algorithm names a point distribution strategy.
type Algorithm string

const (
	AlgorithmPoisson   Algorithm = "poisson"
	AlgorithmClustered Algorithm = "clustered"
	AlgorithmDensity   Algorithm = "density"
	AlgorithmGrid      Algorithm = "grid"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{AlgorithmPoisson, AlgorithmClustered, AlgorithmDensity, AlgorithmGrid}

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown algorithm %q", s)
}

// Shuffle permutes pts in place with a Fisher-Yates pass over rnd.
func Shuffle(pts []geo.Point2D, rnd *rand.Rand) {
	for i := len(pts) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// capPoints shuffles and truncates pts to limit when limit is positive and exceeded.
func capPoints(pts []geo.Point2D, limit int, rnd *rand.Rand) []geo.Point2D {
	if limit <= 0 || len(pts) <= limit {
		return pts
	}
	Shuffle(pts, rnd)
	return pts[:limit]
}
