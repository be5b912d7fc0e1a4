// Package exclusion removes candidate points that crowd points placed earlier.
package exclusion

import (
	"math"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
)

type cellKey struct {
	X, Z int
}

// Index is a uniform spatial hash with square cells of side equal to the
// exclusion distance, so any neighbour within that distance lies in the
// 3x3 block of cells around a query.
type Index struct {
	cell  float64
	r2    float64
	cells map[cellKey][]geo.Point2D
	size  int
}

// NewIndex returns an empty index for the given minimum distance.
// minDist must be positive.
func NewIndex(minDist float64) *Index {
	return &Index{
		cell:  minDist,
		r2:    minDist * minDist,
		cells: make(map[cellKey][]geo.Point2D),
	}
}

func (ix *Index) key(p geo.Point2D) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / ix.cell)),
		Z: int(math.Floor(p.Z / ix.cell)),
	}
}

// Insert adds points to the index.
func (ix *Index) Insert(pts ...geo.Point2D) {
	for _, p := range pts {
		k := ix.key(p)
		ix.cells[k] = append(ix.cells[k], p)
	}
	ix.size += len(pts)
}

// Len returns the number of indexed points.
func (ix *Index) Len() int { return ix.size }

// Near reports whether any indexed point lies within the minimum distance
// of p (inclusive).
func (ix *Index) Near(p geo.Point2D) bool {
	k := ix.key(p)
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			for _, q := range ix.cells[cellKey{k.X + dx, k.Z + dz}] {
				if p.DistanceSq(q) <= ix.r2 {
					return true
				}
			}
		}
	}
	return false
}

// Filter returns the candidates that are farther than minDist from every
// point in prior, plus the number removed. With no prior points or a
// non-positive minDist the candidates are returned unchanged.
func Filter(candidates []geo.Point2D, prior [][]geo.Point2D, minDist float64) ([]geo.Point2D, int) {
	if minDist <= 0 {
		return candidates, 0
	}
	ix := NewIndex(minDist)
	for _, pts := range prior {
		ix.Insert(pts...)
	}
	if ix.Len() == 0 {
		return candidates, 0
	}

	kept := make([]geo.Point2D, 0, len(candidates))
	for _, c := range candidates {
		if !ix.Near(c) {
			kept = append(kept, c)
		}
	}
	return kept, len(candidates) - len(kept)
}
