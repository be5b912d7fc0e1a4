package terrain

import (
	"fmt"
	"math"
)

// Heightmap samples a square grid of heights with bilinear interpolation.
// The grid is centered on the world origin: sample (0,0) sits at world
// (-extent/2, -extent/2) where extent = (resolution-1) * cellSize.
type Heightmap struct {
	resolution int
	cellSize   float64
	heights    []float64 // row-major, index z*resolution + x
}

// NewHeightmap validates and copies a row-major height grid.
func NewHeightmap(resolution int, cellSize float64, heights []float64) (*Heightmap, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("heightmap resolution %d must be at least 2", resolution)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("heightmap cell size %g must be positive", cellSize)
	}
	if len(heights) != resolution*resolution {
		return nil, fmt.Errorf("heightmap has %d samples, want %d (%dx%d)",
			len(heights), resolution*resolution, resolution, resolution)
	}
	owned := make([]float64, len(heights))
	copy(owned, heights)
	return &Heightmap{resolution: resolution, cellSize: cellSize, heights: owned}, nil
}

// Resolution returns the number of samples along each axis.
func (h *Heightmap) Resolution() int { return h.resolution }

// Extent returns the world-space width covered by the grid.
func (h *Heightmap) Extent() float64 {
	return float64(h.resolution-1) * h.cellSize
}

func (h *Heightmap) at(ix, iz int) float64 {
	return h.heights[iz*h.resolution+ix]
}

// Height interpolates along X, then along Z. Queries outside the grid are
// clamped to the edge cells.
func (h *Heightmap) Height(x, z float64) float64 {
	half := h.Extent() / 2
	gx := (x + half) / h.cellSize
	gz := (z + half) / h.cellSize

	ix := clampInt(int(math.Floor(gx)), 0, h.resolution-2)
	iz := clampInt(int(math.Floor(gz)), 0, h.resolution-2)
	fx := clampUnit(gx - float64(ix))
	fz := clampUnit(gz - float64(iz))

	near := lerp(h.at(ix, iz), h.at(ix+1, iz), fx)
	far := lerp(h.at(ix, iz+1), h.at(ix+1, iz+1), fx)
	return lerp(near, far, fz)
}

func (h *Heightmap) Slope(x, z float64) float64 {
	return SlopeAt(h.Height, x, z)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUnit(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
