package terrain

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestFlat(t *testing.T) {
	f := Flat{Y: 3.5}
	for _, p := range [][2]float64{{0, 0}, {-100, 42}, {1e6, -1e6}} {
		if f.Height(p[0], p[1]) != 3.5 {
			t.Errorf("Height(%v) = %f, want 3.5", p, f.Height(p[0], p[1]))
		}
		if f.Slope(p[0], p[1]) != 0 {
			t.Errorf("Slope(%v) = %f, want 0", p, f.Slope(p[0], p[1]))
		}
	}
}

func TestInclineSlope(t *testing.T) {
	tests := []struct {
		gx, gz float64
		want   float64
	}{
		{0, 0, 0},
		{1, 0, 45},
		{0, 1, 45},
		{math.Sqrt(3), 0, 60},
		{0.6, 0.8, 45},
	}
	for _, tt := range tests {
		s := Incline(tt.gx, tt.gz, 0).Slope(12, -7)
		if !approxEqual(s, tt.want, tolerance) {
			t.Errorf("Incline(%v,%v) slope = %f, want %f", tt.gx, tt.gz, s, tt.want)
		}
	}
}

func TestSlopeRange(t *testing.T) {
	steep := Incline(1e9, 0, 0)
	if s := steep.Slope(0, 0); s > 90 || s < 89 {
		t.Errorf("near-vertical slope = %f, want just under 90", s)
	}
}

func TestHills(t *testing.T) {
	h := Hills(4, 40, 10)
	if !approxEqual(h.Height(0, 0), 10, tolerance) {
		t.Errorf("expected base height at origin, got %f", h.Height(0, 0))
	}
	if !approxEqual(h.Height(10, 0), 14, tolerance) {
		t.Errorf("expected crest at quarter wavelength, got %f", h.Height(10, 0))
	}
	if h.Slope(0, 0) <= 0 {
		t.Error("expected nonzero slope on hill flank")
	}
}

func rampHeightmap(t *testing.T) *Heightmap {
	t.Helper()
	// 3x3 grid, cell size 10, covering world [-10,10]^2. Sample (ix,iz) = ix + 10*iz.
	heights := []float64{
		0, 1, 2,
		10, 11, 12,
		20, 21, 22,
	}
	hm, err := NewHeightmap(3, 10, heights)
	if err != nil {
		t.Fatalf("NewHeightmap: %v", err)
	}
	return hm
}

func TestHeightmapBilinear(t *testing.T) {
	hm := rampHeightmap(t)
	tests := []struct {
		x, z, want float64
	}{
		{-10, -10, 0},
		{0, 0, 11},
		{10, 10, 22},
		{-5, -10, 0.5},
		{-10, -5, 5},
		{5, 5, 16.5},
		{100, 100, 22}, // clamped
		{-100, -100, 0},
	}
	for _, tt := range tests {
		if got := hm.Height(tt.x, tt.z); !approxEqual(got, tt.want, tolerance) {
			t.Errorf("Height(%v,%v) = %f, want %f", tt.x, tt.z, got, tt.want)
		}
	}
	if hm.Extent() != 20 || hm.Resolution() != 3 {
		t.Errorf("unexpected extent %f / resolution %d", hm.Extent(), hm.Resolution())
	}
}

func TestHeightmapSlope(t *testing.T) {
	hm := rampHeightmap(t)
	// Gradient is 0.1 along X and 1.0 along Z.
	want := math.Atan(math.Hypot(0.1, 1.0)) * 180 / math.Pi
	if got := hm.Slope(-3, -3); !approxEqual(got, want, tolerance) {
		t.Errorf("Slope = %f, want %f", got, want)
	}
}

func TestNewHeightmapErrors(t *testing.T) {
	if _, err := NewHeightmap(1, 1, []float64{0}); err == nil {
		t.Error("expected error for resolution 1")
	}
	if _, err := NewHeightmap(2, 0, make([]float64, 4)); err == nil {
		t.Error("expected error for zero cell size")
	}
	if _, err := NewHeightmap(2, 1, make([]float64, 3)); err == nil {
		t.Error("expected error for short sample slice")
	}
}

func TestDefSampler(t *testing.T) {
	tests := []struct {
		name    string
		def     Def
		wantErr bool
	}{
		{"default flat", Def{}, false},
		{"flat", Def{Type: "flat", Height: 2}, false},
		{"hills", Def{Type: "hills", Amplitude: 3, Wavelength: 50}, false},
		{"hills without wavelength", Def{Type: "hills", Amplitude: 3}, true},
		{"incline", Def{Type: "incline", GradX: 0.2}, false},
		{"heightmap", Def{Type: "heightmap", Resolution: 2, CellSize: 5, Heights: []float64{0, 1, 2, 3}}, false},
		{"bad heightmap", Def{Type: "heightmap", Resolution: 2, CellSize: 5}, true},
		{"unknown", Def{Type: "voxel"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.def.Sampler()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && s == nil {
				t.Fatal("nil sampler without error")
			}
		})
	}
}
