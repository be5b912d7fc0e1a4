package exclusion

import (
	"math/rand"
	"testing"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
)

func TestIndexNear(t *testing.T) {
	ix := NewIndex(5)
	ix.Insert(geo.Pt(0, 0), geo.Pt(100, 100))

	tests := []struct {
		p    geo.Point2D
		want bool
	}{
		{geo.Pt(0, 0), true},
		{geo.Pt(3, 4), true}, // exactly at distance 5
		{geo.Pt(4.9, -0.5), true},
		{geo.Pt(-5.01, 0), false},
		{geo.Pt(96, 97), true},
		{geo.Pt(50, 50), false},
	}
	for _, tt := range tests {
		if got := ix.Near(tt.p); got != tt.want {
			t.Errorf("Near(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Len())
	}
}

func TestIndexNegativeCells(t *testing.T) {
	// Points straddling zero land in cells -1 and 0 and must still see each other.
	ix := NewIndex(2)
	ix.Insert(geo.Pt(-0.5, -0.5))
	if !ix.Near(geo.Pt(0.5, 0.5)) {
		t.Error("expected neighbour across the origin")
	}
}

func TestFilterMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	randomPts := func(n int) []geo.Point2D {
		pts := make([]geo.Point2D, n)
		for i := range pts {
			pts[i] = geo.Pt(rnd.Float64()*200-100, rnd.Float64()*200-100)
		}
		return pts
	}
	priorA, priorB := randomPts(40), randomPts(25)
	candidates := randomPts(500)
	const minDist = 7.5

	kept, removed := Filter(candidates, [][]geo.Point2D{priorA, priorB}, minDist)
	if len(kept)+removed != len(candidates) {
		t.Fatalf("kept %d + removed %d != %d", len(kept), removed, len(candidates))
	}

	want := 0
	for _, c := range candidates {
		clear := true
		for _, q := range append(append([]geo.Point2D{}, priorA...), priorB...) {
			if c.Distance(q) <= minDist {
				clear = false
				break
			}
		}
		if clear {
			want++
		}
	}
	if len(kept) != want {
		t.Errorf("spatial hash kept %d, brute force keeps %d", len(kept), want)
	}
	for _, c := range kept {
		for _, q := range priorA {
			if c.Distance(q) < minDist {
				t.Fatalf("kept %v within %f of %v", c, minDist, q)
			}
		}
	}
}

func TestFilterNoPrior(t *testing.T) {
	candidates := []geo.Point2D{geo.Pt(1, 1), geo.Pt(2, 2)}
	kept, removed := Filter(candidates, nil, 5)
	if len(kept) != 2 || removed != 0 {
		t.Errorf("expected no-op, got %d kept %d removed", len(kept), removed)
	}
	kept, removed = Filter(candidates, [][]geo.Point2D{{}}, 5)
	if len(kept) != 2 || removed != 0 {
		t.Errorf("expected no-op for empty prior layer, got %d kept %d removed", len(kept), removed)
	}
	kept, _ = Filter(candidates, [][]geo.Point2D{{geo.Pt(1, 1)}}, 0)
	if len(kept) != 2 {
		t.Error("zero distance should not exclude anything")
	}
}
