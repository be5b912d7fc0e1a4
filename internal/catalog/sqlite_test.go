package catalog

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/distribute"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/scatter"
)

func testManifests() []*scatter.Manifest {
	return []*scatter.Manifest{
		{
			ID: "m-trees", LayerID: "trees", Algorithm: distribute.AlgorithmPoisson, Seed: 11, Requested: 3,
			Instances: []scatter.PlacedInstance{{ID: "trees_00000"}, {ID: "trees_00001"}},
		},
		{
			ID: "m-rocks", LayerID: "rocks", Algorithm: distribute.AlgorithmClustered, Seed: 12, Requested: 1,
			Instances: []scatter.PlacedInstance{{ID: "rocks_00000"}},
		},
	}
}

func TestRecordAndListRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index", "runs.db")

	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer idx.Close()

	created := time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC)
	first, err := idx.RecordRun(ctx, Run{Project: "forest", Seed: 42, CreatedAt: created, Output: "out/a.json"}, testManifests())
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	second, err := idx.RecordRun(ctx, Run{Project: "meadow", Seed: -7, CreatedAt: created.Add(time.Hour)}, testManifests()[:1])
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if second <= first {
		t.Errorf("run ids not increasing: %d then %d", first, second)
	}

	runs, err := idx.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].ID != second || runs[0].Project != "meadow" || runs[0].Seed != -7 {
		t.Errorf("newest run = %+v", runs[0])
	}

	r := runs[1]
	if !r.CreatedAt.Equal(created) || r.Output != "out/a.json" {
		t.Errorf("run = %+v", r)
	}
	if len(r.Layers) != 2 || r.Layers[0].LayerID != "rocks" || r.Layers[1].Placed != 2 {
		t.Errorf("layers = %+v", r.Layers)
	}
	if r.Layers[1].ManifestID != "m-trees" || r.Layers[1].Algorithm != "poisson" || r.Layers[1].Seed != 11 {
		t.Errorf("trees layer = %+v", r.Layers[1])
	}
	if r.Instances() != 3 {
		t.Errorf("instances = %d, want 3", r.Instances())
	}

	limited, err := idx.ListRuns(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("limit 1 returned %d runs, err %v", len(limited), err)
	}
}

func TestRecordRunRollsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	dup := append(testManifests(), testManifests()[0])
	if _, err := idx.RecordRun(ctx, Run{Project: "dup", CreatedAt: time.Now()}, dup); err == nil {
		t.Fatal("expected duplicate layer error")
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n != 0 {
		t.Errorf("runs after failed record = %d, want 0", n)
	}
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Error("expected error for empty path")
	}
}
