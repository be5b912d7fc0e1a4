package scatter

import (
	"math"
	"strings"
	"testing"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/constraint"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/distribute"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/terrain"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/validation"
)

func hasMessage(results []validation.Result, substr string) bool {
	for _, r := range results {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

func hasPath(results []validation.Result, path string) bool {
	for _, r := range results {
		if r.Path == path {
			return true
		}
	}
	return false
}

func TestValidateLayers_Valid(t *testing.T) {
	r := ValidateLayers(ruinsAndTrees())
	if !r.Valid {
		t.Errorf("expected valid, got %d errors", len(r.Errors))
		for _, e := range r.Errors {
			t.Logf("  error: %s", e.Message)
		}
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", r.Warnings)
	}
}

func TestValidateLayers_Empty(t *testing.T) {
	r := ValidateLayers(nil)
	if r.Valid || !hasPath(r.Errors, "layers") {
		t.Errorf("expected layers error, got %+v", r.Errors)
	}
}

func TestValidateLayer_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Layer)
		path   string
	}{
		{"empty id", func(l *Layer) { l.ID = "" }, "layers[0].id"},
		{"bad algorithm", func(l *Layer) { l.Algorithm = "voronoi" }, "layers[0].algorithm"},
		{"zero count", func(l *Layer) { l.Count = 0 }, "layers[0].count"},
		{"negative count", func(l *Layer) { l.Count = -4 }, "layers[0].count"},
		{"negative min distance", func(l *Layer) { l.MinDistance = -1 }, "layers[0].min_distance"},
		{"poisson without spacing", func(l *Layer) { l.MinDistance = 0 }, "layers[0].min_distance"},
		{"no types", func(l *Layer) { l.Types = nil }, "layers[0].instance_types"},
		{"empty type id", func(l *Layer) { l.Types[0].ID = "" }, "layers[0].instance_types[0].id"},
		{"negative weight", func(l *Layer) { l.Types[1].Weight = -1 }, "layers[0].instance_types[1].weight"},
		{"nan weight", func(l *Layer) { l.Types[1].Weight = math.NaN() }, "layers[0].instance_types[1].weight"},
		{"zero total weight", func(l *Layer) { l.Types[0].Weight, l.Types[1].Weight = 0, 0 }, "layers[0].instance_types"},
		{"inverted scale", func(l *Layer) { l.Types[0].ScaleMin, l.Types[0].ScaleMax = 2, 1 }, "layers[0].instance_types[0]"},
		{"nil constraint", func(l *Layer) { l.Constraints = []constraint.Constraint{nil} }, "layers[0].constraints[0]"},
		{"flat falloff", func(l *Layer) {
			l.Algorithm = distribute.AlgorithmDensity
			l.Constraints = []constraint.Constraint{constraint.DensityFalloff{Radius: 0}}
		}, "layers[0].constraints[0].radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayer("moss", distribute.AlgorithmPoisson, 50, 3)
			tt.mutate(&l)
			r := ValidateLayers([]Layer{l})
			if r.Valid {
				t.Fatal("expected invalid")
			}
			if !hasPath(r.Errors, tt.path) {
				t.Errorf("expected error at %s, got %+v", tt.path, r.Errors)
			}
		})
	}
}

func TestValidateLayer_ClusteredWithoutSpacing(t *testing.T) {
	r := ValidateLayers([]Layer{testLayer("rocks", distribute.AlgorithmClustered, 30, 0)})
	if !r.Valid {
		t.Errorf("clustered layers do not need min_distance: %v", r.Err())
	}
}

func TestValidateLayer_FalloffWarnings(t *testing.T) {
	l := testLayer("moss", distribute.AlgorithmPoisson, 50, 3)
	l.Constraints = []constraint.Constraint{
		constraint.DensityFalloff{Center: geo.Origin, Radius: 10},
		constraint.DensityFalloff{Center: geo.Pt(5, 5), Radius: 10},
	}
	r := ValidateLayers([]Layer{l})
	if !r.Valid {
		t.Fatalf("unexpected errors: %v", r.Err())
	}
	if !hasMessage(r.Warnings, "only affects the density algorithm") {
		t.Error("expected warning about falloff on a poisson layer")
	}
	if !hasMessage(r.Warnings, "only the first is used") {
		t.Error("expected warning about multiple falloffs")
	}
}

func TestValidateLayers_DuplicateID(t *testing.T) {
	a := testLayer("rocks", distribute.AlgorithmClustered, 10, 0)
	b := testLayer("rocks", distribute.AlgorithmGrid, 10, 5)
	r := ValidateLayers([]Layer{a, b})
	if r.Valid || !hasMessage(r.Errors, `duplicate layer id "rocks"`) {
		t.Errorf("expected duplicate id error, got %+v", r.Errors)
	}
}

func TestValidateLayers_Excludes(t *testing.T) {
	tests := []struct {
		name    string
		exclude []string
		wantErr string
	}{
		{"self", []string{"trees"}, "excludes itself"},
		{"unknown", []string{"castles"}, `unknown layer "castles"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layers := ruinsAndTrees()
			layers[0].Exclude = tt.exclude
			r := ValidateLayers(layers)
			if r.Valid || !hasMessage(r.Errors, tt.wantErr) {
				t.Errorf("expected %q, got %+v", tt.wantErr, r.Errors)
			}
		})
	}
}

func TestValidateLayers_ExcludeWithoutDistance(t *testing.T) {
	layers := ruinsAndTrees()
	layers[0].Algorithm = distribute.AlgorithmClustered
	layers[0].MinDistance = 0
	r := ValidateLayers(layers)
	if !r.Valid {
		t.Fatalf("unexpected errors: %v", r.Err())
	}
	if !hasMessage(r.Warnings, "exclude has no effect") {
		t.Errorf("expected warning, got %+v", r.Warnings)
	}
}

func scatteredManifest(t *testing.T) (*Manifest, Layer, region.Region, terrain.Sampler) {
	t.Helper()
	layer := testLayer("shrubs", distribute.AlgorithmPoisson, 40, 4)
	layer.Constraints = []constraint.Constraint{constraint.Exclusion{Center: geo.Origin, Radius: 8}}
	reg := region.Circle{Radius: 30}
	sampler := terrain.Incline(0.05, -0.02, 3)
	m, report := Scatter(layer, reg, sampler, fixedOptions(11))
	if !report.Valid || len(m.Instances) < 2 {
		t.Fatalf("setup scatter failed: %s", report.Summary)
	}
	return m, layer, reg, sampler
}

func TestValidateManifest_Valid(t *testing.T) {
	m, layer, reg, sampler := scatteredManifest(t)
	if r := ValidateManifest(m, layer, reg, sampler); !r.Valid {
		t.Errorf("expected valid, got %v", r.Err())
	}
}

func TestValidateManifest_Nil(t *testing.T) {
	r := ValidateManifest(nil, Layer{}, region.Centered(1, 1), terrain.Flat{})
	if r.Valid {
		t.Error("expected invalid for nil manifest")
	}
}

func TestValidateManifest_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Manifest)
		want   string
	}{
		{"layer mismatch", func(m *Manifest) { m.LayerID = "other" }, "does not match layer"},
		{"duplicate id", func(m *Manifest) { m.Instances[1].ID = m.Instances[0].ID }, "duplicate instance id"},
		{"empty id", func(m *Manifest) { m.Instances[0].ID = "" }, "empty id"},
		{"unknown type", func(m *Manifest) { m.Instances[0].TypeID = "palm" }, "unknown type"},
		{"outside region", func(m *Manifest) { m.Instances[0].Position.X = 500 }, "outside the circle region"},
		{"inside exclusion", func(m *Manifest) {
			m.Instances[0].Position.X, m.Instances[0].Position.Z = 1, 1
		}, "violates a layer constraint"},
		{"scale", func(m *Manifest) { m.Instances[0].Scale = geo.Uniform(9) }, "scale"},
		{"height", func(m *Manifest) { m.Instances[0].Position.Y += 1 }, "does not match terrain height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, layer, reg, sampler := scatteredManifest(t)
			tt.mutate(m)
			r := ValidateManifest(m, layer, reg, sampler)
			if r.Valid {
				t.Fatal("expected invalid")
			}
			if !hasMessage(r.Errors, tt.want) {
				t.Errorf("expected %q, got %+v", tt.want, r.Errors)
			}
		})
	}
}

func TestValidateManifest_MissingRegion(t *testing.T) {
	m, layer, _, sampler := scatteredManifest(t)
	r := ValidateManifest(m, layer, nil, sampler)
	if r.Valid || !hasPath(r.Errors, "region") {
		t.Errorf("expected region error, got %+v", r.Errors)
	}
}
