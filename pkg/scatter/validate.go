package scatter

import (
	"fmt"
	"math"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/constraint"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/distribute"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/terrain"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/validation"
)

// heightTolerance allows for float rounding when re-sampling terrain height.
const heightTolerance = 1e-9

// ValidateLayers checks a layer set before scattering: each layer on its
// own, then ids and exclusion references across the set.
func ValidateLayers(layers []Layer) *validation.Report {
	r := validation.NewReport()

	if len(layers) == 0 {
		r.AddError(validation.Result{
			Level:    validation.LevelConfig,
			Message:  "at least one layer is required",
			Path:     "layers",
			Expected: "at least 1 layer",
		})
		return r
	}

	for i, l := range layers {
		validateLayer(i, l, r)
	}
	validateLayerIDs(layers, r)
	validateExcludes(layers, r)
	return r
}

// validateInputs rejects a missing region or terrain before any layer runs.
func validateInputs(reg region.Region, sampler terrain.Sampler, r *validation.Report) {
	if reg == nil {
		r.AddError(validation.Result{
			Level:    validation.LevelConfig,
			Message:  "region is required",
			Path:     "region",
			Expected: "box, circle or polygon",
		})
	}
	if sampler == nil {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     "terrain sampler is required",
			Path:        "terrain",
			Expected:    "flat, hills, incline or heightmap",
			Suggestions: []string{"Use terrain.Flat{} for level ground"},
		})
	}
}

func validateLayer(i int, l Layer, r *validation.Report) {
	path := fmt.Sprintf("layers[%d]", i)

	if l.ID == "" {
		r.AddError(validation.Result{
			Level:    validation.LevelConfig,
			Message:  fmt.Sprintf("layer at index %d has empty id", i),
			Path:     path + ".id",
			Expected: "non-empty string",
		})
	}

	if _, err := distribute.ParseAlgorithm(string(l.Algorithm)); err != nil {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: %v", l.ID, err),
			Path:        path + ".algorithm",
			ActualValue: l.Algorithm,
			Expected:    "poisson, clustered, density or grid",
		})
	}

	if l.Count <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: count must be greater than 0", l.ID),
			Path:        path + ".count",
			ActualValue: l.Count,
			Expected:    "> 0",
		})
	}

	switch {
	case l.MinDistance < 0:
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: min_distance must not be negative", l.ID),
			Path:        path + ".min_distance",
			ActualValue: l.MinDistance,
			Expected:    ">= 0",
		})
	case l.MinDistance == 0 && l.Algorithm == distribute.AlgorithmPoisson:
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: poisson sampling needs a positive min_distance", l.ID),
			Path:        path + ".min_distance",
			ActualValue: l.MinDistance,
			Expected:    "> 0",
		})
	case l.MinDistance == 0 && len(l.Exclude) > 0:
		r.AddWarning(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: exclude has no effect with min_distance 0", l.ID),
			Path:        path + ".min_distance",
			ActualValue: l.MinDistance,
		})
	}

	validateTypes(path, l, r)
	validateConstraints(path, l, r)
}

func validateTypes(path string, l Layer, r *validation.Report) {
	if len(l.Types) == 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: instance_types must contain at least one entry", l.ID),
			Path:        path + ".instance_types",
			Expected:    "at least 1 instance type",
			Suggestions: []string{"Add an instance type with a positive weight"},
		})
		return
	}

	total := 0.0
	for j, t := range l.Types {
		tpath := fmt.Sprintf("%s.instance_types[%d]", path, j)
		if t.ID == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelConfig,
				Message:  fmt.Sprintf("layer %q: instance type at index %d has empty id", l.ID, j),
				Path:     tpath + ".id",
				Expected: "non-empty string",
			})
		}
		if t.Weight < 0 || math.IsNaN(t.Weight) || math.IsInf(t.Weight, 0) {
			r.AddError(validation.Result{
				Level:       validation.LevelConfig,
				Message:     fmt.Sprintf("layer %q: instance type %q has invalid weight", l.ID, t.ID),
				Path:        tpath + ".weight",
				ActualValue: t.Weight,
				Expected:    "finite, >= 0",
			})
			continue
		}
		total += t.Weight
		if t.ScaleMin < 0 || t.ScaleMax < t.ScaleMin {
			r.AddError(validation.Result{
				Level:       validation.LevelConfig,
				Message:     fmt.Sprintf("layer %q: instance type %q scale range [%g, %g] is invalid", l.ID, t.ID, t.ScaleMin, t.ScaleMax),
				Path:        tpath,
				ActualValue: fmt.Sprintf("%g-%g", t.ScaleMin, t.ScaleMax),
				Expected:    "0 <= scale_min <= scale_max",
			})
		}
	}
	if total <= 0 {
		r.AddError(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: instance type weights sum to %g", l.ID, total),
			Path:        path + ".instance_types",
			ActualValue: total,
			Expected:    "> 0",
		})
	}
}

func validateConstraints(path string, l Layer, r *validation.Report) {
	falloffs := 0
	for j, c := range l.Constraints {
		cpath := fmt.Sprintf("%s.constraints[%d]", path, j)
		if c == nil {
			r.AddError(validation.Result{
				Level:   validation.LevelConfig,
				Message: fmt.Sprintf("layer %q: constraint at index %d is nil", l.ID, j),
				Path:    cpath,
			})
			continue
		}
		if f, ok := c.(constraint.DensityFalloff); ok {
			falloffs++
			if f.Radius <= 0 {
				r.AddError(validation.Result{
					Level:       validation.LevelConfig,
					Message:     fmt.Sprintf("layer %q: density falloff radius must be positive", l.ID),
					Path:        cpath + ".radius",
					ActualValue: f.Radius,
					Expected:    "> 0",
				})
			}
		}
	}
	if falloffs > 0 && l.Algorithm != distribute.AlgorithmDensity {
		r.AddWarning(validation.Result{
			Level:   validation.LevelConfig,
			Message: fmt.Sprintf("layer %q: density_falloff only affects the density algorithm", l.ID),
			Path:    path + ".constraints",
		})
	}
	if falloffs > 1 {
		r.AddWarning(validation.Result{
			Level:   validation.LevelConfig,
			Message: fmt.Sprintf("layer %q: %d density_falloff constraints, only the first is used", l.ID, falloffs),
			Path:    path + ".constraints",
		})
	}
}

func validateLayerIDs(layers []Layer, r *validation.Report) {
	seen := make(map[string]int, len(layers))
	for i, l := range layers {
		if l.ID == "" {
			continue
		}
		if prev, exists := seen[l.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelConfig,
				Message:     fmt.Sprintf("duplicate layer id %q at indices %d and %d", l.ID, prev, i),
				Path:        fmt.Sprintf("layers[%d].id", i),
				ActualValue: l.ID,
			})
		}
		seen[l.ID] = i
	}
}

func validateExcludes(layers []Layer, r *validation.Report) {
	byID := make(map[string]Layer, len(layers))
	for _, l := range layers {
		byID[l.ID] = l
	}
	for i, l := range layers {
		for j, id := range l.Exclude {
			path := fmt.Sprintf("layers[%d].exclude[%d]", i, j)
			other, ok := byID[id]
			switch {
			case id == l.ID:
				r.AddError(validation.Result{
					Level:       validation.LevelConfig,
					Message:     fmt.Sprintf("layer %q excludes itself", l.ID),
					Path:        path,
					ActualValue: id,
				})
			case !ok:
				r.AddError(validation.Result{
					Level:       validation.LevelConfig,
					Message:     fmt.Sprintf("layer %q excludes unknown layer %q", l.ID, id),
					Path:        path,
					ActualValue: id,
				})
			case other.Priority < l.Priority:
				r.AddWarning(validation.Result{
					Level:       validation.LevelConfig,
					Message:     fmt.Sprintf("layer %q excludes lower-priority layer %q, which is placed later", l.ID, id),
					Path:        path,
					ActualValue: id,
					Suggestions: []string{fmt.Sprintf("raise the priority of %q above %d", id, l.Priority)},
				})
			}
		}
	}
}

// ValidateManifest re-checks a manifest against the layer and region that
// produced it: unique instance ids, known instance types, region
// containment, every constraint, scale range and terrain height.
func ValidateManifest(m *Manifest, layer Layer, reg region.Region, sampler terrain.Sampler) *validation.Report {
	r := validation.NewReport()

	if m == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelPlacement,
			Message: "manifest is nil",
		})
		return r
	}
	validateInputs(reg, sampler, r)
	if !r.Valid {
		return r
	}
	if m.LayerID != layer.ID {
		r.AddError(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     fmt.Sprintf("manifest layer %q does not match layer %q", m.LayerID, layer.ID),
			Path:        "layer_id",
			ActualValue: m.LayerID,
			Expected:    layer.ID,
		})
	}

	validateInstanceIDs(m, r)
	validateInstancePlacement(m, layer, reg, sampler, r)
	return r
}

func validateInstanceIDs(m *Manifest, r *validation.Report) {
	seen := make(map[string]int, len(m.Instances))
	for i, inst := range m.Instances {
		if inst.ID == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelPlacement,
				Message:  fmt.Sprintf("instance at index %d has empty id", i),
				Path:     fmt.Sprintf("instances[%d].id", i),
				Expected: "non-empty string",
			})
			continue
		}
		if prev, exists := seen[inst.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("duplicate instance id %q at indices %d and %d", inst.ID, prev, i),
				Path:        fmt.Sprintf("instances[%d].id", i),
				ActualValue: inst.ID,
			})
		}
		seen[inst.ID] = i
	}
}

func validateInstancePlacement(m *Manifest, layer Layer, reg region.Region, sampler terrain.Sampler, r *validation.Report) {
	types := make(map[string]InstanceType, len(layer.Types))
	for _, t := range layer.Types {
		types[t.ID] = t
	}

	for i, inst := range m.Instances {
		path := fmt.Sprintf("instances[%d]", i)
		x, z := inst.Position.X, inst.Position.Z

		typ, ok := types[inst.TypeID]
		if !ok {
			r.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("instance %s has unknown type %q", inst.ID, inst.TypeID),
				Path:        path + ".type_id",
				ActualValue: inst.TypeID,
			})
			continue
		}
		if !reg.Contains(x, z) {
			r.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("instance %s at (%.3f, %.3f) lies outside the %s region", inst.ID, x, z, reg.Kind()),
				Path:        path + ".position",
				ActualValue: inst.Position,
			})
		}
		if !constraint.EvaluateAll(x, z, layer.Constraints, sampler) {
			r.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("instance %s at (%.3f, %.3f) violates a layer constraint", inst.ID, x, z),
				Path:        path + ".position",
				ActualValue: inst.Position,
			})
		}

		lo, hi := typ.scaleRange()
		if inst.Scale.X < lo || inst.Scale.X > hi {
			r.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("instance %s scale %.3f outside [%g, %g]", inst.ID, inst.Scale.X, lo, hi),
				Path:        path + ".scale",
				ActualValue: inst.Scale.X,
			})
		}

		wantY := sampler.Height(x, z) + typ.YOffset
		if math.Abs(inst.Position.Y-wantY) > heightTolerance {
			r.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("instance %s y %.4f does not match terrain height %.4f", inst.ID, inst.Position.Y, wantY),
				Path:        path + ".position.y",
				ActualValue: inst.Position.Y,
				Expected:    fmt.Sprintf("%.4f", wantY),
			})
		}
	}
}
