// Package scatter sequences point generation, exclusion and constraints for
// decoration layers and turns the surviving points into placed instances.
package scatter

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/constraint"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/distribute"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/exclusion"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/rng"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/terrain"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/validation"
)

// Scatter places a single layer. Cross-layer exclusions are ignored since
// there are no prior layers. A nil manifest is returned only when the layer,
// region or terrain fails validation.
func Scatter(layer Layer, reg region.Region, sampler terrain.Sampler, opts Options) (*Manifest, *validation.Report) {
	report := validation.NewReport()
	validateInputs(reg, sampler, report)
	validateLayer(0, layer, report)
	if !report.Valid {
		return nil, report
	}
	if len(layer.Exclude) > 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelConfig,
			Message:     fmt.Sprintf("layer %q: exclude list ignored for a single-layer scatter", layer.ID),
			Path:        "layers[0].exclude",
			ActualValue: layer.Exclude,
		})
		layer.Exclude = nil
	}

	seed := rng.LayerSeed(opts.baseSeed(), layer.ID)
	m, stats := PlaceLayer(layer, reg, sampler, nil, seed, opts.now())
	addStats(report, layer, stats)
	return m, report
}

// ScatterLayers places every layer in priority order (highest first, ties in
// input order) and returns one manifest per layer id. Each layer draws from
// its own stream seeded by the base seed and its id, so reordering or
// adding layers does not change another layer's randomness.
func ScatterLayers(layers []Layer, reg region.Region, sampler terrain.Sampler, opts Options) (map[string]*Manifest, *validation.Report) {
	report := ValidateLayers(layers)
	validateInputs(reg, sampler, report)
	if !report.Valid {
		return nil, report
	}

	base := opts.baseSeed()
	now := opts.now()
	manifests := make(map[string]*Manifest, len(layers))
	acc := Accumulator{}

	for _, layer := range SortByPriority(layers) {
		m, stats := PlaceLayer(layer, reg, sampler, acc, rng.LayerSeed(base, layer.ID), now)
		addStats(report, layer, stats)
		acc = acc.With(layer.ID, m.Points())
		manifests[layer.ID] = m
	}
	return manifests, report
}

// PlaceLayer runs one layer against the points already placed in acc:
// generate candidates, drop those within MinDistance of excluded layers,
// apply the layer's constraints, then build instances. The layer is assumed
// valid.
func PlaceLayer(layer Layer, reg region.Region, sampler terrain.Sampler, acc Accumulator, seed int64, now time.Time) (*Manifest, LayerStats) {
	rnd := rng.New(seed)
	stats := LayerStats{LayerID: layer.ID, Seed: seed, Requested: layer.Count}

	pts := generate(layer, reg, rnd)
	stats.Candidates = len(pts)

	if len(layer.Exclude) > 0 {
		prior, unplaced := acc.Prior(layer.Exclude)
		stats.Unplaced = unplaced
		pts, stats.Excluded = exclusion.Filter(pts, prior, layer.MinDistance)
	}

	pts, stats.Rejected = constraint.Filter(pts, layer.Constraints, sampler)

	instances := buildInstances(layer, pts, sampler, rnd)
	stats.Placed = len(instances)

	return &Manifest{
		ID:        manifestID(rnd, seed),
		LayerID:   layer.ID,
		Algorithm: layer.Algorithm,
		Region:    region.DefOf(reg),
		CreatedAt: now,
		Seed:      seed,
		Requested: layer.Count,
		Behavior:  layer.Behavior,
		Instances: instances,
	}, stats
}

func generate(layer Layer, reg region.Region, rnd *rand.Rand) []geo.Point2D {
	switch layer.Algorithm {
	case distribute.AlgorithmPoisson:
		return distribute.Poisson(reg, layer.MinDistance, layer.Count, rnd)
	case distribute.AlgorithmClustered:
		return distribute.Clustered(reg, layer.Count, rnd)
	case distribute.AlgorithmDensity:
		return distribute.Density(reg, layer.Count, layer.MinDistance, constraint.FindFalloff(layer.Constraints), rnd)
	case distribute.AlgorithmGrid:
		return distribute.Grid(reg, layer.MinDistance, layer.jitter(), layer.Count, rnd)
	}
	return nil
}

func buildInstances(layer Layer, pts []geo.Point2D, sampler terrain.Sampler, rnd *rand.Rand) []PlacedInstance {
	instances := make([]PlacedInstance, 0, len(pts))
	for i, p := range pts {
		y := sampler.Height(p.X, p.Z)
		typ := PickType(layer.Types, rnd)

		lo, hi := typ.scaleRange()
		s := lo + rnd.Float64()*(hi-lo)

		yaw := 0.0
		if !typ.NoRotation {
			yaw = rnd.Float64() * 2 * math.Pi
		}

		instances = append(instances, PlacedInstance{
			ID:       fmt.Sprintf("%s_%05d", layer.ID, i),
			TypeID:   typ.ID,
			Position: geo.Vec3{X: p.X, Y: y + typ.YOffset, Z: p.Z},
			Rotation: geo.Vec3{Y: yaw},
			Scale:    geo.Uniform(s),
		})
	}
	return instances
}

// PickType selects from a non-empty pool by subtracting each weight from a
// roll in [0, total) and taking the first entry that brings it to zero or
// below. The last entry absorbs floating-point leftovers.
func PickType(types []InstanceType, rnd *rand.Rand) InstanceType {
	total := 0.0
	for _, t := range types {
		total += t.Weight
	}
	roll := rnd.Float64() * total
	for _, t := range types {
		roll -= t.Weight
		if roll <= 0 {
			return t
		}
	}
	return types[len(types)-1]
}

// SortByPriority returns a copy of layers ordered by descending priority,
// keeping input order among equal priorities.
func SortByPriority(layers []Layer) []Layer {
	sorted := make([]Layer, len(layers))
	copy(sorted, layers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

// manifestID draws a UUID from the layer stream so ids repeat with the seed.
func manifestID(rnd *rand.Rand, seed int64) string {
	id, err := uuid.NewRandomFromReader(rnd)
	if err != nil {
		return fmt.Sprintf("manifest-%016x", uint64(seed))
	}
	return id.String()
}

func (o Options) baseSeed() int64 {
	if o.Seed != nil {
		return *o.Seed
	}
	return rng.RandomSeed()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now().UTC()
}

func addStats(r *validation.Report, layer Layer, s LayerStats) {
	r.AddInfo(validation.Result{
		Level: validation.LevelPlacement,
		Message: fmt.Sprintf("layer %q (%s): %d candidates, %d excluded, %d rejected by constraints, %d placed",
			layer.ID, layer.Algorithm, s.Candidates, s.Excluded, s.Rejected, s.Placed),
	})
	for _, id := range s.Unplaced {
		r.AddWarning(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     fmt.Sprintf("layer %q excludes %q, which had not been placed yet", layer.ID, id),
			ActualValue: id,
			Suggestions: []string{fmt.Sprintf("give %q a higher priority than %q", id, layer.ID)},
		})
	}
	if s.Placed < s.Requested {
		r.AddWarning(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     fmt.Sprintf("layer %q placed %d of %d requested", layer.ID, s.Placed, s.Requested),
			ActualValue: s.Placed,
			Expected:    fmt.Sprintf("%d", s.Requested),
		})
	}
}
