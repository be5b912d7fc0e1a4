package scatter

import (
	"time"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/constraint"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/distribute"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/geo"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
)

// InstanceType is one weighted entry in a layer's pool. Weights are relative
// and need not sum to 1. A zero scale range means unit scale.
type InstanceType struct {
	ID         string  `yaml:"id" json:"id"`
	Weight     float64 `yaml:"weight" json:"weight"`
	ScaleMin   float64 `yaml:"scale_min" json:"scale_min"`
	ScaleMax   float64 `yaml:"scale_max" json:"scale_max"`
	NoRotation bool    `yaml:"no_rotation,omitempty" json:"no_rotation,omitempty"`
	YOffset    float64 `yaml:"y_offset,omitempty" json:"y_offset,omitempty"`
}

func (t InstanceType) scaleRange() (float64, float64) {
	if t.ScaleMin == 0 && t.ScaleMax == 0 {
		return 1, 1
	}
	return t.ScaleMin, t.ScaleMax
}

// Layer is the configuration for one decoration pass. It holds no state
// and may be reused across scatter calls.
type Layer struct {
	ID        string
	Name      string
	Types     []InstanceType
	Algorithm distribute.Algorithm

	// Count is the target number of instances. It is a hint: algorithms
	// may return fewer.
	Count int
	// MinDistance is the blue-noise spacing (poisson, density), the lattice
	// spacing (grid) and the cross-layer exclusion distance.
	MinDistance float64
	// Jitter is the grid perturbation fraction. Zero selects
	// distribute.DefaultJitter; a negative value disables jitter.
	Jitter float64

	Constraints []constraint.Constraint

	// Priority orders layers: higher is placed first.
	Priority int
	// Exclude lists layers whose placed points this layer keeps
	// MinDistance away from.
	Exclude []string
	// Behavior is an opaque tag passed through to the manifest.
	Behavior string
}

func (l Layer) jitter() float64 {
	if l.Jitter == 0 {
		return distribute.DefaultJitter
	}
	return l.Jitter
}

// PlacedInstance is one placed object. Rotation is Euler angles in radians.
type PlacedInstance struct {
	ID       string   `json:"id"`
	TypeID   string   `json:"type_id"`
	Position geo.Vec3 `json:"position"`
	Rotation geo.Vec3 `json:"rotation"`
	Scale    geo.Vec3 `json:"scale"`
}

// Manifest is the result of scattering one layer, with enough provenance to
// reproduce it.
type Manifest struct {
	ID        string               `json:"id"`
	LayerID   string               `json:"layer_id"`
	Algorithm distribute.Algorithm `json:"algorithm"`
	Region    region.Def           `json:"region"`
	CreatedAt time.Time            `json:"created_at"`
	Seed      int64                `json:"seed"`
	Requested int                  `json:"requested"`
	Behavior  string               `json:"behavior,omitempty"`
	Instances []PlacedInstance     `json:"instances"`
}

// Points returns the ground positions of the manifest's instances.
func (m *Manifest) Points() []geo.Point2D {
	pts := make([]geo.Point2D, len(m.Instances))
	for i, inst := range m.Instances {
		pts[i] = inst.Position.Ground()
	}
	return pts
}

// Options controls seeding and timestamps for a scatter call.
type Options struct {
	// Seed is the base seed. Nil draws a random one.
	Seed *int64
	// Now stamps manifests. Nil uses time.Now.
	Now func() time.Time
}

// Seeded returns options with a fixed base seed.
func Seeded(seed int64) Options {
	return Options{Seed: &seed}
}

// Accumulator maps layer id to the ground points that layer placed. It
// grows by one entry per layer and is never mutated in place.
type Accumulator map[string][]geo.Point2D

// With returns a copy of a with layerID set to pts.
func (a Accumulator) With(layerID string, pts []geo.Point2D) Accumulator {
	next := make(Accumulator, len(a)+1)
	for k, v := range a {
		next[k] = v
	}
	next[layerID] = pts
	return next
}

// Prior returns the point sets of the named layers, and the names that
// have not been placed.
func (a Accumulator) Prior(ids []string) ([][]geo.Point2D, []string) {
	var prior [][]geo.Point2D
	var missing []string
	for _, id := range ids {
		pts, ok := a[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		prior = append(prior, pts)
	}
	return prior, missing
}

// LayerStats counts what happened to a layer's candidates.
type LayerStats struct {
	LayerID    string
	Seed       int64
	Requested  int
	Candidates int
	Excluded   int
	Rejected   int
	Placed     int
	// Unplaced lists excluded layers that had no placed points yet.
	Unplaced []string
}
