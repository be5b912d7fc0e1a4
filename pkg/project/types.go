package project

import (
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/constraint"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/scatter"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/terrain"
)

// Project is the top-level landscape project file.
type Project struct {
	Version string      `yaml:"version" json:"version"`
	Name    string      `yaml:"name" json:"name"`
	Seed    *int64      `yaml:"seed,omitempty" json:"seed,omitempty"`
	Region  region.Def  `yaml:"region" json:"region"`
	Terrain terrain.Def `yaml:"terrain" json:"terrain"`
	Layers  []LayerDef  `yaml:"layers" json:"layers"`
}

// LayerDef is the file form of a scatter layer.
type LayerDef struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name,omitempty" json:"name,omitempty"`
	Algorithm   string  `yaml:"algorithm" json:"algorithm"`
	Count       int     `yaml:"count" json:"count"`
	MinDistance float64 `yaml:"min_distance,omitempty" json:"min_distance,omitempty"`
	// Jitter is the grid perturbation fraction. Omitted means the default;
	// an explicit 0 disables jitter.
	Jitter   *float64 `yaml:"jitter,omitempty" json:"jitter,omitempty"`
	Priority int      `yaml:"priority,omitempty" json:"priority,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	Behavior string   `yaml:"behavior,omitempty" json:"behavior,omitempty"`

	Types       []scatter.InstanceType `yaml:"instance_types" json:"instance_types"`
	Constraints []constraint.Def       `yaml:"constraints,omitempty" json:"constraints,omitempty"`
}

// Scene is a project resolved into runtime values ready to scatter.
type Scene struct {
	Name    string
	Region  region.Region
	Terrain terrain.Sampler
	Layers  []scatter.Layer
	Options scatter.Options
}
