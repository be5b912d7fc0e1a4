// Package project loads landscape project files and resolves them into the
// region, terrain and layers a scatter run needs.
package project

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/constraint"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/distribute"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/scatter"
)

// FileName is the project file looked up inside a project directory.
const FileName = "landscape.yaml"

//go:embed landscape.schema.json
var schemaSource string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("landscape.schema.json", schemaSource)
})

// Load reads and schema-checks a project from a YAML file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadProject loads the project file from a project directory.
func LoadProject(dir string) (*Project, error) {
	return Load(filepath.Join(dir, FileName))
}

// Parse validates data against the project schema and decodes it.
func Parse(data []byte) (*Project, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	return &p, nil
}

// ValidateSchema checks a YAML document against the embedded JSON schema.
// The document is round-tripped through JSON so the validator sees the
// same value kinds it would for a JSON file.
func ValidateSchema(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compiling project schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing project YAML: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting project to JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("converting project to JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("project schema: %w", err)
	}
	return nil
}

// Build resolves the project's definitions into runtime values. Every
// definition error is reported, not just the first. Cross-layer checks are
// left to scatter.ValidateLayers.
func (p *Project) Build() (*Scene, error) {
	var errs []error

	reg, err := p.Region.Region()
	if err != nil {
		errs = append(errs, fmt.Errorf("region: %w", err))
	}
	sampler, err := p.Terrain.Sampler()
	if err != nil {
		errs = append(errs, fmt.Errorf("terrain: %w", err))
	}

	layers := make([]scatter.Layer, 0, len(p.Layers))
	for i, ld := range p.Layers {
		l, err := ld.Layer()
		if err != nil {
			errs = append(errs, fmt.Errorf("layers[%d] (%s): %w", i, ld.ID, err))
			continue
		}
		layers = append(layers, l)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &Scene{
		Name:    p.Name,
		Region:  reg,
		Terrain: sampler,
		Layers:  layers,
		Options: scatter.Options{Seed: p.Seed},
	}, nil
}

// Layer converts the definition into a scatter layer.
func (d LayerDef) Layer() (scatter.Layer, error) {
	algo, err := distribute.ParseAlgorithm(d.Algorithm)
	if err != nil {
		return scatter.Layer{}, err
	}

	cs := make([]constraint.Constraint, 0, len(d.Constraints))
	for j, cd := range d.Constraints {
		c, err := cd.Constraint()
		if err != nil {
			return scatter.Layer{}, fmt.Errorf("constraints[%d]: %w", j, err)
		}
		cs = append(cs, c)
	}

	jitter := 0.0
	if d.Jitter != nil {
		jitter = *d.Jitter
		if jitter == 0 {
			jitter = -1
		}
	}

	return scatter.Layer{
		ID:          d.ID,
		Name:        d.Name,
		Types:       append([]scatter.InstanceType(nil), d.Types...),
		Algorithm:   algo,
		Count:       d.Count,
		MinDistance: d.MinDistance,
		Jitter:      jitter,
		Constraints: cs,
		Priority:    d.Priority,
		Exclude:     append([]string(nil), d.Exclude...),
		Behavior:    d.Behavior,
	}, nil
}
