package terrain

import "fmt"

// Def is the serializable, type-tagged form of a terrain sampler.
type Def struct {
	Type string `yaml:"type" json:"type"`

	Height float64 `yaml:"height,omitempty" json:"height,omitempty"`

	Amplitude  float64 `yaml:"amplitude,omitempty" json:"amplitude,omitempty"`
	Wavelength float64 `yaml:"wavelength,omitempty" json:"wavelength,omitempty"`

	GradX float64 `yaml:"grad_x,omitempty" json:"grad_x,omitempty"`
	GradZ float64 `yaml:"grad_z,omitempty" json:"grad_z,omitempty"`

	Resolution int       `yaml:"resolution,omitempty" json:"resolution,omitempty"`
	CellSize   float64   `yaml:"cell_size,omitempty" json:"cell_size,omitempty"`
	Heights    []float64 `yaml:"heights,omitempty" json:"heights,omitempty"`
}

// Sampler builds the terrain described by d. An empty type means flat.
func (d Def) Sampler() (Sampler, error) {
	switch d.Type {
	case "", "flat":
		return Flat{Y: d.Height}, nil
	case "hills":
		if d.Wavelength <= 0 {
			return nil, fmt.Errorf("hills terrain: wavelength %g must be positive", d.Wavelength)
		}
		return Hills(d.Amplitude, d.Wavelength, d.Height), nil
	case "incline":
		return Incline(d.GradX, d.GradZ, d.Height), nil
	case "heightmap":
		hm, err := NewHeightmap(d.Resolution, d.CellSize, d.Heights)
		if err != nil {
			return nil, err
		}
		return hm, nil
	default:
		return nil, fmt.Errorf("unknown terrain type %q", d.Type)
	}
}
