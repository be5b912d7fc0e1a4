package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/region"
)

// circleSegments is the outline resolution for circular regions.
const circleSegments = 64

// FeatureCollection maps the document onto the ground plane: X becomes
// longitude-like x and Z becomes y. Each distinct region gets one Polygon
// feature, and each instance a Point feature.
func FeatureCollection(doc *Document) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	seen := map[string]bool{}

	for _, m := range doc.Manifests {
		key := fmt.Sprintf("%+v", m.Region)
		if !seen[key] {
			seen[key] = true
			reg, err := m.Region.Region()
			if err != nil {
				return nil, fmt.Errorf("layer %s: %w", m.LayerID, err)
			}
			outline := geojson.NewFeature(orb.Polygon{region.Outline(reg, circleSegments).Ring()})
			outline.Properties["kind"] = "region"
			outline.Properties["region_type"] = string(reg.Kind())
			outline.Properties["area"] = reg.Area()
			fc.Append(outline)
		}

		for _, inst := range m.Instances {
			f := geojson.NewFeature(orb.Point{inst.Position.X, inst.Position.Z})
			f.ID = inst.ID
			f.Properties["kind"] = "instance"
			f.Properties["layer_id"] = m.LayerID
			f.Properties["type_id"] = inst.TypeID
			f.Properties["y"] = inst.Position.Y
			f.Properties["yaw"] = inst.Rotation.Y
			f.Properties["scale"] = inst.Scale.X
			if m.Behavior != "" {
				f.Properties["behavior"] = m.Behavior
			}
			fc.Append(f)
		}
	}
	return fc, nil
}

// WriteGeoJSON writes the document as a GeoJSON FeatureCollection.
func WriteGeoJSON(w io.Writer, doc *Document) error {
	fc, err := FeatureCollection(doc)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	_, err = w.Write(data)
	return err
}
