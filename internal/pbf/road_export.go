package pbf

import (
	"os"

	"github.com/natevvv/graph-search/pkg/road"
	"github.com/paulmach/orb/geojson"
)

// ExportRoadGeoJson writes the roads as a GeoJSON feature collection of line strings
func ExportRoadGeoJson(roads []*road.Segment, filename string) error {
	fc := geojson.NewFeatureCollection()
	for _, segment := range roads {
		feature := geojson.NewFeature(segment.Points)
		feature.ID = int64(segment.ID)
		feature.Properties["type"] = segment.Type.String()
		feature.Properties["oneway"] = segment.OneWay
		if name, ok := segment.Tags["name"]; ok {
			feature.Properties["name"] = name
		}
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
