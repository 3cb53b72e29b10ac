package session

import "github.com/paulmach/orb/geojson"

// Feature renders the shape as GeoJSON: a Point with a radius property for
// circles, a closed Polygon otherwise.
func (s Shape) Feature() *geojson.Feature {
	var f *geojson.Feature
	if s.Tool == ToolCircle {
		f = geojson.NewFeature(s.Center)
		f.Properties["radius"] = s.Radius
	} else {
		f = geojson.NewFeature(s.Polygon())
	}
	f.ID = s.ID.String()
	f.Properties["shape"] = s.Tool.String()
	return f
}

// FeatureCollection renders every live shape in creation order.
func (s *Session) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, sh := range s.shapes {
		fc.Append(sh.Feature())
	}
	return fc
}
