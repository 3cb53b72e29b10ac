package geom

import "github.com/paulmach/orb"

// Data is a minimal geometry container for rendering
type Data struct {
	Points   []orb.Point
	Lines    []orb.LineString
	Polygons []orb.Polygon // first ring outer, following rings holes
	Bound    orb.Bound

	n int
}

// Empty reports whether nothing has been added.
func (d *Data) Empty() bool { return d.n == 0 }

// Add flattens g into points, lines and polygons and grows the bound.
func (d *Data) Add(g orb.Geometry) {
	switch g := g.(type) {
	case nil:
		return
	case orb.Point:
		d.Points = append(d.Points, g)
	case orb.MultiPoint:
		d.Points = append(d.Points, g...)
	case orb.LineString:
		d.Lines = append(d.Lines, g)
	case orb.MultiLineString:
		d.Lines = append(d.Lines, g...)
	case orb.Ring:
		d.Polygons = append(d.Polygons, orb.Polygon{g})
	case orb.Polygon:
		d.Polygons = append(d.Polygons, g)
	case orb.MultiPolygon:
		d.Polygons = append(d.Polygons, g...)
	case orb.Bound:
		d.Polygons = append(d.Polygons, g.ToPolygon())
	case orb.Collection:
		for _, sub := range g {
			d.Add(sub)
		}
		return
	default:
		return
	}
	if d.n == 0 {
		d.Bound = g.Bound()
	} else {
		d.Bound = d.Bound.Union(g.Bound())
	}
	d.n++
}
