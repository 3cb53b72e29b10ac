package session

import (
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"

	"shapemap/internal/mapview"
)

// ShapeID identifies a committed shape for the lifetime of a session.
type ShapeID uint64

func (id ShapeID) String() string { return "#" + strconv.FormatUint(uint64(id), 10) }

// Shape is a committed shape record together with the map layers it owns.
type Shape struct {
	ID   ShapeID
	Tool Tool

	// circle
	Center orb.Point
	Radius float64 // meters

	// polygon, open ring of exactly Tool.Arity() vertices
	Vertices orb.Ring

	layer   mapview.LayerID
	markers []mapview.LayerID
}

// Layer is the geometry layer drawn for the shape.
func (s Shape) Layer() mapview.LayerID { return s.layer }

// Markers are the draggable vertex (or center) markers.
func (s Shape) Markers() []mapview.LayerID {
	return append([]mapview.LayerID(nil), s.markers...)
}

// Anchor is the circle center or the first polygon vertex.
func (s Shape) Anchor() orb.Point {
	if s.Tool == ToolCircle || len(s.Vertices) == 0 {
		return s.Center
	}
	return s.Vertices[0]
}

// Bound is the bounding region on the ground.
func (s Shape) Bound() orb.Bound {
	if s.Tool == ToolCircle {
		return geo.NewBoundAroundPoint(s.Center, s.Radius)
	}
	return s.Vertices.Bound()
}

// Polygon returns the polygon geometry with a closed ring.
func (s Shape) Polygon() orb.Polygon {
	ring := append(orb.Ring(nil), s.Vertices...)
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return orb.Polygon{ring}
}

// Area is the ground area in square meters.
func (s Shape) Area() float64 {
	if s.Tool == ToolCircle {
		return math.Pi * s.Radius * s.Radius
	}
	return math.Abs(geo.Area(s.Polygon()))
}

// Contains reports whether p lies inside the drawn geometry.
func (s Shape) Contains(p orb.Point) bool {
	if s.Tool == ToolCircle {
		return geo.Distance(s.Center, p) <= s.Radius
	}
	return planar.PolygonContains(s.Polygon(), p)
}

func (s Shape) clone() Shape {
	s.Vertices = append(orb.Ring(nil), s.Vertices...)
	s.markers = append([]mapview.LayerID(nil), s.markers...)
	return s
}

// FormatLatLng prints lat, lng at 4 decimals.
func FormatLatLng(p orb.Point) string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat(), p.Lon())
}

// FormatArea prints square meters, switching to km² from 1 km².
func FormatArea(a float64) string {
	if a >= 1e6 {
		return fmt.Sprintf("%.2f km²", a/1e6)
	}
	return fmt.Sprintf("%.0f m²", a)
}
