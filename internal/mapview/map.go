// Package mapview is the terminal map: a Web Mercator viewport, a layer
// registry of circles, polygons and draggable markers, popups bound to
// layers and a braille rasterizer that draws all of it into a text block.
package mapview

import (
	"github.com/paulmach/orb"

	"shapemap/internal/geom"
)

// LayerID identifies a layer attached to a Map. Zero is never issued.
type LayerID uint64

// Kind is the drawable primitive behind a layer.
type Kind int

const (
	KindCircle Kind = iota + 1
	KindPolygon
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindPolygon:
		return "polygon"
	case KindMarker:
		return "marker"
	}
	return "unknown"
}

// Style holds the drawing options of a layer. Color is a palette name
// ("green", "red", "blue", ...) or anything lipgloss.Color accepts.
type Style struct {
	Color string
}

// Action is a popup button.
type Action struct {
	Key   string
	Label string
	Do    func()
}

// Popup is the information box bound to a layer.
type Popup struct {
	Title   string
	Lines   []string
	Actions []Action
}

// Action returns the action bound to key, if any.
func (p Popup) Action(key string) (Action, bool) {
	for _, a := range p.Actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}

type layer struct {
	id     LayerID
	kind   Kind
	style  Style
	center orb.Point // circle center or marker position
	radius float64   // meters
	ring   orb.Ring  // open polygon ring
	popup  *Popup

	dragEnd func(orb.Point)
}

// Map owns the view state and all attached layers. It is not safe for
// concurrent use; the TUI drives it from its event loop.
type Map struct {
	center orb.Point
	zoom   int

	// last viewport size in cells
	w, h int

	layers map[LayerID]*layer
	order  []LayerID
	nextID LayerID

	opened LayerID

	basemap geom.Data
}

// New returns a map centered on center at zoom with an 80x24 viewport.
func New(center orb.Point, zoom int) *Map {
	m := &Map{
		w:      80,
		h:      24,
		layers: make(map[LayerID]*layer),
	}
	m.SetView(center, zoom)
	return m
}

// SetBasemap replaces the dim reference layer drawn under all shapes.
func (m *Map) SetBasemap(d geom.Data) { m.basemap = d }

// Basemap returns the current reference layer.
func (m *Map) Basemap() geom.Data { return m.basemap }
