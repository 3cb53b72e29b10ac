package mapview

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	MinZoom = 1
	MaxZoom = 19

	tileSize int = 256
	// half the Web Mercator world width in meters
	mercatorHalf = 20037508.342789244
	// fraction of the viewport left free on each side by FitBounds
	fitPadding = 0.1
)

// resolution returns Mercator meters per micro pixel at zoom z. One braille
// dot is one map pixel, so a cell spans 2x4 pixels.
func resolution(z int) float64 {
	return 2 * mercatorHalf / float64(tileSize<<uint(z))
}

func clampZoom(z int) int {
	return max(MinZoom, min(MaxZoom, z))
}

// SetSize records the viewport size in cells. FitBounds and the cell
// conversions use the last size set.
func (m *Map) SetSize(w, h int) {
	m.w = max(1, w)
	m.h = max(1, h)
}

// Size returns the viewport size in cells.
func (m *Map) Size() (int, int) { return m.w, m.h }

// SetView centers the map on center at zoom.
func (m *Map) SetView(center orb.Point, zoom int) {
	m.center = center
	m.zoom = clampZoom(zoom)
}

// FlyTo is SetView; a terminal has nothing to animate.
func (m *Map) FlyTo(center orb.Point, zoom int) { m.SetView(center, zoom) }

// Center returns the view center.
func (m *Map) Center() orb.Point { return m.center }

// Zoom returns the current zoom level.
func (m *Map) Zoom() int { return m.zoom }

// ZoomIn zooms one level in around the center.
func (m *Map) ZoomIn() { m.zoom = clampZoom(m.zoom + 1) }

// ZoomOut zooms one level out around the center.
func (m *Map) ZoomOut() { m.zoom = clampZoom(m.zoom - 1) }

// FitBounds centers b and picks the largest zoom at which it fits inside
// the padded viewport.
func (m *Map) FitBounds(b orb.Bound) {
	lo := project.Point(b.Min, project.WGS84.ToMercator)
	hi := project.Point(b.Max, project.WGS84.ToMercator)
	mid := orb.Point{(lo[0] + hi[0]) / 2, (lo[1] + hi[1]) / 2}
	center := project.Point(mid, project.Mercator.ToWGS84)

	dx, dy := hi[0]-lo[0], hi[1]-lo[1]
	availW := float64(m.w*2) * (1 - 2*fitPadding)
	availH := float64(m.h*4) * (1 - 2*fitPadding)
	zoom := MaxZoom
	for zoom > MinZoom {
		res := resolution(zoom)
		if dx/res <= availW && dy/res <= availH {
			break
		}
		zoom--
	}
	m.SetView(center, zoom)
}

// Pan shifts the view by whole cells.
func (m *Map) Pan(dx, dy int) {
	cx, cy := m.toPixel(m.center)
	m.center = m.fromPixel(cx+float64(dx*2), cy+float64(dy*4))
}

// toPixel returns global pixel coordinates at the current zoom; y grows
// southwards and the origin is the middle of the world.
func (m *Map) toPixel(p orb.Point) (float64, float64) {
	mp := project.Point(p, project.WGS84.ToMercator)
	res := resolution(m.zoom)
	return mp[0] / res, -mp[1] / res
}

func (m *Map) fromPixel(px, py float64) orb.Point {
	res := resolution(m.zoom)
	return project.Point(orb.Point{px * res, -py * res}, project.Mercator.ToWGS84)
}

// toMicro maps lon/lat into viewport micro pixels (2x4 per cell).
func (m *Map) toMicro(p orb.Point) (int, int) {
	x, y := m.microF(p)
	return int(math.Floor(x)), int(math.Floor(y))
}

func (m *Map) microF(p orb.Point) (float64, float64) {
	px, py := m.toPixel(p)
	cx, cy := m.toPixel(m.center)
	return px - cx + float64(m.w), py - cy + float64(m.h*2)
}

// LatLngToMicro is the exported form of the micro pixel projection.
func (m *Map) LatLngToMicro(p orb.Point) (int, int) { return m.toMicro(p) }

// CellToLatLng converts a viewport cell to the lon/lat under its center.
func (m *Map) CellToLatLng(cx, cy int) orb.Point {
	cpx, cpy := m.toPixel(m.center)
	px := float64(cx*2+1-m.w) + cpx
	py := float64(cy*4+2-m.h*2) + cpy
	return m.fromPixel(px, py)
}

func cellOf(mx, my int) (int, int) {
	return floorDiv(mx, 2), floorDiv(my, 4)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
