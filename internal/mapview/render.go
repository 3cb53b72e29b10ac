package mapview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

var palette = map[string]lipgloss.Color{
	"green":   "#22C55E",
	"red":     "#EF4444",
	"blue":    "#3B82F6",
	"marker":  "#FFA500",
	"basemap": "#4B5563",
}

const (
	markerGlyph = '●'
	// bearing step in degrees between circle outline vertices
	circleStep = 5
)

type inkTable struct {
	idx    map[string]int
	styles []lipgloss.Style
}

func newInkTable() *inkTable {
	return &inkTable{idx: map[string]int{}, styles: []lipgloss.Style{lipgloss.NewStyle()}}
}

func (t *inkTable) of(color string) int {
	if color == "" {
		return 0
	}
	if i, ok := t.idx[color]; ok {
		return i
	}
	c, ok := palette[color]
	if !ok {
		c = lipgloss.Color(color)
	}
	t.styles = append(t.styles, lipgloss.NewStyle().Foreground(c))
	t.idx[color] = len(t.styles) - 1
	return len(t.styles) - 1
}

// Render rasterizes the basemap and every attached layer into h lines of w
// cells. The size becomes the viewport size for later conversions.
func (m *Map) Render(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	m.SetSize(w, h)
	br := newBrailleBuf(w, h)
	inks := newInkTable()

	m.drawBasemap(br, inks.of("basemap"))

	markers := map[[2]int]int{}
	for _, id := range m.order {
		l := m.layers[id]
		switch l.kind {
		case KindPolygon:
			m.drawShape(br, l.ring, inks.of(l.style.Color))
		case KindCircle:
			m.drawShape(br, circleRing(l.center, l.radius), inks.of(l.style.Color))
		case KindMarker:
			cx, cy := cellOf(m.toMicro(l.center))
			if cx >= 0 && cx < w && cy >= 0 && cy < h {
				markers[[2]int{cx, cy}] = inks.of(l.style.Color)
			}
		}
	}

	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		var run []rune
		runInk := 0
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runInk == 0 {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(inks.styles[runInk].Render(string(run)))
			}
			run = run[:0]
		}
		for x := 0; x < w; x++ {
			r, ink := br.glyph(x, y), br.ink[y][x]
			if mk, ok := markers[[2]int{x, y}]; ok {
				r, ink = markerGlyph, mk
			}
			if r == ' ' {
				ink = 0
			}
			if ink != runInk {
				flush()
				runInk = ink
			}
			run = append(run, r)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (m *Map) drawBasemap(br *brailleBuf, ink int) {
	d := m.basemap
	for _, p := range d.Points {
		x, y := m.toMicro(p)
		br.setPixel(x, y, ink)
	}
	for _, ls := range d.Lines {
		m.drawPath(br, m.project(ls), false, ink)
	}
	for _, poly := range d.Polygons {
		for _, ring := range poly {
			m.drawPath(br, m.project(ring), true, ink)
		}
	}
}

// drawShape fills the ring sparsely then strokes its edges.
func (m *Map) drawShape(br *brailleBuf, ring []orb.Point, ink int) {
	sp := m.project(ring)
	br.fillRing(sp, ink, true)
	m.drawPath(br, sp, true, ink)
}

func (m *Map) drawPath(br *brailleBuf, pts [][2]float64, closed bool, ink int) {
	for i := 1; i < len(pts); i++ {
		br.drawLineMicro(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], ink)
	}
	if closed && len(pts) > 2 {
		a, b := pts[len(pts)-1], pts[0]
		br.drawLineMicro(a[0], a[1], b[0], b[1], ink)
	}
	if len(pts) == 1 {
		br.setPixel(int(pts[0][0]), int(pts[0][1]), ink)
	}
}

func (m *Map) project(pts []orb.Point) [][2]float64 {
	out := make([][2]float64, 0, len(pts))
	for _, p := range pts {
		x, y := m.microF(p)
		out = append(out, [2]float64{x, y})
	}
	return out
}

// circleRing approximates a ground circle of radius meters.
func circleRing(center orb.Point, radius float64) []orb.Point {
	out := make([]orb.Point, 0, 360/circleStep)
	for b := 0; b < 360; b += circleStep {
		out = append(out, geo.PointAtBearingAndDistance(center, float64(b), radius))
	}
	return out
}
