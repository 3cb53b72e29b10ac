package mapview

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/paulmach/orb"
)

func TestLayerLifecycle(t *testing.T) {
	m := New(coimbatore, 12)
	c := m.AddCircle(coimbatore, 1000, Style{Color: "green"})
	mk := m.AddMarker(coimbatore)
	if !m.Attached(c) || !m.Attached(mk) || m.Len() != 2 {
		t.Fatalf("layers not attached")
	}
	m.BindPopup(c, Popup{Title: "Circle Information"})
	if id, p, ok := m.OpenedPopup(); !ok || id != c || p.Title != "Circle Information" {
		t.Fatalf("OpenedPopup = %v %v %v", id, p, ok)
	}
	m.SetCircle(c, orb.Point{77, 11}, 500)
	if center, r, _ := m.Circle(c); r != 500 || center != (orb.Point{77, 11}) {
		t.Fatalf("SetCircle not applied: %v %v", center, r)
	}
	m.RemoveLayer(c)
	if m.Attached(c) {
		t.Fatal("circle still attached")
	}
	if _, _, ok := m.OpenedPopup(); ok {
		t.Fatal("popup of removed layer still open")
	}
	m.RemoveLayer(c)
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

func TestBindPopupSwitchesOpenPopup(t *testing.T) {
	m := New(coimbatore, 12)
	a := m.AddPolygon(orb.Ring{{0, 0}, {1, 0}, {1, 1}}, Style{})
	b := m.AddPolygon(orb.Ring{{2, 2}, {3, 2}, {3, 3}}, Style{})
	m.BindPopup(a, Popup{Title: "a", Actions: []Action{{Key: "x", Label: "Remove"}}})
	m.BindPopup(b, Popup{Title: "b"})
	if id, _, _ := m.OpenedPopup(); id != b {
		t.Fatalf("opened = %d, want %d", id, b)
	}
	if !m.OpenPopup(a) {
		t.Fatal("OpenPopup(a) failed")
	}
	_, p, _ := m.OpenedPopup()
	if _, ok := p.Action("x"); !ok {
		t.Fatal("action x not found")
	}
	m.ClosePopup()
	if _, _, ok := m.OpenedPopup(); ok {
		t.Fatal("popup still open")
	}
}

func TestDragEnd(t *testing.T) {
	m := New(coimbatore, 12)
	mk := m.AddMarker(coimbatore)
	var calls []orb.Point
	m.OnDragEnd(mk, func(p orb.Point) { t.Fatal("replaced handler fired") })
	m.OnDragEnd(mk, func(p orb.Point) { calls = append(calls, p) })
	dst := orb.Point{77.01, 11.02}
	m.EndDrag(mk, dst)
	if len(calls) != 1 || calls[0] != dst {
		t.Fatalf("calls = %v", calls)
	}
	if p, _ := m.Marker(mk); p != dst {
		t.Fatalf("marker at %v, want %v", p, dst)
	}
}

func TestMarkerAt(t *testing.T) {
	m := New(coimbatore, 12)
	m.SetSize(80, 24)
	mk := m.AddMarker(coimbatore)
	cx, cy := cellOf(m.LatLngToMicro(coimbatore))
	if id, ok := m.MarkerAt(cx+1, cy); !ok || id != mk {
		t.Fatalf("MarkerAt neighbour = %v %v", id, ok)
	}
	if _, ok := m.MarkerAt(cx, cy+3); ok {
		t.Fatal("MarkerAt far cell matched")
	}
}

func TestRenderBlank(t *testing.T) {
	m := New(coimbatore, 12)
	out := m.Render(30, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d", len(lines))
	}
	for _, l := range lines {
		if l != strings.Repeat(" ", 30) {
			t.Fatalf("blank map line = %q", l)
		}
	}
	if w, h := m.Size(); w != 30 || h != 5 {
		t.Fatalf("size = %dx%d", w, h)
	}
}

func TestRenderShapes(t *testing.T) {
	m := New(coimbatore, 12)
	m.SetSize(60, 20)
	ring := orb.Ring{m.CellToLatLng(5, 2), m.CellToLatLng(50, 2), m.CellToLatLng(50, 17), m.CellToLatLng(5, 17)}
	m.AddPolygon(ring, Style{Color: "blue"})
	m.AddMarker(m.CellToLatLng(30, 10))
	out := m.Render(60, 20)
	braille := 0
	for _, r := range out {
		if r >= 0x2800 && r <= 0x28FF {
			braille++
		}
	}
	if braille == 0 {
		t.Fatal("polygon produced no braille cells")
	}
	if !strings.ContainsRune(out, markerGlyph) {
		t.Fatal("marker glyph missing")
	}
	for i, l := range strings.Split(out, "\n") {
		if n := utf8.RuneCountInString(l); n < 60 {
			t.Fatalf("line %d has %d runes", i, n)
		}
	}
}

func TestClipLine(t *testing.T) {
	if _, _, _, _, ok := clipLine(-10, -10, -5, -1, 20, 20); ok {
		t.Fatal("segment outside accepted")
	}
	x0, y0, x1, y1, ok := clipLine(-10, 5, 30, 5, 20, 20)
	if !ok || x0 != 0 || x1 != 19 || y0 != 5 || y1 != 5 {
		t.Fatalf("clip = %v %v %v %v %v", x0, y0, x1, y1, ok)
	}
}
