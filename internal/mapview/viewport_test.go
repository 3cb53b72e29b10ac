package mapview

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

var coimbatore = orb.Point{76.9558, 11.0168}

func TestResolution(t *testing.T) {
	if got := resolution(0); math.Abs(got-156543.03392) > 1e-3 {
		t.Fatalf("resolution(0) = %v", got)
	}
	if r15, r16 := resolution(15), resolution(16); math.Abs(r15/r16-2) > 1e-9 {
		t.Fatalf("resolution ratio = %v, want 2", r15/r16)
	}
	if got := resolution(MaxZoom); math.Abs(got-0.29858214) > 1e-6 {
		t.Fatalf("resolution(%d) = %v", MaxZoom, got)
	}
}

func TestSetViewClampsZoom(t *testing.T) {
	m := New(coimbatore, 40)
	if m.Zoom() != MaxZoom {
		t.Fatalf("zoom = %d, want %d", m.Zoom(), MaxZoom)
	}
	m.SetView(coimbatore, -3)
	if m.Zoom() != MinZoom {
		t.Fatalf("zoom = %d, want %d", m.Zoom(), MinZoom)
	}
	m.ZoomOut()
	if m.Zoom() != MinZoom {
		t.Fatalf("ZoomOut below min: %d", m.Zoom())
	}
}

func TestCellRoundTrip(t *testing.T) {
	m := New(coimbatore, 12)
	m.SetSize(80, 24)
	for _, c := range [][2]int{{0, 0}, {40, 12}, {79, 23}, {13, 7}} {
		p := m.CellToLatLng(c[0], c[1])
		cx, cy := cellOf(m.LatLngToMicro(p))
		if cx != c[0] || cy != c[1] {
			t.Errorf("cell %v -> %v -> (%d,%d)", c, p, cx, cy)
		}
	}
}

func TestCenterIsMiddleCell(t *testing.T) {
	m := New(coimbatore, 10)
	m.SetSize(100, 30)
	cx, cy := cellOf(m.LatLngToMicro(coimbatore))
	if cx != 50 || cy != 15 {
		t.Fatalf("center cell = (%d,%d), want (50,15)", cx, cy)
	}
}

func TestFitBounds(t *testing.T) {
	m := New(orb.Point{0, 0}, 3)
	m.SetSize(80, 24)
	pts := []orb.Point{{76.90, 11.00}, {77.00, 11.00}, {77.00, 11.05}, {76.90, 11.05}}
	b := orb.MultiPoint(pts).Bound()
	m.FitBounds(b)

	inside := func() bool {
		for _, p := range pts {
			x, y := m.LatLngToMicro(p)
			if x < 0 || x >= 160 || y < 0 || y >= 96 {
				return false
			}
		}
		return true
	}
	if !inside() {
		t.Fatalf("bound not visible at zoom %d", m.Zoom())
	}
	if m.Zoom() == MaxZoom {
		t.Fatalf("zoom %d: expected a tighter fit", m.Zoom())
	}
	m.SetView(m.Center(), m.Zoom()+1)
	m.SetView(m.Center(), m.Zoom()+1)
	if inside() {
		t.Fatalf("bound still fits two levels further in; FitBounds did not pick the largest zoom")
	}
}

func TestFitBoundsSinglePoint(t *testing.T) {
	m := New(orb.Point{0, 0}, 3)
	p := orb.Point{77, 11}
	m.FitBounds(orb.Bound{Min: p, Max: p})
	if m.Zoom() != MaxZoom {
		t.Fatalf("zoom = %d, want %d", m.Zoom(), MaxZoom)
	}
	if c := m.Center(); math.Abs(c.Lon()-77) > 1e-9 || math.Abs(c.Lat()-11) > 1e-9 {
		t.Fatalf("center = %v", c)
	}
}

func TestPan(t *testing.T) {
	m := New(coimbatore, 8)
	m.SetSize(80, 24)
	target := m.CellToLatLng(50, 12)
	m.Pan(10, 0)
	cx, cy := cellOf(m.LatLngToMicro(target))
	if cx != 40 || cy != 12 {
		t.Fatalf("after pan target at (%d,%d), want (40,12)", cx, cy)
	}
}
