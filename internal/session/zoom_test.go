package session

import "testing"

func TestZoomForRadius(t *testing.T) {
	cases := []struct {
		radius float64
		want   int
	}{
		{1, 15},
		{500, 15},
		{500.5, 12},
		{2000, 12},
		{5000, 10},
		{5001, 8},
		{10000, 8},
	}
	for _, c := range cases {
		if got := ZoomForRadius(c.radius); got != c.want {
			t.Errorf("ZoomForRadius(%v) = %d, want %d", c.radius, got, c.want)
		}
	}
}

func TestZoomForRadiusNonIncreasing(t *testing.T) {
	prev := ZoomForRadius(0.1)
	for r := 1.0; r <= 20000; r += 37 {
		z := ZoomForRadius(r)
		if z > prev {
			t.Fatalf("zoom rose from %d to %d at r=%v", prev, z, r)
		}
		prev = z
	}
}
