package mapview

import "slices"

// brailleBuf is a 2x4 dot-per-cell canvas. Each cell keeps the ink of the
// last layer that touched it.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	ink  [][]int
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	ink := make([][]int, h)
	for i := range m {
		m[i] = make([]uint8, w)
		ink[i] = make([]int, w)
	}
	return &brailleBuf{w: w, h: h, m: m, ink: ink}
}

var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my, ink int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	b.ink[cy][cx] = ink
}

// drawLineMicro draws a line on the microgrid using Bresenham, clipped to
// the buffer first so far-off vertices at high zoom stay cheap.
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 float64, ink int) {
	ax, ay, bx, by, ok := clipLine(x0, y0, x1, y1, float64(b.w*2), float64(b.h*4))
	if !ok {
		return
	}
	b.bresenham(int(ax), int(ay), int(bx), int(by), ink)
}

func (b *brailleBuf) bresenham(x0, y0, x1, y1, ink int) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, ink)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLine is Liang-Barsky against [0,w)x[0,h).
func clipLine(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - 1 - x0},
		{-dy, y0},
		{dy, h - 1 - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// fillRing fills a closed ring with the even-odd rule per scanline. sparse
// sets every other dot so outlines and the basemap stay readable beneath.
func (b *brailleBuf) fillRing(ring [][2]float64, ink int, sparse bool) {
	if len(ring) < 3 {
		return
	}
	wMic, hMic := b.w*2, b.h*4
	for yMic := 0; yMic < hMic; yMic++ {
		y := float64(yMic) + 0.5
		var xs []float64
		for i := range ring {
			a := ring[i]
			c := ring[(i+1)%len(ring)]
			if a[1] == c[1] { // horizontal edge: skip
				continue
			}
			if (y >= a[1] && y < c[1]) || (y >= c[1] && y < a[1]) {
				t := (y - a[1]) / (c[1] - a[1])
				xs = append(xs, a[0]+t*(c[0]-a[0]))
			}
		}
		if len(xs) < 2 {
			continue
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			xstart := max(0, int(xs[i]))
			xend := min(wMic-1, int(xs[i+1]))
			for xMic := xstart; xMic <= xend; xMic++ {
				if sparse && (xMic+yMic)%2 != 0 {
					continue
				}
				b.setPixel(xMic, yMic, ink)
			}
		}
	}
}

func (b *brailleBuf) glyph(x, y int) rune {
	mask := b.m[y][x]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
