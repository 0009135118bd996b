package tui

import "sort"

// brailleDots maps a micro-pixel (column, row) inside a 2x4 cell to its
// Unicode braille dot bit.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// brailleCanvas is a w x h cell raster with 2x4 micro-pixels per cell.
type brailleCanvas struct {
	w, h  int
	cells [][]uint8
}

func newBrailleCanvas(w, h int) *brailleCanvas {
	cells := make([][]uint8, h)
	for i := range cells {
		cells[i] = make([]uint8, w)
	}
	return &brailleCanvas{w: w, h: h, cells: cells}
}

func (c *brailleCanvas) set(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/2, my/4
	if cx >= c.w || cy >= c.h {
		return
	}
	c.cells[cy][cx] |= brailleDots[mx%2][my%4]
}

// line plots a Bresenham segment between two micro-pixels.
func (c *brailleCanvas) line(a, b [2]int) {
	x0, y0 := a[0], a[1]
	dx, dy := abs(b[0]-x0), -abs(b[1]-y0)
	sx, sy := 1, 1
	if x0 > b[0] {
		sx = -1
	}
	if y0 > b[1] {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0)
		if x0 == b[0] && y0 == b[1] {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// path strokes consecutive vertices; closed joins the last back to the first.
// A single vertex is plotted as a dot.
func (c *brailleCanvas) path(pts [][2]int, closed bool) {
	switch len(pts) {
	case 0:
		return
	case 1:
		c.set(pts[0][0], pts[0][1])
		return
	}
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i])
	}
	if closed {
		c.line(pts[len(pts)-1], pts[0])
	}
}

// fill paints the interior of rings with the even-odd rule, so inner rings
// punch holes.
func (c *brailleCanvas) fill(rings [][][2]int) {
	var xs []int
	for y := 0; y < c.h*4; y++ {
		xs = xs[:0]
		for _, r := range rings {
			for i := range r {
				a, b := r[i], r[(i+1)%len(r)]
				if a[1] == b[1] {
					continue
				}
				if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
					t := float64(y-a[1]) / float64(b[1]-a[1])
					xs = append(xs, a[0]+int(t*float64(b[0]-a[0])))
				}
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(0, xs[i]); x <= xs[i+1] && x < c.w*2; x++ {
				c.set(x, y)
			}
		}
	}
}

// lines renders every cell row; empty cells become spaces.
func (c *brailleCanvas) lines() []string {
	out := make([]string, c.h)
	for y, row := range c.cells {
		rs := make([]rune, c.w)
		for x, mask := range row {
			rs[x] = ' '
			if mask != 0 {
				rs[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(rs)
	}
	return out
}
