package display

import (
	"math"

	"tftlcd/hal"
)

func (d *Display) DrawPixel(x, y int, c hal.Color) {
	d.GoTo(x, y, DirAny)
	d.sink.WritePixel(c)
}

// DrawStraightLine writes a run of n pixels starting at (x, y) in dir.
func (d *Display) DrawStraightLine(x, y, n int, dir Direction, c hal.Color) {
	if n <= 0 {
		return
	}
	d.GoTo(x, y, dir)
	d.sink.WritePixelRun(c, n)
}

func (d *Display) DrawHorizontalLine(x, y, w int, c hal.Color) {
	d.DrawStraightLine(x, y, w, DirRight, c)
}

func (d *Display) DrawVerticalLine(x, y, h int, c hal.Color) {
	d.DrawStraightLine(x, y, h, DirDown, c)
}

// DrawLine draws from (x0, y0) to (x1, y1) inclusive. Axis-aligned lines are a single run.
func (d *Display) DrawLine(x0, y0, x1, y1 int, c hal.Color) {
	adx, ady := abs(x1-x0), abs(y1-y0)
	if x0 == x1 {
		d.DrawVerticalLine(x0, min(y0, y1), ady+1, c)
		return
	}

	steep := ady > adx
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		adx, ady = ady, adx
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	if y0 == y1 {
		d.DrawHorizontalLine(x0, y0, adx+1, c)
		return
	}

	err := adx
	ystep := 1
	if y0 > y1 {
		ystep = -1
	}
	adx += adx
	ady += ady
	for ; x0 <= x1; x0++ {
		if steep {
			d.DrawPixel(y0, x0, c)
		} else {
			d.DrawPixel(x0, y0, c)
		}
		err -= ady
		if err < 0 {
			y0 += ystep
			err += adx
		}
	}
}

// DrawLineAngle draws the part of the ray from (x, y) at angle (radians) between radii
// r1 and r2.
func (d *Display) DrawLineAngle(x, y, r1, r2 int, angle float64, c hal.Color) {
	s, co := math.Sincos(angle)
	d.DrawLine(
		x+int(float64(r1)*co), y+int(float64(r1)*s),
		x+int(float64(r2)*co), y+int(float64(r2)*s),
		c)
}

func (d *Display) DrawRect(x, y, w, h int, c hal.Color) {
	d.DrawHorizontalLine(x, y, w, c)
	d.DrawHorizontalLine(x, y+h-1, w, c)
	d.DrawVerticalLine(x, y, h, c)
	d.DrawVerticalLine(x+w-1, y, h, c)
}

// FillRect fills large areas with one windowed run and small ones with line runs along
// the longer side.
func (d *Display) FillRect(x, y, w, h int, c hal.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	switch {
	case w >= 16 && h >= 16:
		saved := d.vp
		d.SetViewportRelative(Viewport{X: x, Y: y, W: w, H: h})
		d.Fill(c)
		d.SetViewport(saved)
	case h >= w:
		for i := 0; i < w; i++ {
			d.DrawVerticalLine(x+i, y, h, c)
		}
	default:
		for i := 0; i < h; i++ {
			d.DrawHorizontalLine(x, y+i, w, c)
		}
	}
}

func (d *Display) FillBorderRect(x, y, w, h int, fill, border hal.Color) {
	d.DrawRect(x, y, w, h, border)
	d.FillRect(x+1, y+1, w-2, h-2, fill)
}

// Fill paints the whole viewport.
func (d *Display) Fill(c hal.Color) {
	d.GoTo(0, 0, DirRight)
	d.sink.WritePixelRun(c, d.ViewportArea())
}

func (d *Display) DrawCircle(x0, y0, r int, c hal.Color) {
	d.DrawPixel(x0, y0+r, c)
	d.DrawPixel(x0, y0-r, c)
	d.DrawPixel(x0+r, y0, c)
	d.DrawPixel(x0-r, y0, c)
	d.drawCircleHelper(x0, y0, r, 0xF, c)
}

func (d *Display) FillCircle(x0, y0, r int, c hal.Color) {
	d.DrawVerticalLine(x0, y0-r, 2*r+1, c)
	d.fillCircleHelper(x0, y0, r, 3, 0, c)
}

func (d *Display) FillBorderCircle(x0, y0, r int, fill, border hal.Color) {
	d.FillCircle(x0, y0, r, fill)
	d.DrawCircle(x0, y0, r, border)
}

func (d *Display) DrawRoundRect(x, y, w, h, r int, c hal.Color) {
	d.DrawHorizontalLine(x+r, y, w-2*r, c)
	d.DrawHorizontalLine(x+r, y+h-1, w-2*r, c)
	d.DrawVerticalLine(x, y+r, h-2*r, c)
	d.DrawVerticalLine(x+w-1, y+r, h-2*r, c)
	d.drawCircleHelper(x+r, y+r, r, 1, c)
	d.drawCircleHelper(x+w-r-1, y+r, r, 2, c)
	d.drawCircleHelper(x+w-r-1, y+h-r-1, r, 4, c)
	d.drawCircleHelper(x+r, y+h-r-1, r, 8, c)
}

func (d *Display) FillRoundRect(x, y, w, h, r int, c hal.Color) {
	d.FillRect(x+r, y, w-2*r, h, c)
	d.fillCircleHelper(x+w-r-1, y+r, r, 1, h-2*r-1, c)
	d.fillCircleHelper(x+r, y+r, r, 2, h-2*r-1, c)
}

func (d *Display) FillBorderRoundRect(x, y, w, h, r int, fill, border hal.Color) {
	d.FillRoundRect(x, y, w, h, r, fill)
	d.DrawRoundRect(x, y, w, h, r, border)
}

// drawCircleHelper plots the octant pairs of a midpoint circle selected by corner:
// 1 top-left, 2 top-right, 4 bottom-right, 8 bottom-left.
func (d *Display) drawCircleHelper(x0, y0, r int, corner uint8, c hal.Color) {
	f := 1 - r
	ddx, ddy := 1, -2*r
	x, y := 0, r
	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		if corner&4 != 0 {
			d.DrawPixel(x0+x, y0+y, c)
			d.DrawPixel(x0+y, y0+x, c)
		}
		if corner&2 != 0 {
			d.DrawPixel(x0+x, y0-y, c)
			d.DrawPixel(x0+y, y0-x, c)
		}
		if corner&8 != 0 {
			d.DrawPixel(x0-y, y0+x, c)
			d.DrawPixel(x0-x, y0+y, c)
		}
		if corner&1 != 0 {
			d.DrawPixel(x0-y, y0-x, c)
			d.DrawPixel(x0-x, y0-y, c)
		}
	}
}

// fillCircleHelper fills the right (corner 1) and/or left (corner 2) half of a circle
// with vertical runs, each stretched by delta rows.
func (d *Display) fillCircleHelper(x0, y0, r int, corner uint8, delta int, c hal.Color) {
	f := 1 - r
	ddx, ddy := 1, -2*r
	x, y := 0, r
	xLen := 2*x + delta + 1
	yLen := 2*y + delta + 1
	for x < y {
		if f >= 0 {
			y--
			yLen -= 2
			ddy += 2
			f += ddy
		}
		x++
		xLen += 2
		ddx += 2
		f += ddx

		if corner&1 != 0 {
			d.DrawVerticalLine(x0+x, y0-y, yLen, c)
			d.DrawVerticalLine(x0+y, y0-x, xLen, c)
		}
		if corner&2 != 0 {
			d.DrawVerticalLine(x0-x, y0-y, yLen, c)
			d.DrawVerticalLine(x0-y, y0-x, xLen, c)
		}
	}
}

func (d *Display) DrawTriangle(x0, y0, x1, y1, x2, y2 int, c hal.Color) {
	d.DrawLine(x0, y0, x1, y1, c)
	d.DrawLine(x1, y1, x2, y2, c)
	d.DrawLine(x2, y2, x0, y0, c)
}

// FillTriangle fills with one horizontal run per scanline from the top vertex to the
// bottom one. Edge x positions are tracked in thousandths of a pixel and truncated.
func (d *Display) FillTriangle(x0, y0, x1, y1, x2, y2 int, c hal.Color) {
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	if y0 == y2 {
		lo, hi := min(x0, x1, x2), max(x0, x1, x2)
		d.DrawHorizontalLine(lo, y0, hi-lo+1, c)
		return
	}

	slope := func(ax, ay, bx, by int) int {
		if by-ay > 0 {
			return (bx - ax) * 1000 / (by - ay)
		}
		return 0
	}
	dx1 := slope(x0, y0, x1, y1) // short top edge
	dx2 := slope(x0, y0, x2, y2) // long edge
	dx3 := slope(x1, y1, x2, y2) // short bottom edge

	// The short edges lie right of the long edge when the top edge leans further
	// right. A flat top has no top edge; compare where the two edges start instead.
	shortRight := dx1 > dx2
	if y1 == y0 {
		shortRight = x1 > x0
	}

	long := x0 * 1000
	short := long
	sy := y0
	for ; sy < y1; sy++ {
		d.triangleSpan(long, short, sy, shortRight, c)
		long += dx2
		short += dx1
	}
	short = x1 * 1000
	for ; sy <= y2; sy++ {
		d.triangleSpan(long, short, sy, shortRight, c)
		long += dx2
		short += dx3
	}
}

func (d *Display) triangleSpan(long, short, y int, shortRight bool, c hal.Color) {
	a, b := long/1000, short/1000
	if !shortRight {
		a, b = b, a
	}
	if b < a {
		return
	}
	d.DrawHorizontalLine(a, y, b-a+1, c)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
