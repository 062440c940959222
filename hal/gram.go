package hal

import (
	"image"
	"image/color"
	"sync"
)

// GRAM emulates the graphics RAM of a TFT controller.
//
// Writes go to a cursor that advances along the primary axis of the current Direction.
// When the cursor leaves the active window on that axis it returns to the window's start
// edge and steps once along the wrap axis; leaving the window on the wrap axis returns it
// to that axis' start edge. Pixels outside the panel are dropped but still advance the
// cursor.
type GRAM struct {
	mu     sync.Mutex
	width  int
	height int
	buf    []Color

	x1, y1, x2, y2 int
	cx, cy         int
	dir            Direction

	dirty image.Rectangle
}

// NewGRAM returns a cleared panel whose window covers the whole panel.
func NewGRAM(width, height int) *GRAM {
	return &GRAM{
		width:  width,
		height: height,
		buf:    make([]Color, width*height),
		x2:     width - 1,
		y2:     height - 1,
	}
}

func (g *GRAM) Width() int     { return g.width }
func (g *GRAM) Height() int    { return g.height }
func (g *GRAM) Present() error { return nil }

// Window returns the active window corners, normalized so x1 <= x2 and y1 <= y2.
func (g *GRAM) Window() (x1, y1, x2, y2 int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.x1, g.y1, g.x2, g.y2
}

// Cursor returns the current cursor position and direction.
func (g *GRAM) Cursor() (x, y int, dir Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cx, g.cy, g.dir
}

func (g *GRAM) SetWindow(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	g.mu.Lock()
	g.x1, g.y1, g.x2, g.y2 = x1, y1, x2, y2
	g.mu.Unlock()
}

func (g *GRAM) SetCursor(x, y int, dir Direction) {
	g.mu.Lock()
	g.cx, g.cy, g.dir = x, y, dir&7
	g.mu.Unlock()
}

func (g *GRAM) WritePixel(c Color) {
	g.mu.Lock()
	g.put(c)
	g.advance()
	g.mu.Unlock()
}

func (g *GRAM) WritePixelRun(c Color, n int) {
	g.mu.Lock()
	for ; n > 0; n-- {
		g.put(c)
		g.advance()
	}
	g.mu.Unlock()
}

// Clear fills the whole panel without touching the cursor or window.
func (g *GRAM) Clear(c Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.buf {
		g.buf[i] = c
	}
	g.dirty = image.Rect(0, 0, g.width, g.height)
}

// Pixel returns the stored color, or Black outside the panel.
func (g *GRAM) Pixel(x, y int) Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return Black
	}
	return g.buf[y*g.width+x]
}

// TakeDirty returns the bounds written since the previous call and resets them.
func (g *GRAM) TakeDirty() image.Rectangle {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := g.dirty
	g.dirty = image.Rectangle{}
	return r
}

// CopyRGBA writes the panel as 8-bit RGBA into dst (len >= 4*w*h).
func (g *GRAM) CopyRGBA(dst []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, p := range g.buf {
		j := i * 4
		if j+3 >= len(dst) {
			return
		}
		r, gg, b := p.RGB()
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

// ColorModel, Bounds and At make the panel readable as an image.Image.
func (g *GRAM) ColorModel() color.Model { return ColorModel }

func (g *GRAM) Bounds() image.Rectangle { return image.Rect(0, 0, g.width, g.height) }

func (g *GRAM) At(x, y int) color.Color { return g.Pixel(x, y) }

func (g *GRAM) put(c Color) {
	if g.cx < 0 || g.cy < 0 || g.cx >= g.width || g.cy >= g.height {
		return
	}
	g.buf[g.cy*g.width+g.cx] = c
	g.dirty = g.dirty.Union(image.Rect(g.cx, g.cy, g.cx+1, g.cy+1))
}

func (g *GRAM) advance() {
	primary := uint8(g.dir & 3)
	wrap := (primary + 1) & 3
	if g.dir >= DirRightWrapUp {
		wrap = (primary + 3) & 3
	}
	g.step(primary)
	if g.inWindow(primary) {
		return
	}
	g.rewind(primary)
	g.step(wrap)
	if !g.inWindow(wrap) {
		g.rewind(wrap)
	}
}

// step moves the cursor one pixel: 0 right, 1 down, 2 left, 3 up.
func (g *GRAM) step(axis uint8) {
	switch axis {
	case 0:
		g.cx++
	case 1:
		g.cy++
	case 2:
		g.cx--
	case 3:
		g.cy--
	}
}

func (g *GRAM) inWindow(axis uint8) bool {
	if axis&1 == 0 {
		return g.cx >= g.x1 && g.cx <= g.x2
	}
	return g.cy >= g.y1 && g.cy <= g.y2
}

func (g *GRAM) rewind(axis uint8) {
	switch axis {
	case 0:
		g.cx = g.x1
	case 1:
		g.cy = g.y1
	case 2:
		g.cx = g.x2
	case 3:
		g.cy = g.y2
	}
}
