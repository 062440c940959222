package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tftlcd/hal"
)

// TextOptions is the text cursor and style. Printing advances CursorX; a newline returns
// to CursorXStart.
type TextOptions struct {
	CursorX      int
	CursorY      int
	CursorXStart int
	Size         int
	Color        hal.Color
	Background   hal.Color
	// HasBackground selects opaque cells. Without it only set glyph bits are drawn.
	HasBackground bool
}

// TextBounds is the placement chosen by ComputeMiddleBounds.
type TextBounds struct {
	X, Y, W, H int
	Size       int
}

func (d *Display) TextOptions() TextOptions     { return d.text }
func (d *Display) SetTextOptions(o TextOptions) { d.text = o }

// SetCursor moves the text cursor and makes x the line start.
func (d *Display) SetCursor(x, y int) {
	d.text.CursorX = x
	d.text.CursorXStart = x
	d.text.CursorY = y
}

// SetCursorDown moves to x on the next text line.
func (d *Display) SetCursorDown(x int) {
	d.SetCursor(x, d.text.CursorY+d.text.Size*8)
}

func (d *Display) SetTextSize(s int) {
	if s < 1 {
		s = 1
	}
	d.text.Size = s
}

// SetTextColor draws text transparently in c.
func (d *Display) SetTextColor(c hal.Color) {
	d.text.Color = c
	d.text.HasBackground = false
}

// SetTextColorBG draws text in c on opaque bg cells.
func (d *Display) SetTextColorBG(c, bg hal.Color) {
	d.text.Color = c
	d.text.Background = bg
	d.text.HasBackground = true
}

// Write prints p at the text cursor. It implements io.Writer and never fails.
func (d *Display) Write(p []byte) (int, error) {
	for _, c := range p {
		d.writeByte(c)
	}
	return len(p), nil
}

func (d *Display) WriteByte(c byte) error {
	d.writeByte(c)
	return nil
}

func (d *Display) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		d.writeByte(s[i])
	}
	return len(s), nil
}

func (d *Display) writeByte(c byte) {
	switch c {
	case '\n':
		d.text.CursorY += d.text.Size * 8
		d.text.CursorX = d.text.CursorXStart
	case '\r':
	default:
		d.DrawChar(d.text.CursorX, d.text.CursorY, c, d.text.Size)
		d.text.CursorX += d.text.Size * 6
	}
}

// DrawString draws s at (x, y) without touching the text cursor.
func (d *Display) DrawString(x, y int, s string, size int) {
	cx, cy := x, y
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			cx = x
			cy += size * 8
			continue
		}
		d.DrawChar(cx, cy, s[i], size)
		cx += size * 6
	}
}

func (d *Display) DrawChar(x, y int, c byte, size int) {
	d.drawGlyph(x, y, d.glyphs.Glyph(c), size)
}

// DrawGlyph prints raw column data as the next character, followed by a space.
func (d *Display) DrawGlyph(cols [5]byte) {
	d.drawGlyph(d.text.CursorX, d.text.CursorY, cols, d.text.Size)
	d.text.CursorX += d.text.Size * 6
	d.writeByte(' ')
}

func (d *Display) drawGlyph(x, y int, cols [5]byte, size int) {
	if size < 1 {
		size = 1
	}
	if d.text.HasBackground {
		d.drawGlyphOpaque(x, y, cols, size)
		return
	}
	d.drawGlyphTransparent(x, y, cols, size)
}

// drawGlyphOpaque writes each scaled column as one downward stream of 8*size pixels.
func (d *Display) drawGlyphOpaque(x, y int, cols [5]byte, size int) {
	fg, bg := d.text.Color, d.text.Background
	col, rep := 0, 0
	for i := 0; i < len(cols)*size; i++ {
		d.GoTo(x, y, DirDown)
		x++
		bits := cols[col]
		for b := 0; b < 8; b++ {
			c := bg
			if bits&1 != 0 {
				c = fg
			}
			d.sink.WritePixelRun(c, size)
			bits >>= 1
		}
		if rep++; rep >= size {
			rep = 0
			col++
		}
	}
}

// drawGlyphTransparent fills each vertical run of set bits as one rectangle.
func (d *Display) drawGlyphTransparent(x, y int, cols [5]byte, size int) {
	c := d.text.Color
	cx := x
	for _, bits := range cols {
		cy := y
		for bits != 0 {
			if bits&1 == 0 {
				bits >>= 1
				cy += size
				continue
			}
			n := 0
			for bits&1 != 0 {
				bits >>= 1
				n += size
			}
			d.FillRect(cx, cy, size, n, c)
			cy += n
		}
		cx += size
	}
}

// ComputeMiddleBounds finds the largest text size at which text fits inside the
// rectangle with a pixel to spare on each side, and centers it.
func ComputeMiddleBounds(x, y, w, h int, text string) TextBounds {
	tw, th, line := 0, 8, 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			th += 8
			line = 0
			continue
		}
		line += 6
		tw = max(tw, line)
	}

	size := 2
	for tw*size+2 < w && th*size+2 < h {
		size++
	}
	size--

	b := TextBounds{Size: size, W: tw * size, H: th * size}
	b.X = x + (w-b.W)>>1
	b.Y = y + (h-b.H)>>1
	return b
}

// DrawStringMiddle prints text centered in the rectangle at the largest size that fits.
// The text size and cursor are left at the chosen values.
func (d *Display) DrawStringMiddle(x, y, w, h int, text string) {
	b := ComputeMiddleBounds(x, y, w, h, text)
	d.SetTextSize(b.Size)
	d.SetCursor(b.X, b.Y)
	d.WriteString(text)
}

// PrintPadding prints spaces until n characters have been printed on the current line.
func (d *Display) PrintPadding(n int) {
	n -= (d.text.CursorX - d.text.CursorXStart) / (6 * d.text.Size)
	for ; n > 0; n-- {
		d.writeByte(' ')
	}
}

func (d *Display) PrintShortTime(t time.Time) {
	fmt.Fprintf(d, "%02d:%02d", t.Hour(), t.Minute())
}

func (d *Display) PrintTime(t time.Time) {
	fmt.Fprintf(d, "%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// PrintDate prints dd/mm/yy.
func (d *Display) PrintDate(t time.Time) {
	fmt.Fprintf(d, "%02d/%02d/%02d", t.Day(), int(t.Month()), t.Year()%100)
}

// DebugPrint prints text white on black at (x, y), padded with spaces to padding
// characters. The text options are restored afterwards.
func (d *Display) DebugPrint(x, y, size int, text string, padding int) {
	saved := d.text
	d.SetCursor(x, y)
	d.SetTextSize(size)
	d.SetTextColorBG(hal.White, hal.Black)
	d.WriteString(text)
	if n := padding - len(text); n > 0 {
		d.WriteString(strings.Repeat(" ", n))
	}
	d.text = saved
}

// DebugPrintInt prints v padded to six characters.
func (d *Display) DebugPrintInt(x, y, size, v int) {
	d.DebugPrint(x, y, size, strconv.Itoa(v), 6)
}

// DebugPrintFloat prints v with two decimals, padded to six characters.
func (d *Display) DebugPrintFloat(x, y, size int, v float64) {
	d.DebugPrint(x, y, size, fmt.Sprintf("%4.2f", v), 6)
}
