package font5x7

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font exposes Table as a tinyfont.Fonter with a 6×8 cell.
//
// Concurrent access is not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &font5x7{}

type font5x7 struct {
	g glyph
}

type glyph struct {
	r rune
}

// Draw paints the set bits with their top row at y-7, matching tinyfont's baseline origin.
func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	cols := Table.Glyph(glyphByte(g.r))
	for col, bits := range cols {
		for row := 0; row < 8; row++ {
			if bits&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-7+int16(row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Columns + 1,
		Height:   8,
		XAdvance: Columns + 1,
		XOffset:  0,
		YOffset:  -7,
	}
}

func (f *font5x7) GetYAdvance() uint8 { return 8 }

func (f *font5x7) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

func glyphByte(r rune) byte {
	if r < first || r > last {
		return '?'
	}
	return byte(r)
}
