package font5x7

import (
	"image/color"
	"testing"
)

func TestGlyphLookup(t *testing.T) {
	if got := Table.Glyph('A'); got != [5]byte{0x7C, 0x12, 0x11, 0x12, 0x7C} {
		t.Fatalf("A = % x", got)
	}
	if got := Table.Glyph(' '); got != [5]byte{} {
		t.Fatalf("space = % x", got)
	}
	if Table.Glyph(0x01) != Table.Glyph('?') || Table.Glyph(0xC8) != Table.Glyph('?') {
		t.Fatal("unmapped codes should render as '?'")
	}
	if len(glyphData) != (last-first+1)*Columns {
		t.Fatalf("table has %d bytes", len(glyphData))
	}
}

type pixelSet map[[2]int16]bool

func (p pixelSet) Size() (int16, int16)              { return 100, 100 }
func (p pixelSet) SetPixel(x, y int16, _ color.RGBA) { p[[2]int16{x, y}] = true }
func (p pixelSet) Display() error                    { return nil }

func TestFontDrawsFromBaseline(t *testing.T) {
	px := pixelSet{}
	g := Font.GetGlyph('|')
	g.Draw(px, 10, 20, color.RGBA{A: 255})

	// '|' is column 2 with rows 0-2 and 4-6 set.
	for _, row := range []int16{0, 1, 2, 4, 5, 6} {
		if !px[[2]int16{12, 13 + row}] {
			t.Fatalf("missing pixel at row %d", row)
		}
	}
	if len(px) != 6 {
		t.Fatalf("drew %d pixels", len(px))
	}
	if info := g.Info(); info.XAdvance != 6 || info.YOffset != -7 {
		t.Fatalf("info = %+v", info)
	}
}
