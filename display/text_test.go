package display

import (
	"testing"
	"time"

	"tftlcd/hal"
)

func TestDrawCharOpaque(t *testing.T) {
	d, g := newGRAMDisplay()
	d.SetTextColorBG(hal.White, hal.Blue)
	d.DrawChar(10, 20, 'A', 1)

	// 'A' column 0 is 0x7C: rows 2-6 set.
	if g.Pixel(10, 20) != hal.Blue || g.Pixel(10, 22) != hal.White || g.Pixel(10, 27) != hal.Blue {
		t.Fatalf("column 0: %#04x %#04x %#04x", g.Pixel(10, 20), g.Pixel(10, 22), g.Pixel(10, 27))
	}
	if g.Pixel(15, 22) != hal.Black || g.Pixel(10, 28) != hal.Black {
		t.Fatal("opaque cell exceeds 5x8")
	}
}

func TestDrawCharOpaqueScaled(t *testing.T) {
	d, g := newGRAMDisplay()
	d.SetTextColorBG(hal.White, hal.Blue)
	d.DrawChar(10, 20, 'A', 2)

	if g.Pixel(10, 21) != hal.Blue || g.Pixel(11, 24) != hal.White || g.Pixel(10, 25) != hal.White {
		t.Fatal("column 0 scaled")
	}
	// Column 1 (0x12) covers x 12-13, bit 1 at y 22-23.
	if g.Pixel(12, 22) != hal.White || g.Pixel(13, 23) != hal.White || g.Pixel(12, 24) != hal.Blue {
		t.Fatal("column 1 scaled")
	}
	if g.Pixel(19, 35) != hal.Blue || g.Pixel(20, 20) != hal.Black || g.Pixel(10, 36) != hal.Black {
		t.Fatal("scaled cell bounds")
	}
}

func TestDrawCharTransparent(t *testing.T) {
	s := &recSink{}
	d := New(s, Config{})
	d.SetTextColor(hal.Red)

	s.reset()
	d.DrawChar(0, 0, '|', 1)
	runs := s.runs()
	if len(runs) != 2 || runs[0].n != 3 || runs[1].n != 3 {
		t.Fatalf("runs = %v", runs)
	}

	dg, g := newGRAMDisplay()
	dg.FillRect(0, 0, 6, 8, hal.Blue)
	dg.SetTextColor(hal.Red)
	dg.DrawChar(0, 0, '|', 1)
	if g.Pixel(2, 0) != hal.Red || g.Pixel(2, 6) != hal.Red || g.Pixel(2, 3) != hal.Blue || g.Pixel(1, 1) != hal.Blue {
		t.Fatal("transparent glyph overwrote background")
	}
}

func TestWriteAdvancesCursor(t *testing.T) {
	d := New(&recSink{}, Config{})
	d.SetCursor(4, 4)
	d.SetTextSize(2)
	if _, err := d.WriteString("ab\r\ncd"); err != nil {
		t.Fatal(err)
	}
	o := d.TextOptions()
	if o.CursorX != 4+2*12 || o.CursorY != 4+16 {
		t.Fatalf("cursor = (%d,%d)", o.CursorX, o.CursorY)
	}

	d.SetCursorDown(0)
	if o := d.TextOptions(); o.CursorX != 0 || o.CursorY != 36 || o.CursorXStart != 0 {
		t.Fatalf("cursor down = %+v", o)
	}
}

func TestDrawStringLeavesCursor(t *testing.T) {
	d, g := newGRAMDisplay()
	d.SetCursor(7, 7)
	d.SetTextColor(hal.White)
	d.DrawString(0, 0, "|\n|", 1)
	if d.TextOptions().CursorX != 7 {
		t.Fatal("DrawString moved the cursor")
	}
	if g.Pixel(2, 0) != hal.White || g.Pixel(2, 8) != hal.White {
		t.Fatal("second line missing")
	}
}

func TestComputeMiddleBounds(t *testing.T) {
	b := ComputeMiddleBounds(0, 0, 100, 40, "Hi")
	if b != (TextBounds{X: 26, Y: 4, W: 48, H: 32, Size: 4}) {
		t.Fatalf("bounds = %+v", b)
	}

	b = ComputeMiddleBounds(10, 10, 60, 60, "ab\nabc")
	// 18x16 text: size 3 is the last where both fit with a margin.
	if b.Size != 3 || b.W != 54 || b.H != 48 || b.X != 13 || b.Y != 16 {
		t.Fatalf("multi-line bounds = %+v", b)
	}
}

func TestDrawStringMiddle(t *testing.T) {
	d, g := newGRAMDisplay()
	d.SetTextColor(hal.White)
	d.DrawStringMiddle(0, 0, 100, 40, "Hi")
	if d.TextOptions().Size != 4 {
		t.Fatalf("size = %d", d.TextOptions().Size)
	}
	// 'H' column 0 is 0x7F, drawn at x 26-29 from y 4.
	if g.Pixel(26, 4) != hal.White || g.Pixel(29, 31) != hal.White || g.Pixel(25, 4) != hal.Black {
		t.Fatal("centered text")
	}
}

func TestPrintPadding(t *testing.T) {
	d := New(&recSink{}, Config{})
	d.SetCursor(12, 0)
	d.WriteString("ab")
	d.PrintPadding(5)
	if got := d.TextOptions().CursorX; got != 12+5*6 {
		t.Fatalf("cursor = %d", got)
	}
	d.PrintPadding(2)
	if got := d.TextOptions().CursorX; got != 12+5*6 {
		t.Fatalf("padding past the column moved the cursor to %d", got)
	}
}

func TestPrintTimeMatchesString(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)
	cases := []struct {
		print func(*Display)
		want  string
	}{
		{func(d *Display) { d.PrintTime(ts) }, "09:05:03"},
		{func(d *Display) { d.PrintShortTime(ts) }, "09:05"},
		{func(d *Display) { d.PrintDate(ts) }, "07/03/24"},
	}
	for _, tc := range cases {
		a, ga := newGRAMDisplay()
		b, gb := newGRAMDisplay()
		a.SetCursor(0, 0)
		tc.print(a)
		b.DrawString(0, 0, tc.want, 1)
		for y := 0; y < 8; y++ {
			for x := 0; x < 6*len(tc.want); x++ {
				if ga.Pixel(x, y) != gb.Pixel(x, y) {
					t.Fatalf("%q differs at (%d,%d)", tc.want, x, y)
				}
			}
		}
		if a.TextOptions().CursorX != 6*len(tc.want) {
			t.Fatalf("%q cursor = %d", tc.want, a.TextOptions().CursorX)
		}
	}
}

func TestDebugPrintRestoresOptions(t *testing.T) {
	d, g := newGRAMDisplay()
	d.SetTextColor(hal.Red)
	d.SetCursor(1, 2)
	d.SetTextSize(3)
	before := d.TextOptions()

	d.DebugPrintInt(0, 100, 1, 42)
	if d.TextOptions() != before {
		t.Fatalf("options = %+v, want %+v", d.TextOptions(), before)
	}
	// Padded to six opaque cells: the last cell's first column is black background
	// over a white-filled area.
	d.FillRect(0, 200, 40, 8, hal.White)
	d.DebugPrint(0, 200, 1, "x", 6)
	if g.Pixel(30, 200) != hal.Black {
		t.Fatal("padding not drawn")
	}
	d.DebugPrintFloat(0, 300, 1, 3.14159)
	if d.TextOptions() != before {
		t.Fatal("float print changed options")
	}
}

func TestDrawGlyphAdvances(t *testing.T) {
	d, g := newGRAMDisplay()
	d.SetTextColor(hal.Green)
	d.SetCursor(0, 0)
	d.DrawGlyph([5]byte{0xFF, 0, 0, 0, 0x01})
	if d.TextOptions().CursorX != 12 {
		t.Fatalf("cursor = %d", d.TextOptions().CursorX)
	}
	if g.Pixel(0, 7) != hal.Green || g.Pixel(4, 0) != hal.Green || g.Pixel(4, 1) != hal.Black {
		t.Fatal("raw glyph")
	}
}
