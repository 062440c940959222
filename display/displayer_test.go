package display

import (
	"image/color"
	"testing"

	"tftlcd/fonts/font5x7"
	"tftlcd/hal"
)

func TestDisplayerAdapter(t *testing.T) {
	d, g := newGRAMDisplay()
	d.SetViewport(Viewport{X: 10, Y: 10, W: 50, H: 40})
	if w, h := d.Size(); w != 50 || h != 40 {
		t.Fatalf("size = %dx%d", w, h)
	}
	d.SetPixel(1, 2, color.RGBA{R: 255, A: 255})
	if g.Pixel(11, 12) != hal.Red {
		t.Fatalf("pixel = %#04x", g.Pixel(11, 12))
	}
}

func TestWriteLineFont(t *testing.T) {
	d, g := newGRAMDisplay()
	d.WriteLineFont(font5x7.Font, 0, 7, "||", hal.White)
	for _, x := range []int{2, 8} {
		if g.Pixel(x, 0) != hal.White || g.Pixel(x, 6) != hal.White || g.Pixel(x-1, 3) != hal.Black || g.Pixel(x, 7) != hal.Black {
			t.Fatalf("glyph at column %d", x)
		}
	}
}
