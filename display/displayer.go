package display

import (
	"image/color"

	"tftlcd/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var _ drivers.Displayer = (*Display)(nil)

// Size reports the viewport size, so tinygo drawing code stays inside it.
func (d *Display) Size() (x, y int16) {
	return int16(d.vp.W), int16(d.vp.H)
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	d.DrawPixel(int(x), int(y), hal.FromRGBA(c))
}

// Display presents the sink.
func (d *Display) Display() error {
	return d.Present()
}

// WriteLineFont draws text with any tinyfont font. y is the baseline.
func (d *Display) WriteLineFont(font tinyfont.Fonter, x, y int, text string, c hal.Color) {
	r, g, b := c.RGB()
	tinyfont.WriteLine(d, font, int16(x), int16(y), text, color.RGBA{R: r, G: g, B: b, A: 0xFF})
}
