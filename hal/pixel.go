package hal

import "image/color"

// Color is a packed 16bpp pixel: rrrrrggggggbbbbb.
type Color uint16

const (
	Black   Color = 0x0000
	White   Color = 0xFFFF
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Blue    Color = 0x001F
	Yellow  Color = 0xFFE0
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
	Gray    Color = 0x8410
)

// RGB packs 8-bit channels into a Color, dropping the low bits.
func RGB(r, g, b uint8) Color {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return Color((rr << 11) | (gg << 5) | bb)
}

// RGB expands the packed channels back to 8 bits each.
func (c Color) RGB() (r, g, b uint8) {
	p := uint16(c)
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8) * 0x101
	g = uint32(g8) * 0x101
	b = uint32(b8) * 0x101
	return r, g, b, 0xFFFF
}

// ColorModel converts any color to the packed 16bpp format.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if p, ok := c.(Color); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})

// FromRGBA packs a color.RGBA, ignoring alpha.
func FromRGBA(c color.RGBA) Color {
	return RGB(c.R, c.G, c.B)
}
