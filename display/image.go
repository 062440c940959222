package display

import (
	"errors"
	"fmt"
	"io"

	"tftlcd/hal"
	"tftlcd/imgfmt"
	"tftlcd/stream"
)

var (
	ErrUnknownFormat      = errors.New("display: unknown image format")
	ErrUnsupportedDepth   = imgfmt.ErrUnsupportedDepth
	ErrConflictingOptions = errors.New("display: color function and palette are mutually exclusive")
)

// ColorFunc transforms a decoded 8-bit color before it is packed.
type ColorFunc func(r, g, b uint8) (uint8, uint8, uint8)

// ImageOptions adjusts colors while decoding. At most one field may be set.
type ImageOptions struct {
	// Color is applied to every palette entry and every direct-color pixel.
	Color ColorFunc
	// Palette replaces the image's palette entries, index for index. Entries the
	// image declares beyond len(Palette) keep their stored color.
	Palette []hal.Color
}

// Brightness scales all channels by f.
func Brightness(f float64) ColorFunc {
	return Tint(f, f, f)
}

// Tint scales each channel by its own factor, clamping at 255.
func Tint(fr, fg, fb float64) ColorFunc {
	scale := func(v uint8, f float64) uint8 {
		s := float64(v) * f
		switch {
		case s >= 255:
			return 255
		case s <= 0:
			return 0
		}
		return uint8(s)
	}
	return func(r, g, b uint8) (uint8, uint8, uint8) {
		return scale(r, fr), scale(g, fg), scale(b, fb)
	}
}

// DrawImage decodes a "BM" or "LCD" image from r with its top-left corner at
// viewport-relative (x, y).
//
// Pixels are streamed straight to the sink, so a stream that ends early still draws the
// declared area: missing bytes read as zero and the first read error is returned. The
// caller's viewport and wrap mode are restored in every case.
func (d *Display) DrawImage(r stream.Reader, x, y int, opt ImageOptions) error {
	if opt.Color != nil && opt.Palette != nil {
		return ErrConflictingOptions
	}

	savedVP, savedWrap := d.vp, d.wrap
	defer func() {
		d.wrap = savedWrap
		d.SetViewport(savedVP)
	}()

	ir := &imageReader{r: r}
	switch ir.byte() {
	case 'B':
		if ir.byte() == 'M' {
			return d.drawBMP(ir, x, y, opt)
		}
	case 'L':
		if ir.byte() == 'C' && ir.byte() == 'D' {
			return d.drawLCD(ir, x, y, opt)
		}
	}
	if ir.err != nil {
		return fmt.Errorf("draw image: %w", ir.err)
	}
	Logger().Warn("display: unknown image format")
	return ErrUnknownFormat
}

func (d *Display) drawBMP(ir *imageReader, x, y int, opt ImageOptions) error {
	var raw [imgfmt.BMPHeaderSize]byte
	ir.full(raw[:])
	if ir.err != nil {
		return ir.result()
	}
	h, err := imgfmt.ParseBMPHeader(raw[:])
	if err != nil {
		return err
	}
	if err := h.Validate(); err != nil {
		Logger().Warn("display: bmp", "err", err)
		return err
	}
	w, ht := h.Size()
	Logger().Debug("display: bmp", "width", w, "height", ht, "bpp", h.BitCount, "colors", h.PaletteSize())

	palette := make([]hal.Color, h.PaletteSize())
	var bgra [4]byte
	for i := range palette {
		ir.full(bgra[:])
		palette[i] = opt.entry(i, bgra[2], bgra[1], bgra[0])
	}
	for pos := uint32(imgfmt.BMPPaletteOffset + 4*len(palette)); pos < h.PixelOffset; pos++ {
		ir.byte()
	}

	d.SetViewportRelative(Viewport{X: x, Y: y, W: w, H: ht})
	if h.TopDown() {
		d.wrap = WrapDown
		d.GoTo(0, 0, DirRight)
	} else {
		d.wrap = WrapUp
		d.GoTo(0, ht-1, DirRight)
	}

	pad := h.RowPadding()
	var bgr [3]byte
	for row := 0; row < ht; row++ {
		for col := 0; col < w; col++ {
			if h.BitCount == 8 {
				d.sink.WritePixel(lookup(palette, int(ir.byte())))
				continue
			}
			ir.full(bgr[:])
			d.sink.WritePixel(opt.direct(bgr[2], bgr[1], bgr[0]))
		}
		for i := 0; i < pad; i++ {
			ir.byte()
		}
	}
	return ir.result()
}

func (d *Display) drawLCD(ir *imageReader, x, y int, opt ImageOptions) error {
	var raw [imgfmt.LCDHeaderSize]byte
	ir.full(raw[:])
	if ir.err != nil {
		return ir.result()
	}
	h, err := imgfmt.ParseLCDHeader(raw[:])
	if err != nil {
		return err
	}
	if err := h.Validate(); err != nil {
		Logger().Warn("display: lcd", "err", err)
		return err
	}
	Logger().Debug("display: lcd", "width", h.Width, "height", h.Height, "bpp", h.BPP, "colors", h.Colors)

	palette := make([]hal.Color, h.Colors)
	for i := range palette {
		r, g, b := ir.color().RGB()
		palette[i] = opt.entry(i, r, g, b)
	}

	w, ht := int(h.Width), int(h.Height)
	d.SetViewportRelative(Viewport{X: x, Y: y, W: w, H: ht})
	d.wrap = WrapDown
	d.GoTo(0, 0, DirRight)

	n := w * ht
	if h.BPP == 16 {
		for i := 0; i < n; i++ {
			c := ir.color()
			if opt.Color != nil {
				c = opt.direct(c.RGB())
			}
			d.sink.WritePixel(c)
		}
		return ir.result()
	}

	bpp := int(h.BPP)
	mask := byte(1<<bpp - 1)
	var acc byte
	var bits int
	for i := 0; i < n; i++ {
		if bits == 0 {
			acc = ir.byte()
			bits = 8
		}
		d.sink.WritePixel(lookup(palette, int(acc&mask)))
		acc >>= bpp
		bits -= bpp
	}
	return ir.result()
}

// entry resolves palette index i whose stored color is (r, g, b).
func (o ImageOptions) entry(i int, r, g, b uint8) hal.Color {
	if i < len(o.Palette) {
		return o.Palette[i]
	}
	return o.direct(r, g, b)
}

func (o ImageOptions) direct(r, g, b uint8) hal.Color {
	if o.Color != nil {
		r, g, b = o.Color(r, g, b)
	}
	return hal.RGB(r, g, b)
}

// lookup returns Black for indices the palette does not cover.
func lookup(palette []hal.Color, i int) hal.Color {
	if i < len(palette) {
		return palette[i]
	}
	return hal.Black
}

// imageReader keeps the first read error and yields zeros afterwards.
type imageReader struct {
	r   stream.Reader
	err error
}

func (ir *imageReader) byte() byte {
	if ir.err != nil {
		return 0
	}
	b, err := ir.r.ReadByte()
	if err != nil {
		ir.err = err
		return 0
	}
	return b
}

func (ir *imageReader) full(p []byte) {
	if ir.err != nil {
		clear(p)
		return
	}
	n, err := io.ReadFull(ir.r, p)
	if err != nil {
		ir.err = err
		clear(p[n:])
	}
}

func (ir *imageReader) color() hal.Color {
	var b [2]byte
	ir.full(b[:])
	return hal.Color(uint16(b[0]) | uint16(b[1])<<8)
}

func (ir *imageReader) result() error {
	if ir.err == nil {
		return nil
	}
	Logger().Warn("display: image stream", "err", ir.err)
	if errors.Is(ir.err, io.EOF) {
		return fmt.Errorf("draw image: %w", io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("draw image: %w", ir.err)
}
