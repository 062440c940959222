package imgfmt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"tftlcd/hal"
)

// EncodeLCD writes img in the LCD format.
//
// A bpp of 0 picks the smallest depth that holds every distinct color. Palette entries
// are assigned in first-seen order, scanning rows top to bottom. Indexed pixels are
// packed LSB first and rows are not aligned.
func EncodeLCD(w io.Writer, img image.Image, bpp int) error {
	b := img.Bounds()
	if b.Dx() > 0xFFFF || b.Dy() > 0xFFFF {
		return fmt.Errorf("lcd encode: image %dx%d too large", b.Dx(), b.Dy())
	}

	pixels := make([]hal.Color, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels = append(pixels, hal.ColorModel.Convert(img.At(x, y)).(hal.Color))
		}
	}

	var palette []hal.Color
	index := make(map[hal.Color]int)
	for _, p := range pixels {
		if _, ok := index[p]; !ok {
			index[p] = len(palette)
			palette = append(palette, p)
		}
	}

	if bpp == 0 {
		bpp = depthFor(len(palette))
	}
	h := LCDHeader{Width: uint16(b.Dx()), Height: uint16(b.Dy()), BPP: uint8(bpp)}
	if bpp < 16 {
		h.Colors = uint16(len(palette))
	}
	if err := h.Validate(); err != nil {
		return fmt.Errorf("lcd encode: %w", err)
	}

	bw := bufio.NewWriter(w)
	if err := WriteLCDHeader(bw, h); err != nil {
		return err
	}

	var u16 [2]byte
	if bpp == 16 {
		for _, p := range pixels {
			binary.LittleEndian.PutUint16(u16[:], uint16(p))
			bw.Write(u16[:])
		}
		return flush(bw)
	}

	for _, p := range palette {
		binary.LittleEndian.PutUint16(u16[:], uint16(p))
		bw.Write(u16[:])
	}
	var acc byte
	var bits int
	for _, p := range pixels {
		acc |= byte(index[p]) << bits
		bits += bpp
		if bits == 8 {
			bw.WriteByte(acc)
			acc, bits = 0, 0
		}
	}
	if bits > 0 {
		bw.WriteByte(acc)
	}
	return flush(bw)
}

func depthFor(colors int) int {
	switch {
	case colors <= 2:
		return 1
	case colors <= 4:
		return 2
	case colors <= 16:
		return 4
	case colors <= 256:
		return 8
	}
	return 16
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("lcd encode: %w", err)
	}
	return nil
}
