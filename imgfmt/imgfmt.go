// Package imgfmt holds the on-disk layouts of the two image formats the display engine
// streams: Windows "BM" bitmaps and the native "LCD" format.
//
// All multi-byte fields are little-endian.
package imgfmt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	MagicBMP = "BM"
	MagicLCD = "LCD"

	// BMPHeaderSize is the file header plus BITMAPINFOHEADER, without the magic.
	BMPHeaderSize = 52
	// BMPPaletteOffset is where the palette starts, counted from the first magic byte.
	BMPPaletteOffset = 2 + BMPHeaderSize

	// LCDHeaderSize is the header length without the magic.
	LCDHeaderSize = 7
)

var (
	ErrShortHeader      = errors.New("imgfmt: header too short")
	ErrUnsupportedDepth = errors.New("imgfmt: unsupported bit depth")
	ErrTooManyColors    = errors.New("imgfmt: too many colors for bit depth")
)

// BMPHeader is the 52 bytes that follow "BM".
type BMPHeader struct {
	FileSize        uint32
	Reserved        uint32
	PixelOffset     uint32
	HeaderSize      uint32
	Width           int32
	Height          int32 // negative for top-down rows
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPelsPerMeter   int32
	YPelsPerMeter   int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// ParseBMPHeader reads the header from the bytes following the magic.
func ParseBMPHeader(data []byte) (*BMPHeader, error) {
	if len(data) < BMPHeaderSize {
		return nil, ErrShortHeader
	}
	le := binary.LittleEndian
	return &BMPHeader{
		FileSize:        le.Uint32(data[0:4]),
		Reserved:        le.Uint32(data[4:8]),
		PixelOffset:     le.Uint32(data[8:12]),
		HeaderSize:      le.Uint32(data[12:16]),
		Width:           int32(le.Uint32(data[16:20])),
		Height:          int32(le.Uint32(data[20:24])),
		Planes:          le.Uint16(data[24:26]),
		BitCount:        le.Uint16(data[26:28]),
		Compression:     le.Uint32(data[28:32]),
		ImageSize:       le.Uint32(data[32:36]),
		XPelsPerMeter:   int32(le.Uint32(data[36:40])),
		YPelsPerMeter:   int32(le.Uint32(data[40:44])),
		ColorsUsed:      le.Uint32(data[44:48]),
		ColorsImportant: le.Uint32(data[48:52]),
	}, nil
}

// Validate reports depths the decoder cannot draw.
func (h *BMPHeader) Validate() error {
	switch h.BitCount {
	case 8, 24:
	default:
		return fmt.Errorf("%w: bmp %d bpp", ErrUnsupportedDepth, h.BitCount)
	}
	if h.Compression != 0 {
		return fmt.Errorf("%w: bmp compression %d", ErrUnsupportedDepth, h.Compression)
	}
	if h.ColorsUsed > 256 {
		return fmt.Errorf("%w: bmp palette of %d", ErrTooManyColors, h.ColorsUsed)
	}
	return nil
}

// PaletteSize is the number of 4-byte palette entries that follow the header.
func (h *BMPHeader) PaletteSize() int {
	if h.ColorsUsed != 0 {
		return int(h.ColorsUsed)
	}
	if h.BitCount <= 8 {
		return 1 << h.BitCount
	}
	return 0
}

// TopDown reports whether rows are stored first row first.
func (h *BMPHeader) TopDown() bool { return h.Height < 0 }

// Size returns the absolute pixel dimensions.
func (h *BMPHeader) Size() (w, ht int) {
	w, ht = int(h.Width), int(h.Height)
	if w < 0 {
		w = -w
	}
	if ht < 0 {
		ht = -ht
	}
	return w, ht
}

// RowPadding is the number of filler bytes after each row.
func (h *BMPHeader) RowPadding() int {
	w, _ := h.Size()
	return (4 - (int(h.BitCount)*w/8)&3) & 3
}

// LCDHeader is the 7 bytes that follow "LCD".
type LCDHeader struct {
	Width  uint16
	Height uint16
	BPP    uint8
	Colors uint16
}

// ParseLCDHeader reads the header from the bytes following the magic.
func ParseLCDHeader(data []byte) (*LCDHeader, error) {
	if len(data) < LCDHeaderSize {
		return nil, ErrShortHeader
	}
	le := binary.LittleEndian
	return &LCDHeader{
		Width:  le.Uint16(data[0:2]),
		Height: le.Uint16(data[2:4]),
		BPP:    data[4],
		Colors: le.Uint16(data[5:7]),
	}, nil
}

// Validate checks the depth and palette size.
func (h *LCDHeader) Validate() error {
	switch h.BPP {
	case 1, 2, 4, 8:
		if int(h.Colors) > 1<<h.BPP {
			return fmt.Errorf("%w: %d colors at %d bpp", ErrTooManyColors, h.Colors, h.BPP)
		}
	case 16:
	default:
		return fmt.Errorf("%w: lcd %d bpp", ErrUnsupportedDepth, h.BPP)
	}
	return nil
}

// PixelBytes is the size of the packed pixel data.
func (h *LCDHeader) PixelBytes() int {
	return (int(h.Width)*int(h.Height)*int(h.BPP) + 7) / 8
}

// WriteLCDHeader writes the magic followed by the header.
func WriteLCDHeader(w io.Writer, h LCDHeader) error {
	if err := h.Validate(); err != nil {
		return fmt.Errorf("lcd write header: %w", err)
	}
	var b [len(MagicLCD) + LCDHeaderSize]byte
	copy(b[:], MagicLCD)
	le := binary.LittleEndian
	le.PutUint16(b[3:5], h.Width)
	le.PutUint16(b[5:7], h.Height)
	b[7] = h.BPP
	le.PutUint16(b[8:10], h.Colors)
	if _, err := w.Write(b[:]); err != nil {
		return fmt.Errorf("lcd write header: %w", err)
	}
	return nil
}
