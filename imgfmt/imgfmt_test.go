package imgfmt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"tftlcd/hal"
)

func TestParseBMPHeader(t *testing.T) {
	data := make([]byte, BMPHeaderSize)
	le := binary.LittleEndian
	le.PutUint32(data[8:12], 54+16)
	le.PutUint32(data[12:16], 40)
	le.PutUint32(data[16:20], 3)
	le.PutUint32(data[20:24], uint32(0xFFFFFFFE)) // -2
	le.PutUint16(data[24:26], 1)
	le.PutUint16(data[26:28], 8)
	le.PutUint32(data[44:48], 4)

	h, err := ParseBMPHeader(data)
	if err != nil {
		t.Fatalf("ParseBMPHeader: %v", err)
	}
	if !h.TopDown() {
		t.Fatal("expected top-down rows")
	}
	if w, ht := h.Size(); w != 3 || ht != 2 {
		t.Fatalf("size = %dx%d", w, ht)
	}
	if h.PaletteSize() != 4 {
		t.Fatalf("palette = %d", h.PaletteSize())
	}
	if h.RowPadding() != 1 {
		t.Fatalf("padding = %d", h.RowPadding())
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	h.ColorsUsed = 0
	if h.PaletteSize() != 256 {
		t.Fatalf("default palette = %d", h.PaletteSize())
	}
	h.BitCount = 24
	if h.PaletteSize() != 0 || h.RowPadding() != 3 {
		t.Fatalf("24bpp palette=%d padding=%d", h.PaletteSize(), h.RowPadding())
	}
	h.BitCount = 32
	if err := h.Validate(); !errors.Is(err, ErrUnsupportedDepth) {
		t.Fatalf("32bpp err = %v", err)
	}

	if _, err := ParseBMPHeader(data[:10]); !errors.Is(err, ErrShortHeader) {
		t.Fatalf("short err = %v", err)
	}
}

func TestLCDHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := LCDHeader{Width: 300, Height: 2, BPP: 4, Colors: 9}
	if err := WriteLCDHeader(&buf, want); err != nil {
		t.Fatalf("WriteLCDHeader: %v", err)
	}
	raw := buf.Bytes()
	if string(raw[:3]) != MagicLCD || len(raw) != 3+LCDHeaderSize {
		t.Fatalf("raw = % x", raw)
	}
	got, err := ParseLCDHeader(raw[3:])
	if err != nil {
		t.Fatalf("ParseLCDHeader: %v", err)
	}
	if *got != want {
		t.Fatalf("got %+v, want %+v", *got, want)
	}
	if got.PixelBytes() != 300 {
		t.Fatalf("pixel bytes = %d", got.PixelBytes())
	}

	bad := LCDHeader{Width: 1, Height: 1, BPP: 3}
	if err := WriteLCDHeader(&buf, bad); !errors.Is(err, ErrUnsupportedDepth) {
		t.Fatalf("3bpp err = %v", err)
	}
}

func TestEncodeLCDIndexed(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	if err := EncodeLCD(&buf, img, 0); err != nil {
		t.Fatalf("EncodeLCD: %v", err)
	}
	want := []byte{
		'L', 'C', 'D', 2, 0, 2, 0, 2, 3, 0,
		0x00, 0xF8, 0xE0, 0x07, 0x1F, 0x00,
		0b00_10_01_00,
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("got  % x\nwant % x", buf.Bytes(), want)
	}
}

func TestEncodeLCDDirect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)

	var buf bytes.Buffer
	if err := EncodeLCD(&buf, img, 16); err != nil {
		t.Fatalf("EncodeLCD: %v", err)
	}
	raw := buf.Bytes()
	if len(raw) != 3+LCDHeaderSize+2 || raw[7] != 16 {
		t.Fatalf("raw = % x", raw)
	}
	if hal.Color(binary.LittleEndian.Uint16(raw[10:])) != hal.White {
		t.Fatalf("pixel = % x", raw[10:])
	}

	if err := EncodeLCD(&buf, image.NewRGBA(image.Rect(0, 0, 3, 1)), 1); err != nil {
		t.Fatalf("single color at 1bpp: %v", err)
	}
}

func TestEncodeLCDTooManyColors(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.RGBA{R: 255, A: 255})
	if err := EncodeLCD(&bytes.Buffer{}, img, 1); !errors.Is(err, ErrTooManyColors) {
		t.Fatalf("err = %v", err)
	}
}
