package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"tftlcd/imgfmt"

	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 0xFF, A: 0xFF}
			if (x+y)%2 == 1 {
				c = color.RGBA{B: 0xFF, A: 0xFF}
			}
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "in.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestConvertLCD(t *testing.T) {
	in := writePNG(t, 4, 3)
	out := filepath.Join(t.TempDir(), "out.lcd")
	if err := convert(in, out, "lcd", 0, 0, 0); err != nil {
		t.Fatalf("convert: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:3]) != imgfmt.MagicLCD {
		t.Fatalf("magic = %q", data[:3])
	}
	h, err := imgfmt.ParseLCDHeader(data[3 : 3+imgfmt.LCDHeaderSize])
	if err != nil {
		t.Fatal(err)
	}
	if h.Width != 4 || h.Height != 3 || h.BPP != 1 || h.Colors != 2 {
		t.Fatalf("header = %+v", h)
	}
	if want := 3 + imgfmt.LCDHeaderSize + 2*2 + h.PixelBytes(); len(data) != want {
		t.Fatalf("len = %d, want %d", len(data), want)
	}
}

func TestConvertBMPScaled(t *testing.T) {
	in := writePNG(t, 8, 4)
	out := filepath.Join(t.TempDir(), "out.bmp")
	if err := convert(in, out, "bmp", 0, 4, 0); err != nil {
		t.Fatalf("convert: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("bmp.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestConvertErrors(t *testing.T) {
	in := writePNG(t, 2, 2)
	dir := t.TempDir()
	if err := convert(in, filepath.Join(dir, "x"), "gif", 0, 0, 0); err == nil {
		t.Fatal("expected unknown format error")
	}
	if err := convert(filepath.Join(dir, "missing.png"), filepath.Join(dir, "y"), "lcd", 0, 0, 0); err == nil {
		t.Fatal("expected open error")
	}
	if err := convert(in, filepath.Join(dir, "z"), "lcd", 3, 0, 0); err == nil {
		t.Fatal("expected depth error")
	}
}

func TestScaleKeepsAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 20))
	if b := scale(src, 0, 10).Bounds(); b.Dx() != 5 || b.Dy() != 10 {
		t.Fatalf("bounds = %v", b)
	}
	if scale(src, 0, 0) != image.Image(src) {
		t.Fatal("zero size should keep the source")
	}
}
