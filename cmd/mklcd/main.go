package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"tftlcd/imgfmt"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

func main() {
	var (
		inPath  = flag.String("in", "", "Input image (.png, .jpg or .bmp).")
		outPath = flag.String("out", "", "Output file.")
		format  = flag.String("format", "lcd", "lcd|bmp.")
		bpp     = flag.Int("bpp", 0, "LCD bits per pixel: 1, 2, 4, 8, 16 or 0 for the smallest that fits.")
		width   = flag.Int("w", 0, "Scale to this width (0 keeps the source width, or follows -h).")
		height  = flag.Int("h", 0, "Scale to this height (0 keeps the source height, or follows -w).")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fatalf("usage: mklcd -in in.png -out out.lcd [-format lcd|bmp] [-bpp 0|1|2|4|8|16] [-w W] [-h H]")
	}

	if err := convert(*inPath, *outPath, *format, *bpp, *width, *height); err != nil {
		fatalf("mklcd: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func convert(inPath, outPath, format string, bpp, w, h int) error {
	src, err := loadImage(inPath)
	if err != nil {
		return err
	}
	img := scale(src, w, h)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriterSize(out, 64*1024)

	switch strings.ToLower(format) {
	case "lcd":
		err = imgfmt.EncodeLCD(bw, img, bpp)
	case "bmp":
		// The encoder writes 24-bit output only for opaque RGBA sources.
		err = bmp.Encode(bw, opaque(img))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return out.Close()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, kind, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if img.Bounds().Dx() > 0xFFFF || img.Bounds().Dy() > 0xFFFF {
		return nil, fmt.Errorf("%s image too large: %v", kind, img.Bounds().Size())
	}
	return img, nil
}

// scale resizes src to w x h. A zero dimension keeps the aspect ratio of the other one;
// both zero returns src unchanged.
func scale(src image.Image, w, h int) image.Image {
	sb := src.Bounds()
	switch {
	case w <= 0 && h <= 0:
		return src
	case w <= 0:
		w = max(1, sb.Dx()*h/sb.Dy())
	case h <= 0:
		h = max(1, sb.Dy()*w/sb.Dx())
	}
	if w == sb.Dx() && h == sb.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	return dst
}

// opaque copies img into an RGBA with every alpha forced to 0xFF.
func opaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xFF
	}
	return dst
}
