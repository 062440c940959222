//go:build !tinygo

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"tftlcd/imgfmt"
)

const (
	defaultFlashPath = "tft.flash"
	defaultFlashSize = 1024 * 1024
	defaultEraseSize = 4096
)

type flashFile struct {
	f         *os.File
	size      uint32
	eraseSize uint32

	scratch []byte
}

func openFlashFile(path string, size uint32, eraseSize uint32) (*flashFile, error) {
	if eraseSize == 0 || eraseSize%256 != 0 {
		return nil, fmt.Errorf("flash: invalid erase size %d", eraseSize)
	}
	if size == 0 || size%eraseSize != 0 {
		return nil, fmt.Errorf("flash: size %d not multiple of erase size %d", size, eraseSize)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash file %q: %w", path, err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("truncate flash file %q to %d: %w", path, size, err)
	}

	ff := &flashFile{
		f:         f,
		size:      size,
		eraseSize: eraseSize,
		scratch:   bytes.Repeat([]byte{0xFF}, int(eraseSize)),
	}
	if err := ff.Erase(0, size); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("erase flash file %q: %w", path, err)
	}
	return ff, nil
}

func (f *flashFile) Close() error { return f.f.Close() }

func (f *flashFile) SizeBytes() uint32 { return f.size }

func (f *flashFile) ReadAt(p []byte, off uint32) (int, error) {
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	if maxN := int(f.size - off); len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, int64(off))
}

// WriteAt programs p at off. Like NOR flash, bits can only be cleared, so writing over
// programmed bytes fails unless the block was erased first.
func (f *flashFile) WriteAt(p []byte, off uint32) (int, error) {
	if off >= f.size || len(p) > int(f.size-off) {
		return 0, fmt.Errorf("flash write %d bytes at %d: %w", len(p), off, os.ErrInvalid)
	}

	prev := make([]byte, len(p))
	if _, err := f.f.ReadAt(prev, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if prev[i]&p[i] != p[i] {
			return 0, errors.New("flash write requires erase")
		}
	}
	return f.f.WriteAt(p, int64(off))
}

func (f *flashFile) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	if off%f.eraseSize != 0 || size%f.eraseSize != 0 {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	if off >= f.size || off+size > f.size {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, size, os.ErrInvalid)
	}
	for size > 0 {
		if _, err := f.f.WriteAt(f.scratch, int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
		off += f.eraseSize
		size -= f.eraseSize
	}
	return nil
}

func main() {
	var imgPath string
	var outPath string
	var flashSize uint
	var eraseSize uint
	var offset uint
	flag.StringVar(&imgPath, "img", "", "LCD or BMP image to store.")
	flag.StringVar(&outPath, "out", defaultFlashPath, "Output flash image path.")
	flag.UintVar(&flashSize, "size", defaultFlashSize, "Flash image size (bytes).")
	flag.UintVar(&eraseSize, "erase", defaultEraseSize, "Erase block size (bytes).")
	flag.UintVar(&offset, "off", 0, "Offset of the image inside the flash.")
	flag.Parse()

	if imgPath == "" {
		fmt.Fprintln(os.Stderr, "error: -img is required")
		os.Exit(2)
	}
	if outPath == "" {
		fmt.Fprintln(os.Stderr, "error: -out is required")
		os.Exit(2)
	}

	if err := run(imgPath, outPath, uint32(flashSize), uint32(eraseSize), uint32(offset)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(imgPath string, outPath string, flashSize uint32, eraseSize uint32, off uint32) error {
	data, err := os.ReadFile(imgPath)
	if err != nil {
		return fmt.Errorf("read image %q: %w", imgPath, err)
	}
	if err := checkImage(data); err != nil {
		return fmt.Errorf("image %q: %w", imgPath, err)
	}

	ff, err := openFlashFile(outPath, flashSize, eraseSize)
	if err != nil {
		return err
	}
	defer func() { _ = ff.Close() }()

	if _, err := ff.WriteAt(data, off); err != nil {
		return err
	}

	back := make([]byte, len(data))
	if _, err := ff.ReadAt(back, off); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("verify: %w", err)
	}
	if !bytes.Equal(back, data) {
		return errors.New("verify: flash contents differ")
	}
	return ff.Close()
}

// checkImage accepts the formats the display decoder draws.
func checkImage(data []byte) error {
	switch {
	case bytes.HasPrefix(data, []byte(imgfmt.MagicLCD)):
		h, err := imgfmt.ParseLCDHeader(data[len(imgfmt.MagicLCD):])
		if err != nil {
			return err
		}
		return h.Validate()
	case bytes.HasPrefix(data, []byte(imgfmt.MagicBMP)):
		h, err := imgfmt.ParseBMPHeader(data[len(imgfmt.MagicBMP):])
		if err != nil {
			return err
		}
		return h.Validate()
	}
	return errors.New("not an LCD or BMP image")
}
