// Package stream provides the byte sources images are decoded from.
package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"tftlcd/hal"
)

// Reader is a sequential byte source. Both block and single-byte reads are used by the
// decoder, so every backend buffers.
type Reader interface {
	io.Reader
	io.ByteReader
}

// Memory streams an in-memory asset.
func Memory(b []byte) Reader {
	return bytes.NewReader(b)
}

// File is a buffered file stream that must be closed.
type File struct {
	*bufio.Reader
	f *os.File
}

// Open opens path for streaming.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	return &File{Reader: bufio.NewReader(f), f: f}, nil
}

func (f *File) Close() error {
	return f.f.Close()
}

// Flash streams size bytes of fl starting at off. A zero size reads to the end of the
// flash.
func Flash(fl hal.Flash, off, size uint32) Reader {
	total := fl.SizeBytes()
	if off > total {
		off = total
	}
	if size == 0 || size > total-off {
		size = total - off
	}
	return bufio.NewReader(io.NewSectionReader(flashReaderAt{fl}, int64(off), int64(size)))
}

type flashReaderAt struct {
	fl hal.Flash
}

func (r flashReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(^uint32(0)) {
		return 0, fmt.Errorf("flash offset %d: %w", off, os.ErrInvalid)
	}
	n, err := r.fl.ReadAt(p, uint32(off))
	if err == nil && n < len(p) {
		err = io.EOF
	}
	return n, err
}
