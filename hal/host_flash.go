//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

const hostFlashDefaultPath = "tft.flash"

// hostFlash exposes a file as read-only asset storage. A missing file leaves the flash
// empty: SizeBytes reports 0 and reads fail with ErrNotImplemented.
type hostFlash struct {
	mu   sync.Mutex
	f    *os.File
	size uint32
}

func newHostFlash() *hostFlash {
	path := os.Getenv("TFT_FLASH_PATH")
	if path == "" {
		path = hostFlashDefaultPath
	}
	return openHostFlash(path)
}

func openHostFlash(path string) *hostFlash {
	f, err := os.Open(path)
	if err != nil {
		return &hostFlash{}
	}
	st, err := f.Stat()
	if err != nil || st.Size() > int64(^uint32(0)) {
		_ = f.Close()
		return &hostFlash{}
	}
	return &hostFlash{f: f, size: uint32(st.Size())}
}

func (f *hostFlash) SizeBytes() uint32 { return f.size }

func (f *hostFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f == nil {
		return 0, ErrNotImplemented
	}
	if off >= f.size {
		return 0, fmt.Errorf("flash read at %d: %w", off, os.ErrInvalid)
	}
	maxN := int(f.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}
	return f.f.ReadAt(p, int64(off))
}
