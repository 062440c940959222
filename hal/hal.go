package hal

import (
	"errors"
	"time"

	"tinygo.org/x/drivers/touch"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Direction is a physical write direction: the axis the controller advances on after
// each pixel, combined with the axis it wraps to at the window edge.
type Direction uint8

const (
	DirRightWrapDown Direction = iota
	DirDownWrapDown
	DirLeftWrapDown
	DirUpWrapDown
	DirRightWrapUp
	DirDownWrapUp
	DirLeftWrapUp
	DirUpWrapUp

	// DirRight is the plain left-to-right scan used for single pixel writes.
	DirRight = DirRightWrapDown
)

// Sink is the pixel-stream side of an LCD controller.
//
// All coordinates are physical GRAM coordinates. Implementations decide what happens to
// writes outside the panel; the engine never clips.
type Sink interface {
	SetCursor(x, y int, dir Direction)
	WritePixel(c Color)
	WritePixelRun(c Color, n int)
	SetWindow(x1, y1, x2, y2 int)
}

// LCD is a pixel sink with a fixed physical size and a "present" hook.
type LCD interface {
	Sink
	Width() int
	Height() int
	Present() error
}

// Flash provides read access to non-volatile asset storage.
type Flash interface {
	SizeBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
}

// Clock is the millisecond-resolution timebase used for touch debouncing.
type Clock interface {
	Now() time.Time
}

// HAL provides the only contact point between the engine and the outside world.
type HAL interface {
	Logger() Logger
	LCD() LCD
	Touch() touch.Pointer
	Flash() Flash
	Clock() Clock
}
