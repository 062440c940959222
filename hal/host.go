//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"tinygo.org/x/drivers/touch"
)

const (
	// PanelWidth and PanelHeight are the physical GRAM dimensions of the emulated panel.
	PanelWidth  = 240
	PanelHeight = 320

	// SliderWidth is the width of the sensing strip to the right of the panel.
	SliderWidth = 24
)

type hostHAL struct {
	logger *hostLogger
	gram   *GRAM
	touch  *hostTouch
	clock  *hostClock
	flash  *hostFlash
}

// New returns a host HAL implementation.
func New() HAL {
	return &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		gram:   NewGRAM(PanelWidth, PanelHeight),
		touch:  &hostTouch{},
		clock:  newHostClock(time.Now()),
		flash:  newHostFlash(),
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) LCD() LCD             { return h.gram }
func (h *hostHAL) Touch() touch.Pointer { return h.touch }
func (h *hostHAL) Flash() Flash         { return h.flash }
func (h *hostHAL) Clock() Clock         { return h.clock }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostTouch holds the latest raw sample; the window loop updates it once per tick.
type hostTouch struct {
	mu sync.Mutex
	p  touch.Point
}

func (t *hostTouch) ReadTouchPoint() touch.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.p
}

func (t *hostTouch) set(p touch.Point) {
	t.mu.Lock()
	t.p = p
	t.mu.Unlock()
}

// hostClock is a virtual timebase advanced by the runner, one tick at a time.
type hostClock struct {
	mu  sync.Mutex
	now time.Time
}

func newHostClock(start time.Time) *hostClock {
	return &hostClock{now: start}
}

func (c *hostClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *hostClock) step(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
