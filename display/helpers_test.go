package display

import (
	"fmt"
	"time"

	"tftlcd/hal"

	"tinygo.org/x/drivers/touch"
)

type op struct {
	kind   string
	x, y   int
	x2, y2 int
	n      int
	dir    hal.Direction
	c      hal.Color
}

func (o op) String() string {
	switch o.kind {
	case "cursor":
		return fmt.Sprintf("cursor(%d,%d,%d)", o.x, o.y, o.dir)
	case "window":
		return fmt.Sprintf("window(%d,%d,%d,%d)", o.x, o.y, o.x2, o.y2)
	case "run":
		return fmt.Sprintf("run(%#04x,%d)", o.c, o.n)
	}
	return fmt.Sprintf("pixel(%#04x)", o.c)
}

// recSink records every sink call.
type recSink struct {
	ops []op
}

func (s *recSink) SetCursor(x, y int, dir hal.Direction) {
	s.ops = append(s.ops, op{kind: "cursor", x: x, y: y, dir: dir})
}

func (s *recSink) WritePixel(c hal.Color) {
	s.ops = append(s.ops, op{kind: "pixel", c: c})
}

func (s *recSink) WritePixelRun(c hal.Color, n int) {
	s.ops = append(s.ops, op{kind: "run", c: c, n: n})
}

func (s *recSink) SetWindow(x1, y1, x2, y2 int) {
	s.ops = append(s.ops, op{kind: "window", x: x1, y: y1, x2: x2, y2: y2})
}

func (s *recSink) reset() { s.ops = nil }

func (s *recSink) count(kind string) int {
	n := 0
	for _, o := range s.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (s *recSink) runs() []op {
	var out []op
	for _, o := range s.ops {
		if o.kind == "run" {
			out = append(out, o)
		}
	}
	return out
}

func newGRAMDisplay() (*Display, *hal.GRAM) {
	g := hal.NewGRAM(DefaultWidth, DefaultHeight)
	return New(g, Config{}), g
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type scriptPointer struct {
	p touch.Point
}

func (s *scriptPointer) ReadTouchPoint() touch.Point { return s.p }
