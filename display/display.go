// Package display draws onto a TFT panel through a controller pixel stream and turns raw
// resistive touch samples into debounced, edge-triggered input.
//
// All drawing coordinates are logical: relative to the active viewport, in the current
// rotation. The engine never clips; out-of-range coordinates are passed through to the
// sink.
package display

import (
	"time"

	"tftlcd/fonts/font5x7"
	"tftlcd/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/touch"
)

const (
	DefaultWidth             = 240
	DefaultHeight            = 320
	DefaultPressureThreshold = 3000
	DefaultPressDelay        = 30 * time.Millisecond
)

// Direction is a logical write direction.
type Direction uint8

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp

	// DirAny is used for single pixels: the sink advances left to right regardless of
	// rotation.
	DirAny Direction = 0xFF
)

// WrapMode selects where the write cursor goes when it leaves the viewport on its
// primary axis: one step clockwise (WrapDown) or counter-clockwise (WrapUp) of the
// write direction.
type WrapMode uint8

const (
	WrapDown WrapMode = 0
	WrapUp   WrapMode = 4
)

// Viewport is the active drawing rectangle in logical screen coordinates.
type Viewport struct {
	X, Y, W, H int
}

// GlyphTable supplies five column bytes per character, bit 0 at the top.
type GlyphTable interface {
	Glyph(c byte) [5]byte
}

// Config configures a Display. Zero fields take defaults.
type Config struct {
	// Physical panel size. Defaults to the sink's size when it reports one, otherwise
	// 240x320.
	Width, Height int

	// Raw Z at or above which a sample counts as pressed.
	PressureThreshold int
	// How long the raw pressed state must differ from the accepted one before it flips.
	PressDelay time.Duration
	// Smooth maps the distance between a new sample and the current point to the step
	// taken towards it. Defaults to d/2.
	Smooth func(d int) int

	Now    func() time.Time
	Touch  touch.Pointer
	Glyphs GlyphTable
}

// Display owns all drawing, viewport, text and touch state for one panel.
type Display struct {
	sink   hal.Sink
	width  int
	height int

	rot  drivers.Rotation
	vp   Viewport
	wrap WrapMode

	text   TextOptions
	glyphs GlyphTable

	cfg Config
	in  touchState
}

// New returns a display at rotation 0 with a full-screen viewport.
func New(sink hal.Sink, cfg Config) *Display {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = DefaultWidth, DefaultHeight
		if s, ok := sink.(interface {
			Width() int
			Height() int
		}); ok {
			cfg.Width, cfg.Height = s.Width(), s.Height()
		}
	}
	if cfg.PressureThreshold <= 0 {
		cfg.PressureThreshold = DefaultPressureThreshold
	}
	if cfg.PressDelay <= 0 {
		cfg.PressDelay = DefaultPressDelay
	}
	if cfg.Smooth == nil {
		cfg.Smooth = func(d int) int { return d / 2 }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Glyphs == nil {
		cfg.Glyphs = font5x7.Table
	}

	d := &Display{
		sink:   sink,
		width:  cfg.Width,
		height: cfg.Height,
		glyphs: cfg.Glyphs,
		cfg:    cfg,
		text:   TextOptions{Size: 1, Color: hal.White, Background: hal.Black},
	}
	d.in.stable = cfg.Now()
	d.ResetViewport()
	return d
}

// Sink returns the pixel sink the display writes to.
func (d *Display) Sink() hal.Sink { return d.sink }

// SetRotation switches the logical orientation and resets the viewport to the full
// screen. Mirrored rotations are treated as their plain counterparts.
func (d *Display) SetRotation(r drivers.Rotation) error {
	d.rot = r & 3
	d.ResetViewport()
	Logger().Debug("display: rotation", "rotation", int(d.rot), "width", d.ScreenWidth(), "height", d.ScreenHeight())
	return nil
}

func (d *Display) Rotation() drivers.Rotation { return d.rot }

// ScreenWidth is the logical screen width in the current rotation.
func (d *Display) ScreenWidth() int {
	if d.rot&1 != 0 {
		return d.height
	}
	return d.width
}

// ScreenHeight is the logical screen height in the current rotation.
func (d *Display) ScreenHeight() int {
	if d.rot&1 != 0 {
		return d.width
	}
	return d.height
}

func (d *Display) IsWidescreen() bool { return d.ScreenWidth() > d.ScreenHeight() }

// SetViewport makes v the drawing area and programs the matching sink window.
func (d *Display) SetViewport(v Viewport) {
	d.vp = v
	x1, y1 := d.toPhysical(v.X, v.Y)
	x2, y2 := d.toPhysical(v.X+v.W-1, v.Y+v.H-1)
	d.sink.SetWindow(x1, y1, x2, y2)
}

// SetViewportRelative sets a viewport whose origin is relative to the current one.
func (d *Display) SetViewportRelative(v Viewport) {
	v.X += d.vp.X
	v.Y += d.vp.Y
	d.SetViewport(v)
}

func (d *Display) ResetViewport() {
	d.SetViewport(Viewport{W: d.ScreenWidth(), H: d.ScreenHeight()})
}

func (d *Display) Viewport() Viewport { return d.vp }
func (d *Display) ViewportArea() int  { return d.vp.W * d.vp.H }

// Width and Height report the viewport size.
func (d *Display) Width() int  { return d.vp.W }
func (d *Display) Height() int { return d.vp.H }

func (d *Display) SetWrapMode(m WrapMode) { d.wrap = m & WrapUp }
func (d *Display) WrapMode() WrapMode     { return d.wrap }

// GoTo places the sink cursor at viewport-relative (x, y), writing in dir.
func (d *Display) GoTo(x, y int, dir Direction) {
	px, py := d.toPhysical(x+d.vp.X, y+d.vp.Y)
	d.sink.SetCursor(px, py, d.physicalDirection(dir))
}

// Present flushes the sink when it supports it.
func (d *Display) Present() error {
	if p, ok := d.sink.(interface{ Present() error }); ok {
		return p.Present()
	}
	return nil
}
