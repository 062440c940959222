package app

import (
	"bytes"
	"image"
	"log/slog"
	"math"

	"tftlcd/display"
	"tftlcd/hal"
	"tftlcd/imgfmt"
	"tftlcd/internal/buildinfo"
	"tftlcd/stream"

	periph "periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"
)

// Config selects the demo's start-up state.
type Config struct {
	Rotation drivers.Rotation
	// Image is an LCD or BMP file shown in the image pane. Empty uses the flash image
	// when the flash holds one, otherwise a built-in pattern.
	Image string
	// Mirror, when set, receives every presented frame.
	Mirror   periph.Drawer
	LogLevel slog.Level
}

const (
	headerHeight = 28
	imageSize    = 48
	paintColor   = hal.Yellow
)

type button struct {
	label      string
	x, y, w, h int
	action     func()
}

type demo struct {
	h   hal.HAL
	d   *display.Display
	cfg Config
	log *slog.Logger

	asset      []byte
	brightness float64
	buttons    []button
	canvas     image.Rectangle
	imageAt    image.Point
	lastSecond int64
}

// New starts the demo with the default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig draws the first frame and returns the per-tick step function.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	a := newDemo(h, cfg)
	return withPanicScreen(h, a.d, a.step)
}

func newDemo(h hal.HAL, cfg Config) *demo {
	log := slog.New(hal.NewLogHandler(h.Logger(), cfg.LogLevel))
	display.SetLogger(log)

	var sink hal.Sink = h.LCD()
	if g, ok := sink.(*hal.GRAM); ok && cfg.Mirror != nil {
		sink = hal.NewPanelMirror(g, cfg.Mirror)
	}
	dc := display.Config{Touch: h.Touch()}
	if c := h.Clock(); c != nil {
		dc.Now = c.Now
	}

	a := &demo{
		h:          h,
		d:          display.New(sink, dc),
		cfg:        cfg,
		log:        log,
		brightness: 0.5,
	}
	log.Info("app: start", "build", buildinfo.String(), "rotation", int(cfg.Rotation&3))
	a.asset = builtinAsset(log)
	_ = a.d.SetRotation(cfg.Rotation)
	a.relayout()
	return a
}

func (a *demo) step() error {
	a.d.Update()

	for i := range a.buttons {
		a.updateButton(&a.buttons[i])
	}
	a.paint()
	a.updateSlider()
	a.updateStatus()

	return a.d.Present()
}

// relayout recomputes every pane for the current rotation and redraws the screen.
func (a *demo) relayout() {
	d := a.d
	d.ResetViewport()
	w, h := d.Width(), d.Height()

	a.buttons = []button{
		{label: "ROT", x: 4, y: 4, w: 48, h: 20, action: a.rotate},
		{label: "CLR", x: 56, y: 4, w: 48, h: 20, action: a.clearCanvas},
	}
	a.imageAt = image.Pt(4, h-imageSize-4)
	a.canvas = image.Rect(0, headerHeight, w, a.imageAt.Y-4)

	d.Fill(hal.Black)
	for i := range a.buttons {
		a.drawButton(&a.buttons[i], false)
	}
	a.clearCanvas()
	a.drawSliderBar()
	a.drawImage()
	a.lastSecond = -1
}

func (a *demo) rotate() {
	r := (a.d.Rotation() + 1) & 3
	_ = a.d.SetRotation(r)
	a.d.ResetTouch()
	a.relayout()
	a.log.Info("app: rotated", "rotation", int(r), "widescreen", a.d.IsWidescreen())
}

func (a *demo) clearCanvas() {
	c := a.canvas
	a.d.FillBorderRect(c.Min.X, c.Min.Y, c.Dx(), c.Dy(), hal.Black, hal.Gray)
}

func (a *demo) drawButton(b *button, hot bool) {
	fill, text := hal.Blue, hal.White
	if hot {
		fill, text = hal.Cyan, hal.Black
	}
	a.d.FillBorderRoundRect(b.x, b.y, b.w, b.h, 4, fill, hal.White)
	opt := a.d.TextOptions()
	a.d.SetTextColor(text)
	a.d.DrawStringMiddle(b.x, b.y, b.w, b.h, b.label)
	a.d.SetTextOptions(opt)
}

func (a *demo) updateButton(b *button) {
	switch {
	case a.d.IsTouchEnter(b.x, b.y, b.w, b.h):
		a.drawButton(b, true)
	case a.d.IsTouchLeave(b.x, b.y, b.w, b.h):
		a.drawButton(b, false)
	}
	if a.d.IsTouchClicked(b.x, b.y, b.w, b.h) {
		a.log.Debug("app: click", "button", b.label)
		b.action()
	}
}

func (a *demo) paint() {
	c := a.canvas.Inset(3)
	if !a.d.IsTouchedIn(c.Min.X, c.Min.Y, c.Dx(), c.Dy()) {
		return
	}
	p, last := a.d.Touch(), a.d.TouchLast()
	if last.PressedIn(c.Min.X, c.Min.Y, c.Dx(), c.Dy()) {
		a.d.DrawLine(last.X, last.Y, p.X, p.Y, paintColor)
		return
	}
	a.d.FillCircle(p.X, p.Y, 2, paintColor)
}

func (a *demo) updateSlider() {
	if a.d.IsSliderTouchUp() {
		a.log.Debug("app: slider", "from", a.d.SliderStart(), "to", a.d.Slider())
	}
	if !a.d.IsSliderTouched() || math.Abs(a.d.Slider()-a.brightness) < 0.02 {
		return
	}
	a.brightness = a.d.Slider()
	a.drawSliderBar()
	a.drawImage()
}

// drawSliderBar shows the brightness as a vertical bar to the right of the image.
func (a *demo) drawSliderBar() {
	x, y := a.imageAt.X+imageSize+8, a.imageAt.Y
	a.d.DrawRect(x, y, 10, imageSize, hal.White)
	fill := int(a.brightness * float64(imageSize-2))
	a.d.FillRect(x+1, y+1, 8, imageSize-2-fill, hal.Black)
	a.d.FillRect(x+1, y+1+imageSize-2-fill, 8, fill, hal.Green)
	a.d.DebugPrintFloat(x+16, y, 1, a.brightness)
}

func (a *demo) updateStatus() {
	w := a.d.Width()
	if p := a.d.Touch(); p.Pressed() {
		a.d.DebugPrintInt(w-40, 4, 1, p.X)
		a.d.DebugPrintInt(w-40, 14, 1, p.Y)
	}

	c := a.h.Clock()
	if c == nil {
		return
	}
	now := c.Now()
	if now.Unix() == a.lastSecond {
		return
	}
	a.lastSecond = now.Unix()
	opt := a.d.TextOptions()
	a.d.SetTextColorBG(hal.White, hal.Black)
	a.d.SetCursor(112, 4)
	a.d.PrintTime(now)
	a.d.SetCursor(112, 14)
	a.d.PrintDate(now)
	a.d.SetTextOptions(opt)
}

func (a *demo) drawImage() {
	r, closeFn, err := a.openImage()
	if err != nil {
		a.log.Warn("app: open image", "err", err)
		return
	}
	defer closeFn()
	opt := display.ImageOptions{Color: display.Brightness(2 * a.brightness)}
	if err := a.d.DrawImage(r, a.imageAt.X, a.imageAt.Y, opt); err != nil {
		a.log.Warn("app: draw image", "err", err)
	}
}

func (a *demo) openImage() (stream.Reader, func() error, error) {
	nop := func() error { return nil }
	if a.cfg.Image != "" {
		f, err := stream.Open(a.cfg.Image)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
	if fl := a.h.Flash(); fl != nil && fl.SizeBytes() > 0 {
		return stream.Flash(fl, 0, fl.SizeBytes()), nop, nil
	}
	return stream.Memory(a.asset), nop, nil
}

// builtinAsset renders concentric color rings into an LCD image.
func builtinAsset(log *slog.Logger) []byte {
	rings := []hal.Color{hal.Red, hal.Yellow, hal.Green, hal.Cyan, hal.Blue, hal.Magenta, hal.White}
	img := image.NewRGBA(image.Rect(0, 0, imageSize, imageSize))
	c := imageSize / 2
	for y := 0; y < imageSize; y++ {
		for x := 0; x < imageSize; x++ {
			r := int(math.Hypot(float64(x-c), float64(y-c))) / 4
			img.Set(x, y, rings[r%len(rings)])
		}
	}
	var buf bytes.Buffer
	if err := imgfmt.EncodeLCD(&buf, img, 0); err != nil {
		log.Warn("app: builtin image", "err", err)
		return nil
	}
	return buf.Bytes()
}
