//go:build !tinygo && cgo

package hal

import (
	"image"
	"image/color"
	"time"

	"tftlcd/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const hostTPS = 60

var (
	sliderTrack = color.RGBA{0x30, 0x30, 0x30, 0xFF}
	sliderKnob  = color.RGBA{0xE0, 0xE0, 0x40, 0xFF}
)

// RunWindow starts a desktop window showing the panel and the slider strip. The mouse
// (or a touchscreen) feeds the touch sampler. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error) error {
	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("tftlcd (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize((PanelWidth+SliderWidth)*2, PanelHeight*2)
	ebiten.SetTPS(hostTPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	panel   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.touch.poll()
	g.h.clock.step(time.Second / hostTPS)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	gram := g.h.gram
	if g.panel == nil {
		g.panel = ebiten.NewImage(gram.Width(), gram.Height())
		g.scratch = make([]byte, gram.Width()*gram.Height()*4)
	}
	gram.CopyRGBA(g.scratch)
	g.panel.WritePixels(g.scratch)
	screen.DrawImage(g.panel, nil)

	strip := image.Rect(PanelWidth, 0, PanelWidth+SliderWidth, PanelHeight)
	screen.SubImage(strip).(*ebiten.Image).Fill(sliderTrack)
	if p := g.h.touch.ReadTouchPoint(); p.Z > 0 && p.X >= PanelWidth {
		knob := image.Rect(PanelWidth, p.Y-2, PanelWidth+SliderWidth, p.Y+3).Intersect(strip)
		screen.SubImage(knob).(*ebiten.Image).Fill(sliderKnob)
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return PanelWidth + SliderWidth, PanelHeight
}
