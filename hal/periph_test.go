package hal

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

type fakeDrawer struct {
	bounds image.Rectangle
	rects  []image.Rectangle
	got    []color.Color
	err    error
}

func (d *fakeDrawer) String() string          { return "fake" }
func (d *fakeDrawer) Halt() error             { return nil }
func (d *fakeDrawer) ColorModel() color.Model { return color.RGBAModel }
func (d *fakeDrawer) Bounds() image.Rectangle { return d.bounds }
func (d *fakeDrawer) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.err != nil {
		return d.err
	}
	d.rects = append(d.rects, r)
	d.got = append(d.got, src.At(sp.X, sp.Y))
	return nil
}

func TestPanelMirrorSendsDirtyRegion(t *testing.T) {
	g := NewGRAM(16, 16)
	dst := &fakeDrawer{bounds: image.Rect(0, 0, 16, 16)}
	m := NewPanelMirror(g, dst)

	var lcd LCD = m
	lcd.SetWindow(0, 0, 15, 15)
	lcd.SetCursor(3, 4, DirRight)
	lcd.WritePixelRun(Red, 2)
	if err := lcd.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(dst.rects) != 1 || dst.rects[0] != image.Rect(3, 4, 5, 5) {
		t.Fatalf("rects = %v", dst.rects)
	}
	if dst.got[0] != Red {
		t.Fatalf("first pixel = %v", dst.got[0])
	}

	if err := lcd.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if len(dst.rects) != 1 {
		t.Fatalf("clean frame was sent: %v", dst.rects)
	}
}

func TestPanelMirrorWrapsDrawError(t *testing.T) {
	g := NewGRAM(4, 4)
	boom := errors.New("boom")
	m := NewPanelMirror(g, &fakeDrawer{bounds: image.Rect(0, 0, 4, 4), err: boom})
	g.Clear(White)
	if err := m.Present(); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
