//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"tinygo.org/x/drivers/touch"
)

const (
	hostTouchBaseZ = 3000
	hostTouchRampZ = 40
	hostTouchMaxZ  = 4095
)

// poll samples the left mouse button or the first touchscreen contact. Pressure ramps
// with the press duration so a quick tap stays close to the press threshold.
func (t *hostTouch) poll() {
	var (
		x, y, ticks int
		down        bool
	)
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y = ebiten.TouchPosition(ids[0])
		ticks = inpututil.TouchPressDuration(ids[0])
		down = true
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y = ebiten.CursorPosition()
		ticks = inpututil.MouseButtonPressDuration(ebiten.MouseButtonLeft)
		down = true
	}
	if !down || x < 0 || y < 0 || x >= PanelWidth+SliderWidth || y >= PanelHeight {
		t.set(touch.Point{})
		return
	}
	z := hostTouchBaseZ + ticks*hostTouchRampZ
	if z > hostTouchMaxZ {
		z = hostTouchMaxZ
	}
	t.set(touch.Point{X: x, Y: y, Z: z})
}
