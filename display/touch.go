package display

import (
	"image"
	"time"
)

// PressPoint is a touch position in logical screen coordinates. It is pressed while
// Pressure is positive.
type PressPoint struct {
	X, Y     int
	Pressure int
}

func (p PressPoint) Pressed() bool { return p.Pressure > 0 }

// PressedIn reports whether p is pressed inside the rectangle.
func (p PressPoint) PressedIn(x, y, w, h int) bool {
	return p.Pressed() && image.Pt(p.X, p.Y).In(image.Rect(x, y, x+w, y+h))
}

type touchState struct {
	live, last, start PressPoint

	rawPressed bool // current sample is above the threshold
	slider     bool // current sample is on the slider strip
	accepted   bool // debounced pressed state
	stable     time.Time

	sliderLive, sliderStart float64
	sliderDown, sliderWas   bool

	clicked bool
}

// Update samples the touch sensor once. Call it once per tick before drawing.
func (d *Display) Update() {
	s := &d.in
	s.last = s.live

	var x, y, z int
	if d.cfg.Touch != nil {
		p := d.cfg.Touch.ReadTouchPoint()
		x, y, z = p.X, p.Y, p.Z
	}

	if z >= d.cfg.PressureThreshold {
		s.live.Pressure = z
		s.rawPressed = true
		s.slider = x >= d.width
		if s.slider {
			s.sliderLive = d.sliderValue(y)
		} else {
			lx, ly := d.toLogical(x, y)
			if s.last.Pressed() {
				s.live.X += d.cfg.Smooth(lx - s.live.X)
				s.live.Y += d.cfg.Smooth(ly - s.live.Y)
			} else {
				s.live.X, s.live.Y = lx, ly
			}
		}
	} else {
		s.live.Pressure = 0
		s.rawPressed = false
	}

	now := d.cfg.Now()
	if s.rawPressed == s.accepted {
		s.stable = now
	} else if now.Sub(s.stable) > d.cfg.PressDelay {
		s.stable = now
		s.accepted = s.rawPressed
	}

	s.sliderWas = s.sliderDown
	s.sliderDown = s.accepted && s.slider
	if !s.accepted || s.slider {
		s.live.Pressure = 0
	}

	if s.live.Pressed() && !s.last.Pressed() {
		s.start = s.live
	}
	if s.sliderDown && !s.sliderWas {
		s.sliderStart = s.sliderLive
	}

	// A release is first reported as a click with the last pressed point still live.
	// The following tick reports the release itself.
	if !s.live.Pressed() && s.last.Pressed() {
		if s.clicked {
			s.clicked = false
		} else {
			s.clicked = true
			s.live = s.last
		}
	} else {
		s.clicked = false
	}
}

// sliderValue maps a raw strip position to [0, 1], stretched so both ends are reachable.
func (d *Display) sliderValue(rawY int) float64 {
	v := float64(rawY) / float64(d.height)
	v = 1.1*v - 0.05
	v = min(max(v, 0), 1)
	if d.rot == 0 || d.rot == 1 {
		v = 1 - v
	}
	return v
}

// ResetTouch forgets all touch and slider history, e.g. after switching screens.
func (d *Display) ResetTouch() {
	d.in = touchState{stable: d.cfg.Now()}
}

func (d *Display) Touch() PressPoint      { return d.in.live }
func (d *Display) TouchLast() PressPoint  { return d.in.last }
func (d *Display) TouchStart() PressPoint { return d.in.start }

func (d *Display) IsTouched() bool { return d.in.live.Pressed() }

func (d *Display) IsTouchedIn(x, y, w, h int) bool { return d.in.live.PressedIn(x, y, w, h) }

func (d *Display) IsTouchDown() bool { return d.in.live.Pressed() && !d.in.last.Pressed() }

func (d *Display) IsTouchUp() bool { return d.in.last.Pressed() && !d.in.live.Pressed() }

// IsTouchEnter reports a press that moved into (or started in) the rectangle this tick.
func (d *Display) IsTouchEnter(x, y, w, h int) bool {
	return d.in.live.PressedIn(x, y, w, h) && !d.in.last.PressedIn(x, y, w, h)
}

func (d *Display) IsTouchLeave(x, y, w, h int) bool {
	return d.in.last.PressedIn(x, y, w, h) && !d.in.live.PressedIn(x, y, w, h)
}

// IsTouchClicked reports, for exactly one tick, a press released inside the rectangle.
func (d *Display) IsTouchClicked(x, y, w, h int) bool {
	return d.in.clicked && d.in.last.PressedIn(x, y, w, h)
}

// IsTouchChange reports any change of the pressed-in state of the rectangle, clicks
// included.
func (d *Display) IsTouchChange(x, y, w, h int) bool {
	old := d.in.last.PressedIn(x, y, w, h)
	cur := d.in.live.PressedIn(x, y, w, h)
	return (d.in.clicked && old) || old != cur
}

// Slider is the last slider position in [0, 1].
func (d *Display) Slider() float64      { return d.in.sliderLive }
func (d *Display) SliderStart() float64 { return d.in.sliderStart }

func (d *Display) IsSliderTouched() bool   { return d.in.sliderDown }
func (d *Display) IsSliderTouchDown() bool { return d.in.sliderDown && !d.in.sliderWas }
func (d *Display) IsSliderTouchUp() bool   { return !d.in.sliderDown && d.in.sliderWas }
