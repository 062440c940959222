package display

import (
	"tftlcd/hal"

	"tinygo.org/x/drivers"
)

// toPhysical maps logical screen coordinates to GRAM coordinates.
func (d *Display) toPhysical(x, y int) (int, int) {
	switch d.rot {
	case drivers.Rotation90:
		x, y = y, x
		x = d.width - 1 - x
	case drivers.Rotation180:
		x = d.width - 1 - x
		y = d.height - 1 - y
	case drivers.Rotation270:
		x, y = y, x
		y = d.height - 1 - y
	}
	return x, y
}

// toLogical is the inverse of toPhysical. Only touch input needs it.
func (d *Display) toLogical(x, y int) (int, int) {
	switch d.rot {
	case drivers.Rotation90:
		x = d.width - 1 - x
		x, y = y, x
	case drivers.Rotation180:
		x = d.width - 1 - x
		y = d.height - 1 - y
	case drivers.Rotation270:
		y = d.height - 1 - y
		x, y = y, x
	}
	return x, y
}

var directions = [8]hal.Direction{
	hal.DirRightWrapDown, hal.DirDownWrapDown, hal.DirLeftWrapDown, hal.DirUpWrapDown,
	hal.DirRightWrapUp, hal.DirDownWrapUp, hal.DirLeftWrapUp, hal.DirUpWrapUp,
}

func (d *Display) physicalDirection(dir Direction) hal.Direction {
	if dir == DirAny {
		return hal.DirRight
	}
	return directions[(uint8(dir)+uint8(d.rot))&3|uint8(d.wrap)]
}
