package hal

import (
	"fmt"

	"periph.io/x/conn/v3/display"
)

// PanelMirror is an LCD that also copies every presented frame to a periph.io display.
// Only the region written since the previous Present is sent.
type PanelMirror struct {
	*GRAM
	Dst display.Drawer
}

// NewPanelMirror wraps g so that Present pushes its dirty region to dst.
func NewPanelMirror(g *GRAM, dst display.Drawer) *PanelMirror {
	return &PanelMirror{GRAM: g, Dst: dst}
}

func (m *PanelMirror) Present() error {
	r := m.GRAM.TakeDirty()
	if r.Empty() || m.Dst == nil {
		return nil
	}
	r = r.Intersect(m.Dst.Bounds())
	if r.Empty() {
		return nil
	}
	if err := m.Dst.Draw(r, m.GRAM, r.Min); err != nil {
		return fmt.Errorf("mirror %s: %w", m.Dst, err)
	}
	return nil
}
