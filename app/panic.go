package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tftlcd/display"
	"tftlcd/fonts/font5x7"
	"tftlcd/hal"
)

const (
	panicCharWidth  = 6
	panicLineHeight = 8
)

// withPanicScreen runs step, turning a panic into a logged stack and a full-screen
// report. The panic is returned as an error so the runner stops.
func withPanicScreen(h hal.HAL, d *display.Display, step func() error) func() error {
	return func() (err error) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			lines := panicLines(v, debug.Stack())
			if l := h.Logger(); l != nil {
				for _, line := range lines {
					l.WriteLineString(line)
				}
			}
			drawPanicScreen(d, lines)
			err = fmt.Errorf("app: panic: %v", v)
		}()
		return step()
	}
}

func panicLines(v any, stack []byte) []string {
	lines := []string{"Panic:", fmt.Sprintf("panic: %v", v)}
	if len(stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", " "))
	}
	return lines
}

func drawPanicScreen(d *display.Display, lines []string) {
	d.ResetViewport()
	d.Fill(hal.White)

	cols := max(1, d.Width()/panicCharWidth)
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+panicLineHeight > d.Height() {
				_ = d.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			d.WriteLineFont(font5x7.Font, 0, y+panicLineHeight-1, chunk, hal.Black)
			y += panicLineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
