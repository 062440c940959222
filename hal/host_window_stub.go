//go:build !tinygo && !cgo

package hal

import "errors"

// RunWindow is unavailable without cgo; use RunHeadless instead.
func RunWindow(func(HAL) func() error) error {
	return errors.New("hal: the preview window needs cgo (CGO_ENABLED=1); run with -headless otherwise")
}
