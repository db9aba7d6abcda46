// Package headless provides a display backend without any output,
// used for tests and batch runs.
package headless

import (
	"github.com/retroenv/retrochip8/internal/display"
)

var _ display.Surface = (*Display)(nil)
var _ display.StatusSetter = (*Display)(nil)

// Display keeps the pixel buffer in memory and counts rendered frames.
type Display struct {
	display.Framebuffer

	frames uint64
	status string
}

// New returns a new headless display.
func New() *Display {
	return &Display{}
}

// Render counts the frame.
func (d *Display) Render() error {
	d.frames++
	return nil
}

// SetStatus stores the status line.
func (d *Display) SetStatus(status string) {
	d.status = status
}

// Frames returns the number of rendered frames.
func (d *Display) Frames() uint64 {
	return d.frames
}

// Status returns the last status line.
func (d *Display) Status() string {
	return d.status
}

// String returns the buffer as text using '#' for set pixels.
func (d *Display) String() string {
	return display.Format(d.Pixels(), '#', '.', "\n")
}
