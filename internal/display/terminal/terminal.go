// Package terminal provides a display backend that draws the pixel buffer
// with ANSI escape sequences, suitable for terminals in raw mode.
package terminal

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/display"
)

var _ display.Surface = (*Display)(nil)
var _ display.StatusSetter = (*Display)(nil)

const (
	pixelOn  = '█'
	pixelOff = ' '

	// raw mode disables output post processing, lines need an explicit CR.
	newline = "\r\n"

	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
	clearLine  = "\x1b[2K"
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
)

// Display renders the buffer to a terminal.
type Display struct {
	display.Framebuffer

	writer *bufio.Writer
	status string
}

// New returns a terminal display writing to w.
func New(w io.Writer) *Display {
	return &Display{
		writer: bufio.NewWriter(w),
	}
}

// Start clears the terminal and hides the cursor.
func (d *Display) Start() error {
	if _, err := fmt.Fprint(d.writer, clearAll, cursorHome, hideCursor); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	return d.writer.Flush()
}

// Stop clears the terminal and shows the cursor again.
func (d *Display) Stop() error {
	if _, err := fmt.Fprint(d.writer, clearAll, cursorHome, showCursor); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return d.writer.Flush()
}

// SetStatus sets the line shown below the display.
func (d *Display) SetStatus(status string) {
	d.status = status
}

// Render redraws the whole buffer followed by the status line.
func (d *Display) Render() error {
	if _, err := d.writer.WriteString(cursorHome); err != nil {
		return fmt.Errorf("writing cursor position: %w", err)
	}
	if _, err := d.writer.WriteString(display.Format(d.Pixels(), pixelOn, pixelOff, newline)); err != nil {
		return fmt.Errorf("writing display buffer: %w", err)
	}
	if _, err := fmt.Fprintf(d.writer, "%s%s", clearLine, d.status); err != nil {
		return fmt.Errorf("writing status line: %w", err)
	}
	if err := d.writer.Flush(); err != nil {
		return fmt.Errorf("flushing terminal output: %w", err)
	}
	return nil
}
