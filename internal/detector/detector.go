// Package detector handles display backend detection.
package detector

import (
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector selects the display backend from options and the environment.
type Detector struct {
	logger     *log.Logger
	stdout     int
	isTerminal func(fd int) bool
}

// New creates a new display detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger:     logger,
		stdout:     int(os.Stdout.Fd()),
		isTerminal: term.IsTerminal,
	}
}

// Detect determines the display backend. An explicitly requested backend
// is used as is, otherwise the terminal backend is used if stdout is a
// terminal and the headless backend if not.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Display != options.DisplayAuto {
		return opts.Display
	}

	display := options.DisplayHeadless
	if d.isTerminal(d.stdout) {
		display = options.DisplayTerminal
	}
	d.logger.Debug("Auto-detected display", log.String("display", display))
	return display
}
