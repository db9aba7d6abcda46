// Package config sets up the logging of the interpreter.
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// NewLogger returns a logger with the level selected by the debug and
// quiet options. Debug wins over quiet.
func NewLogger(opts options.Program) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case opts.Debug:
		cfg.Level = log.DebugLevel
	case opts.Quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Setup returns the logger of the options. With a log file set, stderr
// is redirected to the file before the logger is created so log lines do
// not end up in the terminal display. The returned function undoes the
// redirection and is never nil.
func Setup(opts options.Program) (*log.Logger, func() error, error) {
	restore := func() error { return nil }

	if opts.LogFile != "" {
		undo, err := RedirectStderr(opts.LogFile)
		if err != nil {
			return nil, restore, fmt.Errorf("redirecting log output: %w", err)
		}
		restore = undo
	}

	return NewLogger(opts), restore, nil
}
