//go:build linux

package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// RedirectStderr sends everything written to stderr, including the log
// output, to the given file. The returned function restores stderr.
func RedirectStderr(path string) (func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	stderrFd := int(os.Stderr.Fd())
	saved, err := unix.Dup(stderrFd)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("duplicating stderr: %w", err)
	}

	if err := unix.Dup3(int(file.Fd()), stderrFd, 0); err != nil {
		_ = unix.Close(saved)
		_ = file.Close()
		return nil, fmt.Errorf("redirecting stderr: %w", err)
	}

	restore := func() error {
		defer func() { _ = file.Close() }()
		defer func() { _ = unix.Close(saved) }()
		if err := unix.Dup3(saved, stderrFd, 0); err != nil {
			return fmt.Errorf("restoring stderr: %w", err)
		}
		return nil
	}
	return restore, nil
}
