//go:build unix

package input

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Start switches the terminal to raw non-blocking mode and starts reading.
func (t *Terminal) Start() error {
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}

	if err := unix.SetNonblock(t.fd, true); err != nil {
		_ = term.Restore(t.fd, state)
		return fmt.Errorf("setting non-blocking input: %w", err)
	}

	t.restore = func() error {
		errNonblock := unix.SetNonblock(t.fd, false)
		errRestore := term.Restore(t.fd, state)
		if err := errors.Join(errNonblock, errRestore); err != nil {
			return fmt.Errorf("restoring terminal: %w", err)
		}
		return nil
	}

	t.start(t.readNonblocking)
	return nil
}

func (t *Terminal) readNonblocking(buf []byte) (int, error) {
	n, err := unix.Read(t.fd, buf)
	if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading terminal input: %w", err)
	}
	return n, nil
}
