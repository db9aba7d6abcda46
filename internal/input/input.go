// Package input reads key presses from a terminal in raw mode.
package input

import (
	"sync"
	"time"
)

const (
	// bufferSize is the number of key presses buffered between two polls.
	bufferSize = 64

	// retryDelay is the wait after a read found no pending input.
	retryDelay = 5 * time.Millisecond

	ctrlC = 0x03
)

// readFunc reads pending input without blocking. It returns 0 bytes and a
// nil error if no input is available.
type readFunc func(buf []byte) (int, error)

// Terminal delivers key presses of a raw mode terminal. It implements the
// key source of the emulation driver.
type Terminal struct {
	fd          int
	onInterrupt func()

	restore func() error // undoes raw and non-blocking mode
	started bool

	keys chan rune
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewTerminal returns a key reader for the terminal file descriptor.
// onInterrupt is called when Ctrl+C is pressed, since raw mode disables
// the interrupt signal.
func NewTerminal(fd int, onInterrupt func()) *Terminal {
	return &Terminal{
		fd:          fd,
		onInterrupt: onInterrupt,
		keys:        make(chan rune, bufferSize),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// PollKey returns the next buffered key press without blocking.
func (t *Terminal) PollKey() (rune, bool) {
	select {
	case key := <-t.keys:
		return key, true
	default:
		return 0, false
	}
}

// Stop ends reading and restores the terminal state.
func (t *Terminal) Stop() error {
	if !t.started {
		return nil
	}
	t.once.Do(func() {
		close(t.stop)
	})
	<-t.done

	if t.restore == nil {
		return nil
	}
	restore := t.restore
	t.restore = nil
	return restore()
}

// start runs the reader goroutine.
func (t *Terminal) start(read readFunc) {
	t.started = true
	go t.run(read)
}

// run reads input until stopped or a read fails.
func (t *Terminal) run(read readFunc) {
	defer close(t.done)
	buf := make([]byte, 1)

	for {
		select {
		case <-t.stop:
			return
		default:
		}

		n, err := read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			time.Sleep(retryDelay)
			continue
		}
		t.handleByte(buf[0])
	}
}

func (t *Terminal) handleByte(b byte) {
	if b == ctrlC {
		if t.onInterrupt != nil {
			t.onInterrupt()
		}
		return
	}

	key := symbol(b)
	select {
	case t.keys <- key:
	default: // drop presses the emulation did not poll in time
	}
}

// symbol converts an input byte to a key symbol, letters are lower cased.
func symbol(b byte) rune {
	if b >= 'A' && b <= 'Z' {
		return rune(b - 'A' + 'a')
	}
	return rune(b)
}
