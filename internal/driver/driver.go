// Package driver runs the emulation cycle of a CHIP-8 machine: ticking the
// timers, delivering key events, stepping the machine and rendering.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// Default option values.
const (
	DefaultFrameInterval = 17 * time.Millisecond
	DefaultKeyHold       = 6
	DefaultExitKey       = 't'
)

const waitingStatus = "Waiting..."

var (
	// ErrExitRequested is returned by Cycle when the exit key was pressed.
	ErrExitRequested = errors.New("exit requested")
	// ErrCycleLimit is returned by Cycle once the configured number of
	// cycles has been run.
	ErrCycleLimit = errors.New("cycle limit reached")
)

// IsStop returns whether the error returned by Cycle ends the emulation
// without a failure.
func IsStop(err error) bool {
	return errors.Is(err, ErrExitRequested) || errors.Is(err, ErrCycleLimit)
}

// KeyEvent is a key press or release of an input symbol.
type KeyEvent struct {
	Symbol   rune
	Released bool
}

// KeySource delivers key presses without blocking.
type KeySource interface {
	// PollKey returns the next pending input symbol, if any.
	PollKey() (rune, bool)
}

// Options configures the emulation cycle.
type Options struct {
	// FrameInterval is the time between two cycles in Run,
	// 0 runs the cycles without any delay.
	FrameInterval time.Duration

	// KeyHold is the number of cycles without key event after which all
	// keys are released, for input sources without release events.
	// 0 disables the release.
	KeyHold int

	// MaxCycles stops the emulation after the given number of cycles,
	// 0 runs until the exit key is pressed or the context is cancelled.
	MaxCycles uint64

	// ExitKey is the input symbol that ends the emulation.
	ExitKey rune
}

// DefaultOptions returns the options for a terminal session.
func DefaultOptions() Options {
	return Options{
		FrameInterval: DefaultFrameInterval,
		KeyHold:       DefaultKeyHold,
		ExitKey:       DefaultExitKey,
	}
}

// Driver runs the emulation cycle of a machine.
type Driver struct {
	logger  *log.Logger
	machine *chip8.Machine
	status  display.StatusSetter // optional
	opts    Options

	cycles     uint64
	idleCycles int
	lastStatus string
}

// New returns a driver for the machine. The status line is shown if the
// surface supports it.
func New(logger *log.Logger, machine *chip8.Machine, surface display.Surface, opts Options) *Driver {
	d := &Driver{
		logger:  logger,
		machine: machine,
		opts:    opts,
	}
	if setter, ok := surface.(display.StatusSetter); ok {
		d.status = setter
	}
	return d
}

// Cycles returns the number of completed cycles.
func (d *Driver) Cycles() uint64 {
	return d.cycles
}

// Cycle runs one emulation cycle with an optional key event.
func (d *Driver) Cycle(event *KeyEvent) error {
	if d.opts.MaxCycles > 0 && d.cycles >= d.opts.MaxCycles {
		return ErrCycleLimit
	}

	d.machine.Tick()

	if err := d.deliverKey(event); err != nil {
		return err
	}

	if err := d.machine.Step(); err != nil {
		return fmt.Errorf("stepping machine: %w", err)
	}

	d.updateStatus()
	if err := d.machine.Render(); err != nil {
		return err
	}

	d.cycles++
	return nil
}

func (d *Driver) deliverKey(event *KeyEvent) error {
	if event == nil {
		d.idleCycles++
		if d.opts.KeyHold > 0 && d.idleCycles == d.opts.KeyHold {
			d.machine.ReleaseKeys()
		}
		return nil
	}

	d.idleCycles = 0
	if event.Released {
		d.machine.ReleaseSymbol(event.Symbol)
		return nil
	}

	if event.Symbol == d.opts.ExitKey {
		return ErrExitRequested
	}
	if !d.machine.PressSymbol(event.Symbol) {
		d.logger.Debug("Ignoring unmapped key", log.String("key", string(event.Symbol)))
	}
	return nil
}

func (d *Driver) updateStatus() {
	if d.status == nil {
		return
	}

	status := ""
	if _, waiting := d.machine.WaitingForKey(); waiting {
		status = waitingStatus
	}
	if status == d.lastStatus {
		return
	}

	d.lastStatus = status
	d.status.SetStatus(status)
	d.machine.Redraw()
}

// Run runs cycles paced by the frame interval until the exit key is
// pressed, the cycle limit is reached or the context is cancelled.
// Every cycle delivers at most one key of the optional key source.
func (d *Driver) Run(ctx context.Context, keys KeySource) error {
	d.logger.Info("Starting emulation",
		log.String("frame_interval", d.opts.FrameInterval.String()))

	var tick <-chan time.Time
	if d.opts.FrameInterval > 0 {
		ticker := time.NewTicker(d.opts.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running emulation: %w", err)
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("running emulation: %w", ctx.Err())
			case <-tick:
			}
		}

		err := d.Cycle(poll(keys))
		if err == nil {
			continue
		}
		if IsStop(err) {
			d.logger.Info("Emulation stopped",
				log.String("reason", err.Error()),
				log.Int("cycles", int(d.cycles)))
			return nil
		}
		return err
	}
}

func poll(keys KeySource) *KeyEvent {
	if keys == nil {
		return nil
	}
	symbol, ok := keys.PollKey()
	if !ok {
		return nil
	}
	return &KeyEvent{Symbol: symbol}
}
