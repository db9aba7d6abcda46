// Package options contains the program options.
package options

import (
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/driver"
)

// Display backend names.
const (
	DisplayAuto     = ""
	DisplayTerminal = "terminal"
	DisplayWindow   = "window"
	DisplayHeadless = "headless"
)

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input ROM file"`
	LogFile string `flag:"log" usage:"file to redirect log output to"`
}

// Flags contains behavior options.
type Flags struct {
	Display         string `flag:"display" usage:"display backend: terminal, window, headless (default: auto-detect)"`
	FrameIntervalMs int    `flag:"frame-interval-ms" usage:"milliseconds between two emulation cycles" default:"17"`
	KeyHold         int    `flag:"key-hold" usage:"idle cycles before terminal keys are released" default:"6"`
	Cycles          uint64 `flag:"cycles" usage:"stop after the given number of cycles (0: unlimited)"`
	Seed            uint64 `flag:"seed" usage:"random number generator seed (0: random)"`
	Scale           int    `flag:"scale" usage:"window pixel scale factor" default:"10"`
	Debug           bool   `flag:"debug" usage:"enable debug logging"`
	Quiet           bool   `flag:"q" usage:"quiet mode"`
}

// QuirkFlags selects historical instruction variants.
type QuirkFlags struct {
	ShiftUsesVY          bool `flag:"quirk-shift" usage:"shift instructions read Vy"`
	StoreClearsRegisters bool `flag:"quirk-store" usage:"register store clears the stored registers"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	QuirkFlags
}

// Machine returns the machine options.
func (p Program) Machine() chip8.Options {
	return chip8.Options{
		Quirks: chip8.Quirks{
			ShiftUsesVY:          p.ShiftUsesVY,
			StoreClearsRegisters: p.StoreClearsRegisters,
		},
		Seed: p.Seed,
	}
}

// Driver returns the emulation cycle options for the given display backend.
// Only the terminal lacks key release events and needs the key hold timeout.
func (p Program) Driver(display string) driver.Options {
	opts := driver.Options{
		FrameInterval: time.Duration(p.FrameIntervalMs) * time.Millisecond,
		MaxCycles:     p.Cycles,
		ExitKey:       driver.DefaultExitKey,
	}
	if display == DisplayTerminal {
		opts.KeyHold = p.KeyHold
	}
	return opts
}
