// Package pipeline orchestrates the emulation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/display/headless"
	"github.com/retroenv/retrochip8/internal/display/terminal"
	"github.com/retroenv/retrochip8/internal/display/window"
	"github.com/retroenv/retrochip8/internal/driver"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

const windowTitle = "retrochip8"

// Pipeline orchestrates the complete emulation workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader

	stdin  int       // terminal input file descriptor
	output io.Writer // terminal display and headless frame dump
}

// New creates a new emulation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
		stdin:    int(os.Stdin.Fd()),
		output:   os.Stdout,
	}
}

// Execute loads the ROM of the options and runs it on the detected display.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) error {
	backend := p.detector.Detect(opts)

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	return p.ExecuteWithProgram(ctx, program, opts, backend)
}

// ExecuteWithProgram runs a program that is already in memory on the given
// display backend. This is useful for testing and programmatic usage.
func (p *Pipeline) ExecuteWithProgram(ctx context.Context, program []byte, opts options.Program, backend string) error {
	p.printInfo(opts, program, backend)

	switch backend {
	case options.DisplayHeadless:
		return p.runHeadless(ctx, program, opts)
	case options.DisplayTerminal:
		return p.runTerminal(ctx, program, opts)
	case options.DisplayWindow:
		return p.runWindow(ctx, program, opts)
	default:
		return fmt.Errorf("unsupported display '%s'", backend)
	}
}

// createMachine creates a machine drawing to the surface and loads the program.
func (p *Pipeline) createMachine(surface display.Surface, program []byte, opts options.Program) (*chip8.Machine, error) {
	machine := chip8.New(p.logger, surface, opts.Machine())
	if err := machine.Load(program); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	return machine, nil
}

// runHeadless runs the program without input and writes the final frame.
func (p *Pipeline) runHeadless(ctx context.Context, program []byte, opts options.Program) error {
	surface := headless.New()
	machine, err := p.createMachine(surface, program, opts)
	if err != nil {
		return err
	}

	drv := driver.New(p.logger, machine, surface, opts.Driver(options.DisplayHeadless))
	runErr := drv.Run(ctx, nil)

	if _, err := io.WriteString(p.output, surface.String()); err != nil {
		return fmt.Errorf("writing final frame: %w", err)
	}
	return runErr
}

// runTerminal runs the program in the terminal, reading keys from stdin.
func (p *Pipeline) runTerminal(ctx context.Context, program []byte, opts options.Program) (err error) {
	surface := terminal.New(p.output)
	machine, err := p.createMachine(surface, program, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := input.NewTerminal(p.stdin, cancel)
	if err := keys.Start(); err != nil {
		return fmt.Errorf("starting terminal input: %w", err)
	}
	defer func() {
		if stopErr := keys.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	if err := surface.Start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := surface.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	drv := driver.New(p.logger, machine, surface, opts.Driver(options.DisplayTerminal))
	return drv.Run(ctx, keys)
}

// runWindow runs the program in a window, paced by the window game loop.
func (p *Pipeline) runWindow(ctx context.Context, program []byte, opts options.Program) error {
	driverOpts := opts.Driver(options.DisplayWindow)
	surface := window.New(window.Options{
		Title:         windowTitle,
		Scale:         opts.Scale,
		FrameInterval: driverOpts.FrameInterval,
	})
	machine, err := p.createMachine(surface, program, opts)
	if err != nil {
		return err
	}

	drv := driver.New(p.logger, machine, surface, driverOpts)
	if err := surface.Run(ctx, drv.Cycle); err != nil {
		return err
	}
	p.logger.Info("Emulation stopped", log.Int("cycles", int(drv.Cycles())))
	return nil
}

// printInfo prints information about the program being run.
func (p *Pipeline) printInfo(opts options.Program, program []byte, backend string) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Running CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("display", backend),
	)
	if opts.ShiftUsesVY || opts.StoreClearsRegisters {
		p.logger.Info("Quirks enabled",
			log.String("shift", quirkState(opts.ShiftUsesVY)),
			log.String("store", quirkState(opts.StoreClearsRegisters)),
		)
	}
}

func quirkState(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
