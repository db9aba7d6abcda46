// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

var displays = []string{options.DisplayTerminal, options.DisplayWindow, options.DisplayHeadless}

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	return parse(os.Args)
}

func parse(args []string) (options.Program, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(args[1:])
	positional := flags.Args()
	if err != nil || (len(positional) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(positional); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(positional) > 0 {
		opts.Input = positional[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Display = strings.ToLower(opts.Display)
	if opts.Display != options.DisplayAuto && !slices.Contains(displays, opts.Display) {
		return fmt.Errorf("unsupported display: %s. Valid options: %s",
			opts.Display, strings.Join(displays, ", "))
	}

	if opts.FrameIntervalMs < 0 {
		return fmt.Errorf("invalid frame interval: %d", opts.FrameIntervalMs)
	}
	if opts.KeyHold < 0 {
		return fmt.Errorf("invalid key hold: %d", opts.KeyHold)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale: %d", opts.Scale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.LogFile, "log", "", "redirect log output to the given file, keeps the terminal display clean")
	flags.StringVar(&opts.Display, "display", "", "display backend (terminal/window/headless), terminal if stdout is a terminal, headless otherwise")
	flags.IntVar(&opts.FrameIntervalMs, "frame-interval-ms", 17, "milliseconds between two emulation cycles, 0 runs without delay")
	flags.IntVar(&opts.KeyHold, "key-hold", 6, "number of cycles without input after which terminal keys are released")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after the given number of cycles, 0 runs until 't' is pressed")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 picks a random seed")
	flags.IntVar(&opts.Scale, "scale", 10, "pixel scale factor of the window display")
	flags.BoolVar(&opts.ShiftUsesVY, "quirk-shift", false, "shift instructions read their source from Vy")
	flags.BoolVar(&opts.StoreClearsRegisters, "quirk-store", false, "register store instruction clears the stored registers")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
