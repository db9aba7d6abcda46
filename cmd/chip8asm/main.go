// Package main implements a CHIP-8 assembler and disassembler
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/asm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string

	disassemble bool
	quiet       bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	if err := process(options); err != nil {
		fmt.Println(fmt.Errorf("processing failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.BoolVar(&options.disassemble, "d", false, "disassemble the input ROM instead of assembling the input source")
	flags.StringVar(&options.output, "o", "", "name of the output file, printed on console if no name given")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8asm [options] <file to process>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner() {
	fmt.Println("[-------------------------------------------]")
	fmt.Println("[ chip8asm - CHIP-8 assembler/disassembler ]")
	fmt.Printf("[-------------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func process(options optionFlags) error {
	var result []byte
	var err error
	if options.disassemble {
		result, err = disassembleFile(options.input)
	} else {
		result, err = assembleFile(options.input)
	}
	if err != nil {
		return err
	}

	return writeOutput(options.output, result)
}

func assembleFile(path string) ([]byte, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file '%s': %w", path, err)
	}

	program, err := asm.Assemble(path, string(source))
	if err != nil {
		return nil, fmt.Errorf("assembling: %w", err)
	}
	if len(program) == 0 {
		return nil, errors.New("assembling: source contains no instructions or data")
	}
	return program, nil
}

func disassembleFile(path string) ([]byte, error) {
	program, err := loader.New().Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	var buf bytes.Buffer
	if err := asm.Disassemble(&buf, program); err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOutput(path string, data []byte) error {
	var output io.WriteCloser
	if path == "" {
		output = os.Stdout
	} else {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", path, err)
		}
		output = file
	}

	if _, err := output.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if path == "" {
		return nil
	}
	if err := output.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
