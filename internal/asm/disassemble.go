package asm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

// Disassemble writes a linear listing of the program. Every word is
// printed as an instruction, words that do not decode and a trailing odd
// byte are printed as data. Jump, call and index targets inside the
// program get labels. Assembling the listing results in the same program.
func Disassemble(w io.Writer, program []byte) error {
	if len(program) > chip8.MaxProgramSize {
		return fmt.Errorf("%w: %d bytes", chip8.ErrProgramTooLarge, len(program))
	}

	if _, err := fmt.Fprintf(w, "; CHIP-8 program disassembly\n\n.org $%03X\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	targets := collectTargets(program)

	for offset := 0; offset < len(program); offset += 2 {
		address := uint16(chip8.ProgramStart + offset)
		if targets.Contains(address) {
			if _, err := fmt.Fprintf(w, "%s:\n", labelName(address)); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if offset+1 == len(program) {
			if _, err := fmt.Fprintf(w, "    %-28s ; $%03X\n", fmt.Sprintf(".byte $%02X", program[offset]), address); err != nil {
				return fmt.Errorf("writing data: %w", err)
			}
			break
		}

		word := uint16(program[offset])<<8 | uint16(program[offset+1])
		if _, err := fmt.Fprintf(w, "    %-28s ; $%03X %04X\n", formatWord(word, targets), address, word); err != nil {
			return fmt.Errorf("writing instruction: %w", err)
		}
	}
	return nil
}

func formatWord(word uint16, targets set.Set[uint16]) string {
	op, err := chip8.Decode(word)
	if err != nil {
		return fmt.Sprintf(".byte $%02X, $%02X", word>>8, word&0xFF)
	}

	text := op.String()
	if hasAddress(op) && targets.Contains(op.NNN) {
		text = strings.Replace(text, fmt.Sprintf("$%03X", op.NNN), labelName(op.NNN), 1)
	}
	return text
}

// collectTargets returns the addresses referenced by instructions that
// start a word of the listing.
func collectTargets(program []byte) set.Set[uint16] {
	targets := set.New[uint16]()

	for offset := 0; offset+1 < len(program); offset += 2 {
		word := uint16(program[offset])<<8 | uint16(program[offset+1])
		op, err := chip8.Decode(word)
		if err != nil || !hasAddress(op) {
			continue
		}

		target := int(op.NNN) - chip8.ProgramStart
		if target >= 0 && target < len(program) && target%2 == 0 {
			targets.Add(op.NNN)
		}
	}
	return targets
}

func hasAddress(op chip8.Opcode) bool {
	switch op.Kind {
	case chip8.OpJp, chip8.OpCall, chip8.OpJpV0, chip8.OpLdI:
		return true
	default:
		return false
	}
}

func labelName(address uint16) string {
	return fmt.Sprintf("loc_%03X", address)
}
