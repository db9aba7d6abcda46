package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a call exceeds StackDepth.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidKey is returned for key indexes outside of the keypad.
	// It is never fatal, lookups treat such keys as not pressed.
	ErrInvalidKey = errors.New("invalid key index")
	// ErrProgramTooLarge is returned when a program does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
	// ErrInvalidOpcode is returned when executing an opcode of unknown kind.
	ErrInvalidOpcode = errors.New("invalid opcode")
)

// DecodeError is returned for instruction words outside of the instruction set.
type DecodeError struct {
	Word    uint16
	Address uint16 // address the word was fetched from, 0 if decoded directly
}

func (e *DecodeError) Error() string {
	if e.Address == 0 {
		return fmt.Sprintf("unknown instruction $%04X", e.Word)
	}
	return fmt.Sprintf("unknown instruction $%04X at $%03X", e.Word, e.Address)
}

// MemoryBoundsError is returned for memory accesses outside of 0-MaxAddress.
type MemoryBoundsError struct {
	Address int
}

func (e *MemoryBoundsError) Error() string {
	return fmt.Sprintf("memory access out of bounds at $%04X", e.Address)
}
