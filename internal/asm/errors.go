package asm

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// ErrUnknownMnemonic is returned for unknown instructions and directives.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrInvalidOperands is returned when no instruction form matches the operands.
	ErrInvalidOperands = errors.New("invalid operands")
	// ErrValueOutOfRange is returned for numbers too large for their field.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrUndefinedLabel is returned for references to labels that are never defined.
	ErrUndefinedLabel = errors.New("undefined label")
	// ErrDuplicateLabel is returned for labels that are defined more than once.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrInvalidOrigin is returned for .org addresses behind the current address.
	ErrInvalidOrigin = errors.New("invalid origin")
)

// Error is an assembly error at a source position.
type Error struct {
	Pos lexer.Position
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorAt(pos lexer.Position, err error, format string, args ...any) error {
	return &Error{
		Pos: pos,
		Err: fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)),
	}
}
