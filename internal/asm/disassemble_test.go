package asm

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

var listingProgram = []byte{
	0x60, 0x00, // $200 LD V0, $00
	0xA2, 0x0A, // $202 LD I, $20A
	0xD0, 0x05, // $204 DRW V0, V0, $5
	0x22, 0x0C, // $206 CALL $20C
	0x12, 0x06, // $208 JP $206
	0xF0, 0x90, // $20A sprite data, decodes as invalid
	0x00, 0xEE, // $20C RET
	0x00, 0x00, // $20E invalid
	0x13, 0x00, // $210 JP $300, outside of the program
	0x80, // $212 odd trailing byte
}

func TestDisassemble_Listing(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Disassemble(&buf, listingProgram))

	listing := buf.String()
	assert.Contains(t, listing, ".org $200\n")
	assert.Contains(t, listing, "LD I, loc_20A")
	assert.Contains(t, listing, "loc_206:\n")
	assert.Contains(t, listing, "CALL loc_20C")
	assert.Contains(t, listing, "JP loc_206")
	assert.Contains(t, listing, ".byte $F0, $90")
	assert.Contains(t, listing, ".byte $00, $00")
	assert.Contains(t, listing, "JP $300")
	assert.Contains(t, listing, ".byte $80")
	assert.Contains(t, listing, "; $204 D005")
}

func TestDisassemble_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		program []byte
	}{
		{"listing", listingProgram},
		{"empty", []byte{}},
		{"single byte", []byte{0xFF}},
		{"indexed jump", []byte{0xB2, 0x02, 0x00, 0xE0}},
		{"shift with source", []byte{0x81, 0x26, 0x81, 0x0E}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, Disassemble(&buf, tt.program))

			program, err := Assemble("listing.asm", buf.String())
			assert.NoError(t, err)
			assert.Equal(t, len(tt.program), len(program))
			assert.True(t, bytes.Equal(tt.program, program))
		})
	}
}

func TestDisassemble_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	err := Disassemble(&buf, make([]byte, chip8.MaxProgramSize+1))
	assert.True(t, errors.Is(err, chip8.ErrProgramTooLarge))
	assert.Equal(t, 0, buf.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestDisassemble_WriteError(t *testing.T) {
	err := Disassemble(failingWriter{}, listingProgram)
	assert.ErrorContains(t, err, "writing header")
	assert.ErrorContains(t, err, "disk full")
}
