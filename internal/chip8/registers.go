package chip8

import "fmt"

// Register is the index of a general purpose register, 0-15.
type Register uint8

func (r Register) String() string {
	return fmt.Sprintf("V%X", uint8(r)&0xF)
}

// Registers holds V0-VF and the index register I.
type Registers struct {
	v [RegisterCount]byte
	i uint16
}

// Get returns the value of Vx.
func (r *Registers) Get(x Register) byte {
	return r.v[x&0xF]
}

// Set sets the value of Vx.
func (r *Registers) Set(x Register, value byte) {
	r.v[x&0xF] = value
}

// Flag returns VF.
func (r *Registers) Flag() byte {
	return r.v[FlagRegister]
}

// SetFlag sets VF to 1 if the condition holds, 0 otherwise.
func (r *Registers) SetFlag(set bool) {
	if set {
		r.v[FlagRegister] = 1
	} else {
		r.v[FlagRegister] = 0
	}
}

// Index returns the index register I.
func (r *Registers) Index() uint16 {
	return r.i
}

// SetIndex sets the index register I.
func (r *Registers) SetIndex(value uint16) {
	r.i = value
}
