package chip8

import (
	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies the operation of a decoded Opcode.
type Kind uint8

// Instruction kinds, one per instruction encoding.
const (
	OpInvalid Kind = iota
	OpCls          // 00E0 CLS
	OpRet          // 00EE RET
	OpJp           // 1nnn JP addr
	OpCall         // 2nnn CALL addr
	OpSeByte       // 3xkk SE Vx, byte
	OpSneByte      // 4xkk SNE Vx, byte
	OpSeReg        // 5xy0 SE Vx, Vy
	OpLdByte       // 6xkk LD Vx, byte
	OpAddByte      // 7xkk ADD Vx, byte
	OpLdReg        // 8xy0 LD Vx, Vy
	OpOr           // 8xy1 OR Vx, Vy
	OpAnd          // 8xy2 AND Vx, Vy
	OpXor          // 8xy3 XOR Vx, Vy
	OpAdd          // 8xy4 ADD Vx, Vy
	OpSub          // 8xy5 SUB Vx, Vy
	OpShr          // 8xy6 SHR Vx {, Vy}
	OpSubn         // 8xy7 SUBN Vx, Vy
	OpShl          // 8xyE SHL Vx {, Vy}
	OpSneReg       // 9xy0 SNE Vx, Vy
	OpLdI          // Annn LD I, addr
	OpJpV0         // Bnnn JP V0, addr
	OpRnd          // Cxkk RND Vx, byte
	OpDrw          // Dxyn DRW Vx, Vy, nibble
	OpSkp          // Ex9E SKP Vx
	OpSknp         // ExA1 SKNP Vx
	OpLdVxDT       // Fx07 LD Vx, DT
	OpLdVxK        // Fx0A LD Vx, K
	OpLdDTVx       // Fx15 LD DT, Vx
	OpLdSTVx       // Fx18 LD ST, Vx
	OpAddI         // Fx1E ADD I, Vx
	OpLdF          // Fx29 LD F, Vx
	OpLdB          // Fx33 LD B, Vx
	OpStore        // Fx55 LD [I], Vx
	OpLoad         // Fx65 LD Vx, [I]

	kindCount
)

// instructions maps every kind to its mnemonic definition.
var instructions = [kindCount]*chip8cpu.Instruction{
	OpCls:     chip8cpu.ClsInst,
	OpRet:     chip8cpu.RetInst,
	OpJp:      chip8cpu.JpInst,
	OpCall:    chip8cpu.CallInst,
	OpSeByte:  chip8cpu.SeInst,
	OpSneByte: chip8cpu.SneInst,
	OpSeReg:   chip8cpu.SeInst,
	OpLdByte:  chip8cpu.LdInst,
	OpAddByte: chip8cpu.AddInst,
	OpLdReg:   chip8cpu.LdInst,
	OpOr:      chip8cpu.OrInst,
	OpAnd:     chip8cpu.AndInst,
	OpXor:     chip8cpu.XorInst,
	OpAdd:     chip8cpu.AddInst,
	OpSub:     chip8cpu.SubInst,
	OpShr:     chip8cpu.ShrInst,
	OpSubn:    chip8cpu.SubnInst,
	OpShl:     chip8cpu.ShlInst,
	OpSneReg:  chip8cpu.SneInst,
	OpLdI:     chip8cpu.LdInst,
	OpJpV0:    chip8cpu.JpInst,
	OpRnd:     chip8cpu.RndInst,
	OpDrw:     chip8cpu.DrwInst,
	OpSkp:     chip8cpu.SkpInst,
	OpSknp:    chip8cpu.SknpInst,
	OpLdVxDT:  chip8cpu.LdInst,
	OpLdVxK:   chip8cpu.LdInst,
	OpLdDTVx:  chip8cpu.LdInst,
	OpLdSTVx:  chip8cpu.LdInst,
	OpAddI:    chip8cpu.AddInst,
	OpLdF:     chip8cpu.LdInst,
	OpLdB:     chip8cpu.LdInst,
	OpStore:   chip8cpu.LdInst,
	OpLoad:    chip8cpu.LdInst,
}

// Opcode is a decoded instruction. Only the operand fields used by its Kind
// are set, all others are zero.
type Opcode struct {
	Kind Kind
	X    Register // first register operand
	Y    Register // second register operand
	N    uint8    // 4-bit sprite height
	NN   uint8    // 8-bit immediate
	NNN  uint16   // 12-bit address
}

// Instruction returns the instruction definition of the opcode,
// nil for invalid kinds.
func (o Opcode) Instruction() *chip8cpu.Instruction {
	if o.Kind >= kindCount {
		return nil
	}
	return instructions[o.Kind]
}

// IsSkip returns whether the opcode conditionally skips the next instruction.
func (o Opcode) IsSkip() bool {
	switch o.Kind {
	case OpSeByte, OpSneByte, OpSeReg, OpSneReg, OpSkp, OpSknp:
		return true
	default:
		return false
	}
}

// Decode parses an instruction word. Words outside of the instruction set
// return a DecodeError.
func Decode(word uint16) (Opcode, error) {
	x := Register(word >> 8 & 0xF)
	y := Register(word >> 4 & 0xF)
	n := uint8(word & 0xF)
	nn := uint8(word & 0xFF)
	nnn := word & 0x0FFF

	op := Opcode{}
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			op = Opcode{Kind: OpCls}
		case 0x00EE:
			op = Opcode{Kind: OpRet}
		}
	case 0x1:
		op = Opcode{Kind: OpJp, NNN: nnn}
	case 0x2:
		op = Opcode{Kind: OpCall, NNN: nnn}
	case 0x3:
		op = Opcode{Kind: OpSeByte, X: x, NN: nn}
	case 0x4:
		op = Opcode{Kind: OpSneByte, X: x, NN: nn}
	case 0x5:
		if n == 0 {
			op = Opcode{Kind: OpSeReg, X: x, Y: y}
		}
	case 0x6:
		op = Opcode{Kind: OpLdByte, X: x, NN: nn}
	case 0x7:
		op = Opcode{Kind: OpAddByte, X: x, NN: nn}
	case 0x8:
		op = decodeALU(x, y, n)
	case 0x9:
		if n == 0 {
			op = Opcode{Kind: OpSneReg, X: x, Y: y}
		}
	case 0xA:
		op = Opcode{Kind: OpLdI, NNN: nnn}
	case 0xB:
		op = Opcode{Kind: OpJpV0, NNN: nnn}
	case 0xC:
		op = Opcode{Kind: OpRnd, X: x, NN: nn}
	case 0xD:
		op = Opcode{Kind: OpDrw, X: x, Y: y, N: n}
	case 0xE:
		switch nn {
		case 0x9E:
			op = Opcode{Kind: OpSkp, X: x}
		case 0xA1:
			op = Opcode{Kind: OpSknp, X: x}
		}
	case 0xF:
		op = decodeMisc(x, nn)
	}

	if op.Kind == OpInvalid {
		return Opcode{}, &DecodeError{Word: word}
	}
	return op, nil
}

// aluKinds maps the low nibble of the 8xyn family to its kind.
var aluKinds = map[uint8]Kind{
	0x0: OpLdReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAdd,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpSubn,
	0xE: OpShl,
}

// miscKinds maps the low byte of the Fxkk family to its kind.
var miscKinds = map[uint8]Kind{
	0x07: OpLdVxDT,
	0x0A: OpLdVxK,
	0x15: OpLdDTVx,
	0x18: OpLdSTVx,
	0x1E: OpAddI,
	0x29: OpLdF,
	0x33: OpLdB,
	0x55: OpStore,
	0x65: OpLoad,
}

// decodeALU decodes the 8xyn register arithmetic family.
func decodeALU(x, y Register, n uint8) Opcode {
	kind, ok := aluKinds[n]
	if !ok {
		return Opcode{}
	}
	return Opcode{Kind: kind, X: x, Y: y}
}

// decodeMisc decodes the Fxkk timer, keypad, index and memory family.
func decodeMisc(x Register, nn uint8) Opcode {
	kind, ok := miscKinds[nn]
	if !ok {
		return Opcode{}
	}
	return Opcode{Kind: kind, X: x}
}

// Encode returns the instruction word of the opcode. It is the inverse of
// Decode, operand fields not used by the kind are ignored.
func (o Opcode) Encode() uint16 {
	x := uint16(o.X&0xF) << 8
	y := uint16(o.Y&0xF) << 4
	nn := uint16(o.NN)
	nnn := o.NNN & 0x0FFF

	switch o.Kind {
	case OpCls:
		return 0x00E0
	case OpRet:
		return 0x00EE
	case OpJp:
		return 0x1000 | nnn
	case OpCall:
		return 0x2000 | nnn
	case OpSeByte:
		return 0x3000 | x | nn
	case OpSneByte:
		return 0x4000 | x | nn
	case OpSeReg:
		return 0x5000 | x | y
	case OpLdByte:
		return 0x6000 | x | nn
	case OpAddByte:
		return 0x7000 | x | nn
	case OpLdReg:
		return 0x8000 | x | y
	case OpOr:
		return 0x8001 | x | y
	case OpAnd:
		return 0x8002 | x | y
	case OpXor:
		return 0x8003 | x | y
	case OpAdd:
		return 0x8004 | x | y
	case OpSub:
		return 0x8005 | x | y
	case OpShr:
		return 0x8006 | x | y
	case OpSubn:
		return 0x8007 | x | y
	case OpShl:
		return 0x800E | x | y
	case OpSneReg:
		return 0x9000 | x | y
	case OpLdI:
		return 0xA000 | nnn
	case OpJpV0:
		return 0xB000 | nnn
	case OpRnd:
		return 0xC000 | x | nn
	case OpDrw:
		return 0xD000 | x | y | uint16(o.N&0xF)
	case OpSkp:
		return 0xE09E | x
	case OpSknp:
		return 0xE0A1 | x
	case OpLdVxDT:
		return 0xF007 | x
	case OpLdVxK:
		return 0xF00A | x
	case OpLdDTVx:
		return 0xF015 | x
	case OpLdSTVx:
		return 0xF018 | x
	case OpAddI:
		return 0xF01E | x
	case OpLdF:
		return 0xF029 | x
	case OpLdB:
		return 0xF033 | x
	case OpStore:
		return 0xF055 | x
	case OpLoad:
		return 0xF065 | x
	default:
		return 0
	}
}
