package chip8

import (
	"fmt"
	"strings"
)

// String returns the assembly representation of the opcode,
// for example "LD V1, $2A" or "DRW V0, V1, $5".
func (o Opcode) String() string {
	ins := o.Instruction()
	if ins == nil {
		return fmt.Sprintf("invalid opcode kind %d", o.Kind)
	}

	name := strings.ToUpper(ins.Name)
	if params := o.formatParams(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatParams formats the operands of the opcode.
func (o Opcode) formatParams() string {
	switch o.Kind {
	case OpCls, OpRet:
		return "" // No parameters
	case OpJp, OpCall:
		return formatAddress(o.NNN)
	case OpJpV0:
		return "V0, " + formatAddress(o.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("%s, $%02X", o.X, o.NN)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubn:
		return formatRegisterPair(o.X, o.Y)
	case OpShr, OpShl:
		return o.formatShift()
	case OpLdI:
		return "I, " + formatAddress(o.NNN)
	case OpDrw:
		return fmt.Sprintf("%s, %s, $%X", o.X, o.Y, o.N)
	case OpSkp, OpSknp:
		return o.X.String()
	default:
		return o.formatMisc()
	}
}

// formatShift formats shift instructions (SHR Vx, SHL Vx, Vy).
// The second register is only printed when it is not V0, as it is only
// read with the ShiftUsesVY quirk.
func (o Opcode) formatShift() string {
	if o.Y == 0 {
		return o.X.String()
	}
	return formatRegisterPair(o.X, o.Y)
}

// formatMisc formats the timer, keypad, index and memory instructions of the
// Fxkk family.
func (o Opcode) formatMisc() string {
	switch o.Kind {
	case OpLdVxDT:
		return fmt.Sprintf("%s, DT", o.X)
	case OpLdVxK:
		return fmt.Sprintf("%s, K", o.X)
	case OpLdDTVx:
		return fmt.Sprintf("DT, %s", o.X)
	case OpLdSTVx:
		return fmt.Sprintf("ST, %s", o.X)
	case OpAddI:
		return fmt.Sprintf("I, %s", o.X)
	case OpLdF:
		return fmt.Sprintf("F, %s", o.X)
	case OpLdB:
		return fmt.Sprintf("B, %s", o.X)
	case OpStore:
		return fmt.Sprintf("[I], %s", o.X)
	case OpLoad:
		return fmt.Sprintf("%s, [I]", o.X)
	}
	return ""
}

func formatAddress(address uint16) string {
	return fmt.Sprintf("$%03X", address&0x0FFF)
}

func formatRegisterPair(x, y Register) string {
	return fmt.Sprintf("%s, %s", x, y)
}
