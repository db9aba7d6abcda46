package chip8

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/display"
)

// execute applies a decoded opcode to the machine state. The program
// counter already points to the following instruction.
func (m *Machine) execute(op Opcode) error {
	r := &m.registers

	switch op.Kind {
	case OpCls:
		m.surface.Clear()
		m.dirty = true
	case OpRet:
		address, err := m.stack.Pop()
		if err != nil {
			return err
		}
		m.pc = address
	case OpJp:
		m.pc = op.NNN
	case OpJpV0:
		m.pc = op.NNN + uint16(r.Get(0))
	case OpCall:
		if err := m.stack.Push(m.pc); err != nil {
			return err
		}
		m.pc = op.NNN

	case OpSeByte:
		m.skipIf(r.Get(op.X) == op.NN)
	case OpSneByte:
		m.skipIf(r.Get(op.X) != op.NN)
	case OpSeReg:
		m.skipIf(r.Get(op.X) == r.Get(op.Y))
	case OpSneReg:
		m.skipIf(r.Get(op.X) != r.Get(op.Y))
	case OpSkp:
		m.skipIf(m.keypad.IsPressed(r.Get(op.X)))
	case OpSknp:
		m.skipIf(!m.keypad.IsPressed(r.Get(op.X)))

	case OpLdByte:
		r.Set(op.X, op.NN)
	case OpAddByte:
		r.Set(op.X, r.Get(op.X)+op.NN)
	case OpLdReg, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpSubn, OpShr, OpShl:
		m.executeALU(op)

	case OpLdI:
		r.SetIndex(op.NNN)
	case OpRnd:
		r.Set(op.X, byte(m.rng.Uint32())&op.NN)
	case OpDrw:
		return m.draw(op)

	default:
		return m.executeMisc(op)
	}
	return nil
}

// skipIf skips the next instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

// executeALU executes the 8xyn register arithmetic family. The flag is
// written after the result so that it wins when Vx is VF.
func (m *Machine) executeALU(op Opcode) {
	r := &m.registers
	vx, vy := r.Get(op.X), r.Get(op.Y)

	switch op.Kind {
	case OpLdReg:
		r.Set(op.X, vy)
	case OpOr:
		r.Set(op.X, vx|vy)
	case OpAnd:
		r.Set(op.X, vx&vy)
	case OpXor:
		r.Set(op.X, vx^vy)
	case OpAdd:
		sum := uint16(vx) + uint16(vy)
		r.Set(op.X, byte(sum))
		r.SetFlag(sum > 0xFF)
	case OpSub:
		r.Set(op.X, vx-vy)
		r.SetFlag(vx >= vy)
	case OpSubn:
		r.Set(op.X, vy-vx)
		r.SetFlag(vy >= vx)
	case OpShr:
		source := m.shiftSource(op)
		r.Set(op.X, source>>1)
		r.SetFlag(source&0x01 != 0)
	case OpShl:
		source := m.shiftSource(op)
		r.Set(op.X, source<<1)
		r.SetFlag(source&0x80 != 0)
	}
}

func (m *Machine) shiftSource(op Opcode) byte {
	if m.quirks.ShiftUsesVY {
		return m.registers.Get(op.Y)
	}
	return m.registers.Get(op.X)
}

// draw executes DRW Vx, Vy, n with the sprite of n bytes at I.
func (m *Machine) draw(op Opcode) error {
	r := &m.registers
	sprite, err := m.memory.ReadBlock(int(r.Index()), int(op.N))
	if err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}

	collision := display.DrawSprite(m.surface, r.Get(op.X), r.Get(op.Y), sprite)
	r.SetFlag(collision)
	m.dirty = true
	return nil
}

// executeMisc executes the Fxkk timer, keypad, index and memory family.
func (m *Machine) executeMisc(op Opcode) error {
	r := &m.registers

	switch op.Kind {
	case OpLdVxDT:
		r.Set(op.X, m.timers.Delay())
	case OpLdDTVx:
		m.timers.SetDelay(r.Get(op.X))
	case OpLdSTVx:
		m.timers.SetSound(r.Get(op.X))

	case OpLdVxK:
		m.waiting = true
		m.waitRegister = op.X
		m.keypad.ClearLatch()

	case OpAddI:
		sum := uint32(r.Index()) + uint32(r.Get(op.X))
		r.SetIndex(uint16(min(sum, MaxIndex)))
	case OpLdF:
		r.SetIndex(FontStart + uint16(r.Get(op.X)&0xF)*GlyphSize)

	case OpLdB:
		value := r.Get(op.X)
		digits := []byte{value / 100, value / 10 % 10, value % 10}
		if err := m.memory.Load(int(r.Index()), digits); err != nil {
			return fmt.Errorf("storing digits: %w", err)
		}

	case OpStore:
		count := int(op.X) + 1
		if err := m.memory.Load(int(r.Index()), r.v[:count]); err != nil {
			return fmt.Errorf("storing registers: %w", err)
		}
		if m.quirks.StoreClearsRegisters {
			clear(r.v[:count])
		}
	case OpLoad:
		data, err := m.memory.ReadBlock(int(r.Index()), int(op.X)+1)
		if err != nil {
			return fmt.Errorf("loading registers: %w", err)
		}
		copy(r.v[:], data)

	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidOpcode, op.Kind)
	}
	return nil
}
