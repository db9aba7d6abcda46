// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted programming language from the 1970s designed for
// simple games. The virtual machine consists of:
//   - 4KB of memory (0x000-MaxAddress), programs load at ProgramStart (0x200)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register I
//   - a 16 entry return address stack
//   - delay and sound timers counting down at an external cadence
//   - a 16 key hexadecimal keypad
//   - a 64x32 monochrome display, see the display package
//
// # Execution Model
//
// Execution is split in two pure/effectful stages: Decode turns an
// instruction word into an Opcode value, Machine executes it. The machine is
// single threaded and never blocks. Waiting for a key press (LD Vx, K) is
// recorded as explicit state that the driver inspects every cycle:
//
//	m := chip8.New(logger, surface, chip8.Options{})
//	if err := m.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		m.Tick()
//		if symbol, ok := poll(); ok {
//			m.PressSymbol(symbol)
//		}
//		if err := m.Step(); err != nil {
//			return err
//		}
//	}
//
// # Errors
//
// Decode errors, memory bounds violations and stack overflows/underflows are
// fatal. The machine stops at the first one and keeps returning it.
//
// # Quirks
//
// Historical interpreters disagree on the shift instructions and on the
// register store instruction. Both variants are selectable through Quirks,
// the zero value keeps the behavior of most modern interpreters.
package chip8
