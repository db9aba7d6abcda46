package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// Options configures a Machine.
type Options struct {
	Quirks Quirks

	// Keymap binds input symbols to keypad keys, DefaultKeymap if nil.
	Keymap Keymap

	// Seed initializes the random number generator of RND. A zero seed
	// picks a random one.
	Seed uint64
}

// Machine is a CHIP-8 virtual machine. It owns all state and is not safe
// for concurrent use.
type Machine struct {
	logger  *log.Logger
	surface display.Surface
	quirks  Quirks
	keymap  Keymap
	rng     *rand.Rand

	memory    Memory
	registers Registers
	stack     Stack
	timers    Timers
	keypad    Keypad

	pc     uint16
	cycles uint64

	// waiting is set by LD Vx, K until a key press resolves it.
	waiting      bool
	waitRegister Register

	dirty bool  // display changed since the last render
	err   error // first fatal error, returned by every later step
}

// New returns a new machine drawing to the given surface. The font is
// loaded and the program counter points to ProgramStart.
func New(logger *log.Logger, surface display.Surface, opts Options) *Machine {
	keymap := opts.Keymap
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	m := &Machine{
		logger:  logger,
		surface: surface,
		quirks:  opts.Quirks,
		keymap:  keymap,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		pc:      ProgramStart,
		dirty:   true,
	}
	copy(m.memory.data[FontStart:], font[:])
	surface.Clear()
	return m
}

// Load copies the program into memory at ProgramStart.
func (m *Machine) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the maximum of %d bytes",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	if err := m.memory.Load(ProgramStart, program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	m.logger.Debug("Program loaded", log.Int("size", len(program)))
	return nil
}

// Step executes a single instruction. While the machine waits for a key
// press, Step only checks the keypad latch and fetches nothing.
// After the first error the machine is stopped and Step keeps returning it.
func (m *Machine) Step() error {
	if m.err != nil {
		return m.err
	}
	if m.waiting {
		m.resolveKeyWait()
		return nil
	}

	address := m.pc
	word, err := m.memory.ReadWord(int(address))
	if err != nil {
		return m.fail(fmt.Errorf("fetching instruction at $%03X: %w", address, err))
	}
	m.pc += opcodeSize

	op, err := Decode(word)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.Address = address
		}
		return m.fail(err)
	}

	m.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Stringer("instruction", op))

	if err := m.execute(op); err != nil {
		return m.fail(fmt.Errorf("executing %s at $%03X: %w", op, address, err))
	}
	m.cycles++
	return nil
}

func (m *Machine) fail(err error) error {
	m.err = err
	return err
}

// resolveKeyWait ends a pending key wait if a key press was latched.
func (m *Machine) resolveKeyWait() {
	key, ok := m.keypad.TakeLastPressed()
	if !ok {
		return
	}
	m.registers.Set(m.waitRegister, byte(key))
	m.waiting = false
	m.logger.Debug("Key wait resolved",
		log.Stringer("register", m.waitRegister),
		log.Stringer("key", key))
}

// Tick decrements the delay and sound timers.
func (m *Machine) Tick() {
	m.timers.Tick()
}

// Err returns the fatal error that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

// WaitingForKey returns the target register of a pending LD Vx, K.
func (m *Machine) WaitingForKey() (Register, bool) {
	return m.waitRegister, m.waiting
}

// PressKey marks the key as pressed.
func (m *Machine) PressKey(key Key) {
	m.keypad.Press(key)
}

// ReleaseKey marks the key as released.
func (m *Machine) ReleaseKey(key Key) {
	m.keypad.Release(key)
}

// ReleaseKeys marks all keys as released.
func (m *Machine) ReleaseKeys() {
	m.keypad.ReleaseAll()
}

// PressSymbol presses the key bound to the input symbol. It returns false
// for unmapped symbols, which are ignored.
func (m *Machine) PressSymbol(symbol rune) bool {
	key, ok := m.keymap.Lookup(symbol)
	if !ok {
		return false
	}
	m.keypad.Press(key)
	return true
}

// ReleaseSymbol releases the key bound to the input symbol.
func (m *Machine) ReleaseSymbol(symbol rune) bool {
	key, ok := m.keymap.Lookup(symbol)
	if !ok {
		return false
	}
	m.keypad.Release(key)
	return true
}

// IsKeyPressed returns whether the key is held down.
func (m *Machine) IsKeyPressed(key Key) bool {
	return m.keypad.IsPressed(byte(key))
}

// ProgramCounter returns the address of the next instruction.
func (m *Machine) ProgramCounter() uint16 {
	return m.pc
}

// Cycles returns the number of executed instructions.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// V returns the value of register Vx.
func (m *Machine) V(x Register) byte {
	return m.registers.Get(x)
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.registers.Index()
}

// StackLen returns the number of pending subroutine returns.
func (m *Machine) StackLen() int {
	return m.stack.Len()
}

// DelayTimer returns the delay timer.
func (m *Machine) DelayTimer() byte {
	return m.timers.Delay()
}

// SoundTimer returns the sound timer.
func (m *Machine) SoundTimer() byte {
	return m.timers.Sound()
}

// SoundActive returns whether a sound should currently be played.
func (m *Machine) SoundActive() bool {
	return m.timers.SoundActive()
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address int) (byte, error) {
	return m.memory.Read(address)
}

// Display returns a copy of the current display buffer.
func (m *Machine) Display() display.Buffer {
	return *m.surface.Pixels()
}

// Redraw forces the next Render call to present the display,
// for example after a status line change.
func (m *Machine) Redraw() {
	m.dirty = true
}

// Render presents the display if it changed since the last render.
func (m *Machine) Render() error {
	if !m.dirty {
		return nil
	}
	if err := m.surface.Render(); err != nil {
		return fmt.Errorf("rendering display: %w", err)
	}
	m.dirty = false
	return nil
}
