package chip8

import "fmt"

// Key is a key of the hexadecimal keypad, 0x0-0xF.
type Key uint8

// NewKey returns the key for a register value.
func NewKey(value byte) (Key, error) {
	if value >= KeyCount {
		return 0, fmt.Errorf("%w: %d", ErrInvalidKey, value)
	}
	return Key(value), nil
}

func (k Key) String() string {
	return fmt.Sprintf("%X", uint8(k))
}

// Keymap binds input symbols to keypad keys.
type Keymap map[rune]Key

// DefaultKeymap returns the conventional QWERTY layout of the keypad:
//
//	1 2 3 4    1 2 3 C
//	q w e r    4 5 6 D
//	a s d f -> 7 8 9 E
//	z x c v    A 0 B F
func DefaultKeymap() Keymap {
	return Keymap{
		'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
		'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
		'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
		'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
	}
}

// Lookup returns the key bound to a symbol.
func (m Keymap) Lookup(symbol rune) (Key, bool) {
	key, ok := m[symbol]
	return key, ok
}

// Keypad tracks which key is held down and latches the last pressed key.
// At most one key is considered pressed at a time.
type Keypad struct {
	keys    [KeyCount]bool
	last    Key
	latched bool
}

// Press marks the key as the only pressed key and latches it.
func (k *Keypad) Press(key Key) {
	k.keys = [KeyCount]bool{}
	k.keys[key&0xF] = true
	k.last = key & 0xF
	k.latched = true
}

// Release marks the key as released. The latch is kept.
func (k *Keypad) Release(key Key) {
	k.keys[key&0xF] = false
}

// ReleaseAll marks all keys as released. The latch is kept.
func (k *Keypad) ReleaseAll() {
	k.keys = [KeyCount]bool{}
}

// IsPressed returns whether the key for a register value is pressed.
// Values outside of the keypad are never pressed.
func (k *Keypad) IsPressed(value byte) bool {
	key, err := NewKey(value)
	if err != nil {
		return false
	}
	return k.keys[key]
}

// TakeLastPressed returns and clears the latched key.
func (k *Keypad) TakeLastPressed() (Key, bool) {
	if !k.latched {
		return 0, false
	}
	k.latched = false
	return k.last, true
}

// ClearLatch drops a latched key without consuming it.
func (k *Keypad) ClearLatch() {
	k.latched = false
}
