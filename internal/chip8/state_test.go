package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemory_Bounds(t *testing.T) {
	var mem Memory

	assert.NoError(t, mem.Write(0, 0x12))
	assert.NoError(t, mem.Write(MaxAddress, 0x34))

	b, err := mem.Read(MaxAddress)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x34), b)

	tests := []struct {
		name    string
		address int
	}{
		{"negative", -1},
		{"past end", MemorySize},
		{"far past end", 0xFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mem.Read(tt.address)
			var boundsErr *MemoryBoundsError
			assert.True(t, errors.As(err, &boundsErr))
			assert.Equal(t, tt.address, boundsErr.Address)

			assert.Error(t, mem.Write(tt.address, 1))
		})
	}
}

func TestMemory_ReadWord(t *testing.T) {
	var mem Memory
	assert.NoError(t, mem.Load(0x200, []byte{0x60, 0x05}))

	word, err := mem.ReadWord(0x200)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x6005), word)

	_, err = mem.ReadWord(MaxAddress)
	assert.Error(t, err)
}

func TestMemory_Block(t *testing.T) {
	var mem Memory

	// nothing is written when the block does not fit
	err := mem.Load(MaxAddress-1, []byte{1, 2, 3})
	assert.Error(t, err)
	b, err := mem.Read(MaxAddress - 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)

	assert.NoError(t, mem.Load(MaxAddress-2, []byte{1, 2, 3}))
	block, err := mem.ReadBlock(MaxAddress-2, 3)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, block)

	block, err = mem.ReadBlock(0x300, 0)
	assert.NoError(t, err)
	assert.Len(t, block, 0)

	_, err = mem.ReadBlock(MaxAddress, 2)
	assert.Error(t, err)
}

func TestStack(t *testing.T) {
	var s Stack
	assert.True(t, s.IsEmpty())

	assert.NoError(t, s.Push(0x202))
	assert.NoError(t, s.Push(0x304))

	top, err := s.Peek()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x304), top)

	b, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x304), b)
	a, err := s.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x202), a)
	assert.True(t, s.IsEmpty())

	_, err = s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	_, err = s.Peek()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
}

func TestStack_Overflow(t *testing.T) {
	var s Stack
	for i := range StackDepth {
		assert.NoError(t, s.Push(uint16(0x200+i*2)))
	}
	assert.True(t, s.IsFull())
	assert.Equal(t, StackDepth, s.Len())

	err := s.Push(0x400)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackDepth, s.Len())
}

func TestTimers(t *testing.T) {
	var timers Timers

	for range 10 {
		timers.Tick()
	}
	assert.Equal(t, byte(0), timers.Delay())
	assert.Equal(t, byte(0), timers.Sound())
	assert.False(t, timers.SoundActive())

	timers.SetDelay(3)
	timers.SetSound(1)
	assert.True(t, timers.SoundActive())

	timers.Tick()
	assert.Equal(t, byte(2), timers.Delay())
	assert.Equal(t, byte(0), timers.Sound())
	assert.False(t, timers.SoundActive())

	for range 5 {
		timers.Tick()
	}
	assert.Equal(t, byte(0), timers.Delay())
}

func TestRegisters(t *testing.T) {
	var r Registers

	r.Set(3, 0x42)
	assert.Equal(t, byte(0x42), r.Get(3))

	r.SetFlag(true)
	assert.Equal(t, byte(1), r.Flag())
	assert.Equal(t, byte(1), r.Get(FlagRegister))
	r.SetFlag(false)
	assert.Equal(t, byte(0), r.Flag())

	r.SetIndex(0xFFFF)
	assert.Equal(t, uint16(0xFFFF), r.Index())

	assert.Equal(t, "VA", Register(0xA).String())
}

func TestKeypad(t *testing.T) {
	var k Keypad

	_, ok := k.TakeLastPressed()
	assert.False(t, ok)

	k.Press(0x5)
	k.Press(0xA)
	assert.False(t, k.IsPressed(0x5))
	assert.True(t, k.IsPressed(0xA))

	key, ok := k.TakeLastPressed()
	assert.True(t, ok)
	assert.Equal(t, Key(0xA), key)
	_, ok = k.TakeLastPressed()
	assert.False(t, ok)

	// values outside of the keypad are never pressed
	assert.False(t, k.IsPressed(0x1A))
	assert.False(t, k.IsPressed(0xFF))

	k.Release(0xA)
	assert.False(t, k.IsPressed(0xA))

	k.Press(0x1)
	k.ReleaseAll()
	assert.False(t, k.IsPressed(0x1))
	key, ok = k.TakeLastPressed()
	assert.True(t, ok)
	assert.Equal(t, Key(0x1), key)

	k.Press(0x2)
	k.ClearLatch()
	_, ok = k.TakeLastPressed()
	assert.False(t, ok)
	assert.True(t, k.IsPressed(0x2))
}

func TestNewKey(t *testing.T) {
	key, err := NewKey(0xF)
	assert.NoError(t, err)
	assert.Equal(t, Key(0xF), key)
	assert.Equal(t, "F", key.String())

	_, err = NewKey(16)
	assert.True(t, errors.Is(err, ErrInvalidKey))
}

func TestDefaultKeymap(t *testing.T) {
	keymap := DefaultKeymap()
	assert.Len(t, keymap, KeyCount)

	tests := []struct {
		symbol rune
		key    Key
	}{
		{'1', 0x1}, {'2', 0x2}, {'3', 0x3}, {'4', 0xC},
		{'q', 0x4}, {'w', 0x5}, {'e', 0x6}, {'r', 0xD},
		{'a', 0x7}, {'s', 0x8}, {'d', 0x9}, {'f', 0xE},
		{'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
	}
	for _, tt := range tests {
		key, ok := keymap.Lookup(tt.symbol)
		assert.True(t, ok)
		assert.Equal(t, tt.key, key)
	}

	_, ok := keymap.Lookup('p')
	assert.False(t, ok)
}
