package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type testSurface struct {
	Framebuffer
}

func (s *testSurface) Render() error { return nil }

var _ Surface = (*testSurface)(nil)

func TestDrawSprite_Twice(t *testing.T) {
	s := &testSurface{}
	sprite := []byte{0xF0, 0x90, 0xF0}

	assert.False(t, DrawSprite(s, 10, 5, sprite))
	assert.Equal(t, 10, Count(s.Pixels()))
	assert.True(t, s.Pixels()[5][10])
	assert.True(t, s.Pixels()[6][13])
	assert.False(t, s.Pixels()[6][11])

	assert.True(t, DrawSprite(s, 10, 5, sprite))
	assert.Equal(t, 0, Count(s.Pixels()))
}

func TestDrawSprite_Wrap(t *testing.T) {
	s := &testSurface{}

	assert.False(t, DrawSprite(s, 60, 31, []byte{0xFF, 0x81}))

	buf := s.Pixels()
	for x := 60; x < Width; x++ {
		assert.True(t, buf[31][x])
	}
	for x := range 4 {
		assert.True(t, buf[31][x])
	}
	assert.True(t, buf[0][60])
	assert.True(t, buf[0][3])
	assert.False(t, buf[0][0])
	assert.Equal(t, 10, Count(buf))
}

func TestDrawSprite_KeepsOtherPixels(t *testing.T) {
	s := &testSurface{}
	s.Pixels()[20][20] = true

	assert.False(t, DrawSprite(s, 0, 0, []byte{0x80}))
	assert.True(t, s.Pixels()[20][20])

	// partial overlap reports a collision
	assert.True(t, DrawSprite(s, 0, 0, []byte{0xC0}))
	assert.False(t, s.Pixels()[0][0])
	assert.True(t, s.Pixels()[0][1])
}

func TestFramebuffer_Clear(t *testing.T) {
	s := &testSurface{}
	DrawSprite(s, 0, 0, []byte{0xFF, 0xFF})
	assert.Equal(t, 16, Count(s.Pixels()))

	s.Clear()
	assert.Equal(t, 0, Count(s.Pixels()))
}

func TestFormat(t *testing.T) {
	var buf Buffer
	buf[0][0] = true
	buf[1][63] = true

	text := Format(&buf, '#', '.', "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "#"+strings.Repeat(".", Width-1), lines[0])
	assert.Equal(t, strings.Repeat(".", Width-1)+"#", lines[1])
}
