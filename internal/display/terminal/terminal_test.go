package terminal

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func TestDisplay_Render(t *testing.T) {
	var out bytes.Buffer
	d := New(&out)

	display.DrawSprite(d, 62, 0, []byte{0xF0})
	d.SetStatus("Waiting...")
	assert.NoError(t, d.Render())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, cursorHome))

	rows := strings.Split(strings.TrimPrefix(text, cursorHome), newline)
	assert.Len(t, rows, display.Height+1)
	for _, row := range rows[:display.Height] {
		assert.Equal(t, display.Width, utf8.RuneCountInString(row))
	}

	first := []rune(rows[0])
	assert.Equal(t, pixelOn, first[0])
	assert.Equal(t, pixelOn, first[1])
	assert.Equal(t, pixelOff, first[2])
	assert.Equal(t, pixelOn, first[63])

	assert.Equal(t, clearLine+"Waiting...", rows[display.Height])
}

func TestDisplay_StartStop(t *testing.T) {
	var out bytes.Buffer
	d := New(&out)

	assert.NoError(t, d.Start())
	assert.Contains(t, out.String(), hideCursor)

	out.Reset()
	assert.NoError(t, d.Stop())
	assert.Contains(t, out.String(), showCursor)
}
