// Package display provides the CHIP-8 display capability and the sprite
// compositing algorithm shared by all display backends.
package display

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Buffer is the monochrome pixel buffer, indexed [y][x].
type Buffer [Height][Width]bool

// Surface is the minimal interface that display backends implement.
// Backends are adapters passed to the machine at construction, sprite
// drawing is implemented once by DrawSprite on top of Pixels.
type Surface interface {
	// Pixels returns the mutable pixel buffer of the surface.
	Pixels() *Buffer
	// Clear resets every pixel.
	Clear()
	// Render presents the current buffer.
	Render() error
}

// StatusSetter is implemented by surfaces that can show a status line.
type StatusSetter interface {
	SetStatus(status string)
}

// DrawSprite composites a sprite onto the surface at x, y by XOR-ing every
// set bit, most significant bit first. Coordinates wrap around the opposite
// edges. It returns whether any pixel was switched from set to unset.
func DrawSprite(s Surface, x, y uint8, sprite []byte) bool {
	buf := s.Pixels()
	collision := false

	for row, b := range sprite {
		py := (int(y) + row) % Height

		for bit := range 8 {
			if b&(0x80>>bit) == 0 {
				continue
			}

			px := (int(x) + bit) % Width
			pixel := &buf[py][px]
			if *pixel {
				collision = true
			}
			*pixel = !*pixel
		}
	}

	return collision
}

// Framebuffer implements the buffer handling part of Surface and is meant to
// be embedded by backends.
type Framebuffer struct {
	buf Buffer
}

// Pixels returns the mutable pixel buffer.
func (f *Framebuffer) Pixels() *Buffer {
	return &f.buf
}

// Clear resets every pixel.
func (f *Framebuffer) Clear() {
	f.buf = Buffer{}
}

// Format renders the buffer as text, one line per row.
func Format(buf *Buffer, on, off rune, newline string) string {
	var sb strings.Builder
	sb.Grow(Height * (Width*3 + len(newline)))

	for y := range Height {
		for x := range Width {
			if buf[y][x] {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteString(newline)
	}
	return sb.String()
}

// Count returns the number of set pixels.
func Count(buf *Buffer) int {
	n := 0
	for y := range Height {
		for x := range Width {
			if buf[y][x] {
				n++
			}
		}
	}
	return n
}
