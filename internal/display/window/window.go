// Package window provides a display backend that renders the pixel buffer
// into a desktop window and reads key presses and releases from it.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/driver"
	"golang.org/x/image/font/basicfont"
)

var _ display.Surface = (*Display)(nil)
var _ display.StatusSetter = (*Display)(nil)
var _ ebiten.Game = (*Display)(nil)

// errNoCycle is returned by Update when Run was not called.
var errNoCycle = errors.New("no cycle function set")

const (
	statusBarHeight = 16
	bytesPerPixel   = 4
)

var (
	colorOn     = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	colorOff    = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	colorStatus = color.RGBA{R: 0x00, G: 0xDC, B: 0x5A, A: 0xFF}
)

// binding maps a keyboard key to an input symbol.
type binding struct {
	key    ebiten.Key
	symbol rune
}

// bindings are the keys of the default keymap plus the exit key.
var bindings = []binding{
	{ebiten.KeyDigit1, '1'}, {ebiten.KeyDigit2, '2'}, {ebiten.KeyDigit3, '3'}, {ebiten.KeyDigit4, '4'},
	{ebiten.KeyQ, 'q'}, {ebiten.KeyW, 'w'}, {ebiten.KeyE, 'e'}, {ebiten.KeyR, 'r'},
	{ebiten.KeyA, 'a'}, {ebiten.KeyS, 's'}, {ebiten.KeyD, 'd'}, {ebiten.KeyF, 'f'},
	{ebiten.KeyZ, 'z'}, {ebiten.KeyX, 'x'}, {ebiten.KeyC, 'c'}, {ebiten.KeyV, 'v'},
	{ebiten.KeyT, 't'},
}

// CycleFunc runs one emulation cycle with an optional key event.
type CycleFunc func(event *driver.KeyEvent) error

// Options configures the window.
type Options struct {
	Title         string
	Scale         int
	FrameInterval time.Duration
}

// Display renders the buffer into a window. All methods are called from
// the game loop goroutine.
type Display struct {
	display.Framebuffer

	opts   Options
	status string
	pixels []byte // RGBA copy of the buffer, updated on Render
	image  *ebiten.Image

	ctx    context.Context
	cycle  CycleFunc
	queue  []driver.KeyEvent
	frames uint64
}

// New returns a new window display.
func New(opts Options) *Display {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	d := &Display{
		opts:   opts,
		pixels: make([]byte, display.Width*display.Height*bytesPerPixel),
	}
	d.updatePixels()
	return d
}

// Render converts the buffer to the window pixels shown on the next draw.
func (d *Display) Render() error {
	d.updatePixels()
	d.frames++
	return nil
}

func (d *Display) updatePixels() {
	buf := d.Pixels()
	for y := range display.Height {
		for x := range display.Width {
			c := colorOff
			if buf[y][x] {
				c = colorOn
			}
			offset := (y*display.Width + x) * bytesPerPixel
			d.pixels[offset] = c.R
			d.pixels[offset+1] = c.G
			d.pixels[offset+2] = c.B
			d.pixels[offset+3] = c.A
		}
	}
}

// SetStatus sets the text shown in the status bar.
func (d *Display) SetStatus(status string) {
	d.status = status
}

// Run opens the window and calls cycle once per game tick until the
// window is closed, the context is cancelled or cycle returns an error.
// Errors that stop the driver without a failure end the run without error.
func (d *Display) Run(ctx context.Context, cycle CycleFunc) error {
	d.ctx = ctx
	d.cycle = cycle

	ebiten.SetWindowTitle(d.opts.Title)
	ebiten.SetWindowSize(display.Width*d.opts.Scale, display.Height*d.opts.Scale+statusBarHeight)
	ebiten.SetRunnableOnUnfocused(true)
	if d.opts.FrameInterval > 0 {
		ebiten.SetTPS(ticksPerSecond(d.opts.FrameInterval))
	}

	if err := ebiten.RunGame(d); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game and runs one emulation cycle.
func (d *Display) Update() error {
	if d.cycle == nil {
		return errNoCycle
	}
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}

	d.queue = appendKeyEvents(d.queue, inpututil.IsKeyJustPressed, inpututil.IsKeyJustReleased)

	var event *driver.KeyEvent
	if len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		event = &next
	}

	err := d.cycle(event)
	switch {
	case err == nil:
		return nil
	case driver.IsStop(err):
		return ebiten.Termination
	default:
		return err
	}
}

// Draw implements ebiten.Game and presents the last rendered frame.
func (d *Display) Draw(screen *ebiten.Image) {
	if d.image == nil {
		d.image = ebiten.NewImage(display.Width, display.Height)
	}
	d.image.WritePixels(d.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(d.opts.Scale), float64(d.opts.Scale))
	screen.DrawImage(d.image, op)

	if d.status != "" {
		baseline := display.Height*d.opts.Scale + statusBarHeight - 4
		text.Draw(screen, d.status, basicfont.Face7x13, 4, baseline, colorStatus)
	}
}

// Layout implements ebiten.Game.
func (d *Display) Layout(_, _ int) (int, int) {
	return display.Width * d.opts.Scale, display.Height*d.opts.Scale + statusBarHeight
}

// Frames returns the number of rendered frames.
func (d *Display) Frames() uint64 {
	return d.frames
}

// appendKeyEvents queues a press or release event for every bound key
// that changed state in the current tick.
func appendKeyEvents(queue []driver.KeyEvent, pressed, released func(ebiten.Key) bool) []driver.KeyEvent {
	for _, b := range bindings {
		if pressed(b.key) {
			queue = append(queue, driver.KeyEvent{Symbol: b.symbol})
		}
		if released(b.key) {
			queue = append(queue, driver.KeyEvent{Symbol: b.symbol, Released: true})
		}
	}
	return queue
}

func ticksPerSecond(interval time.Duration) int {
	tps := int((time.Second + interval/2) / interval)
	return max(tps, 1)
}
