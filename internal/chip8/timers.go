package chip8

// Timers holds the delay and sound timers. Both count down by one on every
// Tick until they reach zero. Tick should be called at 60Hz.
type Timers struct {
	delay byte
	sound byte
}

// Tick decrements both timers, neither goes below zero.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the delay timer.
func (t *Timers) Delay() byte {
	return t.delay
}

// SetDelay sets the delay timer.
func (t *Timers) SetDelay(value byte) {
	t.delay = value
}

// Sound returns the sound timer.
func (t *Timers) Sound() byte {
	return t.sound
}

// SetSound sets the sound timer.
func (t *Timers) SetSound(value byte) {
	t.sound = value
}

// SoundActive returns whether the sound timer is running.
func (t *Timers) SoundActive() bool {
	return t.sound > 0
}
