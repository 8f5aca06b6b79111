package state

import "time"

// Clock is the pausable simulation clock. While paused, Tick reports a zero
// delta so timers and scrolling freeze.
type Clock struct {
	paused  bool
	delta   time.Duration
	elapsed time.Duration
}

func NewClock() *Clock {
	return &Clock{}
}

// Tick advances the clock by one frame of real time.
func (c *Clock) Tick(frame time.Duration) {
	if c.paused || frame < 0 {
		c.delta = 0
		return
	}
	c.delta = frame
	c.elapsed += frame
}

func (c *Clock) Delta() time.Duration { return c.delta }
func (c *Clock) Elapsed() time.Duration { return c.elapsed }
func (c *Clock) Paused() bool { return c.paused }

func (c *Clock) Pause() {
	c.paused = true
	c.delta = 0
}

func (c *Clock) Unpause() {
	c.paused = false
}
