package session

import "time"

const fpsSamples = 5

// FrameClock turns display timestamps into frame deltas.
type FrameClock struct {
	previous time.Duration
	fix      bool
	fps      [fpsSamples]float64
}

func NewFrameClock() *FrameClock {
	return &FrameClock{fix: true}
}

// Fix makes the next tick report a single millisecond, so time spent
// loading or paused does not reach the simulation.
func (c *FrameClock) Fix() {
	c.fix = true
}

// Tick returns the seconds elapsed since the previous tick.
func (c *FrameClock) Tick(now time.Duration) float64 {
	if c.fix {
		c.previous = now - time.Millisecond
		c.fix = false
	}
	dt := (now - c.previous).Seconds()
	c.previous = now
	if dt > 0 {
		copy(c.fps[1:], c.fps[:fpsSamples-1])
		c.fps[0] = 1 / dt
	}
	return dt
}

// FPS is the average rate over the last few ticks.
func (c *FrameClock) FPS() int {
	var sum float64
	for _, v := range c.fps {
		sum += v
	}
	return int(sum/fpsSamples + 0.5)
}
