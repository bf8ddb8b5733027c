package component

import "math"

// CameraHalfWidth is half the visible window in world units.
const CameraHalfWidth = 128

// Camera is the horizontal view window derived from the player each frame.
type Camera struct {
	X     float64
	Left  float64
	Right float64
	OldX  float64
	Speed float64
}

// Follow centres the window on x, keeping it inside [0, levelWidth]. Speed
// is the scroll speed since the last call; a non-positive dt reports zero.
func (c *Camera) Follow(x, levelWidth, dt float64) {
	c.X = math.Min(math.Max(CameraHalfWidth, x), levelWidth-CameraHalfWidth)
	c.Left = c.X - CameraHalfWidth
	c.Right = c.X + CameraHalfWidth
	if dt > 0 {
		c.Speed = (c.X - c.OldX) / dt
	} else {
		c.Speed = 0
	}
	c.OldX = c.X
}

var CameraComponent = NewComponent[Camera]()
