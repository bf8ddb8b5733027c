package component

// Animation is a frame cycle advanced by delta time. Frames name sprites;
// directional animations get a Left or Right suffix when drawn.
type Animation struct {
	Name        string
	Frames      []string
	Frame       int
	Time        float64
	Speed       float64
	Directional bool
}

// Sprite returns the sprite name of the current frame for a facing direction.
func (a *Animation) Sprite(direction float64) string {
	if a == nil || len(a.Frames) == 0 {
		return ""
	}
	frame := a.Frame
	if frame < 0 || frame >= len(a.Frames) {
		frame = 0
	}
	name := a.Frames[frame]
	if !a.Directional {
		return name
	}
	if direction < 0 {
		return name + "Left"
	}
	return name + "Right"
}

var AnimationComponent = NewComponent[Animation]()
