package component

// Body holds the kinematic state integrated by the physics system.
type Body struct {
	SpeedX       float64
	SpeedY       float64
	MaxSpeedX    float64
	MaxSpeedY    float64
	Acceleration float64
	Gravity      float64
	// Direction is -1 (left) or 1 (right).
	Direction    float64
	OnFloor      bool
	Dead         bool
	Invincible   bool
	IgnoreBlocks bool
}

var BodyComponent = NewComponent[Body]()
