package component

type Player struct {
	Pizzas            int
	Deceleration      float64
	JumpStrength      float64
	JumpEnabled       bool
	JumpCancelEnabled bool
	// ControlsLocked disarms move and jump after the boss falls.
	ControlsLocked bool
	// Finished is set once the player touches the end flag.
	Finished bool
}

var PlayerComponent = NewComponent[Player]()
