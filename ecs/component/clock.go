package component

// Clock carries the frame delta and the in-level game time.
type Clock struct {
	Delta    float64
	GameTime float64
	Stopped  bool
}

var ClockComponent = NewComponent[Clock]()
