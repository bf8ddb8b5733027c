package component

// Transform is the world position of an entity's feet. Y grows downward.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
