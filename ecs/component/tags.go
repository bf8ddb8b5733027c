package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// AmbientTag marks the shared animations (pizza, flag, water, lava).
type AmbientTag struct{}

var AmbientTagComponent = NewComponent[AmbientTag]()
