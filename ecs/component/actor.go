package component

// Actor marks an entity that takes part in the per-frame physics pass.
// Lower Order runs first.
type Actor struct {
	Order int
}

var ActorComponent = NewComponent[Actor]()
