package component

// Pickup is a pizza waiting to be collected.
type Pickup struct {
	// Index is the position in the template's pizza list.
	Index int
}

var PickupComponent = NewComponent[Pickup]()
