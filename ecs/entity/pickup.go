package entity

import (
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

func NewPickup(w *ecs.World, index int, x, y float64) (ecs.Entity, error) {
	return build(w, "pickup",
		with(component.PickupComponent.Kind(), &component.Pickup{Index: index}),
		with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
	)
}
