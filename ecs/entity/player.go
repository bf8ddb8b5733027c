package entity

import (
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

// NewPlayerAt creates the player standing at (x, y). The player always runs
// first in the physics pass.
func NewPlayerAt(w *ecs.World, catalog *prefabs.Catalog, x, y float64) (ecs.Entity, error) {
	spec := catalog.Player
	return build(w, "player",
		with(component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
		with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
		with(component.BodyComponent.Kind(), &component.Body{
			MaxSpeedX:    spec.MaxSpeedX,
			MaxSpeedY:    spec.MaxSpeedY,
			Acceleration: spec.Acceleration,
			Gravity:      spec.Gravity,
			Direction:    1,
		}),
		with(component.AnimationComponent.Kind(), newAnimation(catalog, spec.Animation)),
		with(component.ActorComponent.Kind(), &component.Actor{Order: 0}),
		with(component.PlayerComponent.Kind(), &component.Player{
			Deceleration:      spec.Deceleration,
			JumpStrength:      spec.JumpStrength,
			JumpCancelEnabled: true,
		}),
		with(component.InputComponent.Kind(), &component.Input{}),
	)
}
