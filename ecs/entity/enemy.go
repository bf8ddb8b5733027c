package entity

import (
	"fmt"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

// NewEnemy turns a spawn request into a live enemy using its archetype.
func NewEnemy(w *ecs.World, catalog *prefabs.Catalog, req component.SpawnRequest, order int) (ecs.Entity, error) {
	spec, err := catalog.Archetype(req.Archetype)
	if err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	direction := spec.Direction
	if req.Direction != 0 {
		direction = req.Direction
	}

	state := component.NewBehavior(spec.Kind, spec.Name, req.X, req.Y)
	state.Script = spec.Script
	if req.Copy {
		state.SpawnCopies = false
	}
	if req.Radius != 0 {
		state.Radius = req.Radius
	}

	return build(w, "enemy "+spec.Name,
		with(component.TransformComponent.Kind(), &component.Transform{X: req.X, Y: req.Y}),
		with(component.BodyComponent.Kind(), &component.Body{
			MaxSpeedX:    spec.MaxSpeedX,
			MaxSpeedY:    spec.MaxSpeedY,
			Acceleration: spec.Acceleration,
			Gravity:      spec.Gravity,
			Direction:    direction,
			Invincible:   spec.Invincible,
			IgnoreBlocks: spec.IgnoreBlocks,
		}),
		with(component.AnimationComponent.Kind(), newAnimation(catalog, spec.Animation)),
		with(component.BehaviorComponent.Kind(), state),
		with(component.ActorComponent.Kind(), &component.Actor{Order: order}),
	)
}

// NewSpawnPoint records an enemy that activates when the camera gets close.
func NewSpawnPoint(w *ecs.World, name string, x, y float64) (ecs.Entity, error) {
	return build(w, "spawn point "+name,
		with(component.SpawnPointComponent.Kind(), &component.SpawnPoint{Name: name}),
		with(component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
	)
}
