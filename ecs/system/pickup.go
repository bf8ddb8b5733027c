package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

const pickupReach = 10

// PickupSystem collects every pizza within reach of a living player.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ctx := behavior.Bind(w, nil)
	if ctx.PlayerTransform == nil || ctx.PlayerState == nil || !ctx.PlayerAlive() {
		return
	}
	at := cp.Vector{X: ctx.PlayerTransform.X, Y: ctx.PlayerTransform.Y}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Pickup, t *component.Transform) {
		reach := cp.NewBBForExtents(cp.Vector{X: t.X, Y: t.Y}, pickupReach, pickupReach)
		if !reach.ContainsVect(at) {
			return
		}
		ecs.DestroyEntity(w, e)
		ctx.PlayerState.Pizzas++
		w.Events().Push(ecs.Event{Kind: ecs.EventPickup, Entity: e})
		w.Events().Sound("glug")
	})
}
