package system

import (
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

// DespawnDepth is the y below which actors leave the level.
const DespawnDepth = 512

// DespawnSystem removes actors that fell out of the level. The player entity
// is kept for its state and only leaves the actor list.
type DespawnSystem struct {
	env *behavior.Env
}

func NewDespawnSystem(env *behavior.Env) *DespawnSystem {
	return &DespawnSystem{env: env}
}

func (s *DespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Actor, t *component.Transform) {
		if t.Y <= DespawnDepth {
			return
		}
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			ecs.Remove(w, e, component.ActorComponent.Kind())
			return
		}
		destroy(w, s.env, e)
	})
}
