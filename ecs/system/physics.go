package system

import (
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
)

// PhysicsSystem integrates every live actor against the tile grid and runs
// its behavior hooks.
type PhysicsSystem struct {
	env *behavior.Env
}

func NewPhysicsSystem(env *behavior.Env) *PhysicsSystem {
	return &PhysicsSystem{env: env}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	geo, ok := levelGeometry(w)
	if !ok {
		return
	}

	ctx := behavior.Bind(w, s.env)
	for _, e := range liveActors(w) {
		if !ecs.IsAlive(w, e) || !ctx.Focus(e) {
			continue
		}
		step(ctx, geo)
	}
}
