package system

import (
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

// ControlSystem feeds the player's resolved intents into the controller.
type ControlSystem struct {
	env *behavior.Env
}

func NewControlSystem(env *behavior.Env) *ControlSystem {
	return &ControlSystem{env: env}
}

func (s *ControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ctx := behavior.Bind(w, s.env)
	if !ctx.Player.Valid() || !ctx.Focus(ctx.Player) {
		return
	}
	in, ok := ecs.Get(w, ctx.Player, component.InputComponent.Kind())
	if !ok {
		return
	}
	behavior.ApplyIntents(ctx, *in)
}
