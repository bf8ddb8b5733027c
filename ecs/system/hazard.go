package system

import (
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
)

// PitDepth is the y below which the player has fallen into a pit.
const PitDepth = 272

// HazardSystem kills a player that dropped below the level floor.
type HazardSystem struct {
	env *behavior.Env
}

func NewHazardSystem(env *behavior.Env) *HazardSystem {
	return &HazardSystem{env: env}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ctx := behavior.Bind(w, s.env)
	if ctx.PlayerTransform == nil || ctx.PlayerTransform.Y <= PitDepth {
		return
	}
	behavior.KillPlayer(ctx, true)
}
