package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
)

const contactReach = 12

// ContactSystem resolves player and enemy touches: a stomp from above kills
// the enemy, anything else kills the player.
type ContactSystem struct {
	env *behavior.Env
}

func NewContactSystem(env *behavior.Env) *ContactSystem {
	return &ContactSystem{env: env}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ctx := behavior.Bind(w, s.env)
	if ctx.PlayerTransform == nil || ctx.PlayerBody == nil || ctx.PlayerState == nil {
		return
	}
	pt, pb, ps := ctx.PlayerTransform, ctx.PlayerBody, ctx.PlayerState

	for _, e := range liveActors(w) {
		if e == ctx.Player || !ecs.IsAlive(w, e) || !ctx.Focus(e) || ctx.State == nil {
			continue
		}
		if ctx.Body.Dead || pb.Dead {
			continue
		}
		reach := cp.NewBBForExtents(cp.Vector{X: ctx.Transform.X, Y: ctx.Transform.Y}, contactReach, contactReach)
		if !reach.ContainsVect(cp.Vector{X: pt.X, Y: pt.Y}) {
			continue
		}

		if ctx.Body.Invincible || pb.SpeedY <= 0 || pt.Y >= ctx.Transform.Y {
			behavior.KillPlayer(ctx, false)
			continue
		}

		behavior.Kill(ctx)
		w.Events().Push(ecs.Event{Kind: ecs.EventStomp, Entity: e, Name: ctx.State.Archetype})
		w.Events().Sound("stomp")
		pb.SpeedY = -ps.JumpStrength
		ps.JumpCancelEnabled = true
	}
}
