package behavior

import (
	"math"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

var (
	bossFireDelays = [...]float64{0.2, 1, 1, 1, 2}
	bossJumpDelays = [...]float64{0.25, 0.5, 0.5, 1}
)

func (c *Context) pick(options []float64) float64 {
	if c.Env == nil || c.Env.Rand == nil {
		return options[0]
	}
	return options[c.Env.Rand.IntN(len(options))]
}

func bossAction(ctx *Context) {
	s, b, t := ctx.State, ctx.Body, ctx.Transform
	if s == nil {
		return
	}
	dt := ctx.Dt()

	if t.X < s.OriginX-s.MovementLimit {
		s.MovementDirection = 1
	} else if t.X > s.OriginX+s.MovementLimit {
		s.MovementDirection = -1
	}

	faceToward(ctx, 4)

	if s.JumpTimer > 0 {
		s.JumpTimer -= dt
	}
	if s.JumpTimer <= 0 && b.OnFloor {
		b.OnFloor = false
		b.SpeedY = -200
		SetAnimation(ctx.Anim, ctx.catalog(), "bossJump")
	}

	if s.FireTimer > 0 {
		s.FireTimer -= dt
	}
	if s.FireTimer <= 0 && !b.Dead && !ctx.playerDead() {
		ctx.Queue.Spawn(component.SpawnRequest{
			Archetype: "Fireball",
			X:         t.X + b.Direction*14,
			Y:         t.Y,
			Direction: b.Direction,
		})
		s.FireTimer = ctx.pick(bossFireDelays[:])
	}
}

// bossMoveX patrols on the ground and damps horizontal speed in the air.
func bossMoveX(ctx *Context) {
	s, b := ctx.State, ctx.Body
	dt := ctx.Dt()
	if !b.OnFloor {
		b.SpeedX -= b.SpeedX * dt * 2
	} else {
		dir := -1.0
		if s != nil {
			dir = s.MovementDirection
		}
		b.SpeedX += b.Acceleration * dir * dt
		b.SpeedX = math.Min(math.Max(-b.MaxSpeedX, b.SpeedX), b.MaxSpeedX)
	}
	ctx.Transform.X += b.SpeedX * dt
}

func bossLanded(ctx *Context) {
	SetAnimation(ctx.Anim, ctx.catalog(), "bossMoving")
	if ctx.State != nil {
		ctx.State.JumpTimer = ctx.pick(bossJumpDelays[:])
	}
}

// bossDie freezes the clock, hands the player a locked victory pose and
// reports the win. The session schedules the follow-up transitions.
func bossDie(ctx *Context) {
	b := ctx.Body

	if ctx.Clock != nil {
		ctx.Clock.Stopped = true
	}
	if pb := ctx.PlayerBody; pb != nil {
		pb.Dead = false
		pb.Invincible = true
		pb.IgnoreBlocks = false
		pb.SpeedX = 0
	}
	if ctx.PlayerState != nil {
		ctx.PlayerState.ControlsLocked = true
	}

	SetAnimation(ctx.Anim, ctx.catalog(), "bossDead")
	b.Dead = true
	b.IgnoreBlocks = true
	b.OnFloor = false
	b.SpeedX = 0
	b.SpeedY = -80

	if ctx.Events != nil {
		ctx.Events.Push(ecs.Event{Kind: ecs.EventMusicStop})
		ctx.Events.Push(ecs.Event{Kind: ecs.EventBossDefeated, Entity: ctx.Entity})
	}
}
