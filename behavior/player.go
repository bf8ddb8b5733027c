package behavior

import (
	"math"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

// MoveLeft accelerates the player toward -MaxSpeedX.
func MoveLeft(b *component.Body, p *component.Player, dt float64) {
	if b.Dead || p.ControlsLocked {
		return
	}
	b.SpeedX = math.Max(-b.MaxSpeedX, b.SpeedX-b.Acceleration*dt)
}

// MoveRight accelerates the player toward MaxSpeedX.
func MoveRight(b *component.Body, p *component.Player, dt float64) {
	if b.Dead || p.ControlsLocked {
		return
	}
	b.SpeedX = math.Min(b.SpeedX+b.Acceleration*dt, b.MaxSpeedX)
}

// Stop decelerates toward zero without overshooting.
func Stop(b *component.Body, p *component.Player, dt float64) {
	if b.SpeedX < 0 {
		b.SpeedX = math.Min(b.SpeedX+p.Deceleration*dt, 0)
	} else if b.SpeedX > 0 {
		b.SpeedX = math.Max(0, b.SpeedX-p.Deceleration*dt)
	}
}

// Jump launches a grounded player. It reports whether the jump happened.
func Jump(b *component.Body, p *component.Player) bool {
	if b.Dead || p.ControlsLocked || !b.OnFloor || !p.JumpEnabled {
		return false
	}
	b.SpeedY = -p.JumpStrength
	b.OnFloor = false
	p.JumpEnabled = false
	p.Deceleration = 100
	return true
}

// JumpCancel halves upward speed once per jump.
func JumpCancel(b *component.Body, p *component.Player) bool {
	if b.Dead || b.SpeedY >= 0 || !p.JumpCancelEnabled {
		return false
	}
	b.SpeedY *= 0.5
	p.JumpCancelEnabled = false
	return true
}

// ApplyIntents runs one frame of the player controller against resolved
// intents, in the same order every frame: move, stop, jump, re-arm, cancel.
func ApplyIntents(ctx *Context, in component.Input) {
	b, p := ctx.Body, ctx.PlayerState
	if b == nil || p == nil {
		return
	}
	dt := ctx.Dt()

	switch {
	case in.Left && !in.Right:
		MoveLeft(b, p, dt)
	case in.Right && !in.Left:
		MoveRight(b, p, dt)
	}

	switch {
	case b.Dead,
		in.Left == in.Right,
		in.Left && b.SpeedX > 0,
		in.Right && b.SpeedX < 0:
		Stop(b, p, dt)
	}

	if in.Jump && Jump(b, p) {
		ctx.sound("jump")
	}

	if !in.Jump && b.OnFloor && !p.JumpEnabled {
		p.JumpEnabled = true
	}

	if !in.Jump {
		JumpCancel(b, p)
	}
}

// KillPlayer runs the player's death. Invincibility only protects against
// enemies; falling into a pit always kills.
func KillPlayer(ctx *Context, hole bool) bool {
	b := ctx.PlayerBody
	if ctx.IsPlayer() {
		b = ctx.Body
	}
	if b == nil || b.Dead {
		return false
	}
	if b.Invincible && !hole {
		return false
	}

	b.Dead = true
	b.IgnoreBlocks = true
	b.OnFloor = false
	b.SpeedX = 0
	if !hole {
		b.SpeedY = -240
	}
	ctx.sound("ouch")
	if ctx.Events != nil {
		ctx.Events.Push(ecs.Event{Kind: ecs.EventPlayerDied, Entity: ctx.Player, Hole: hole})
	}
	return true
}

func playerMoveX(ctx *Context) {
	b := ctx.Body
	ctx.Transform.X += b.SpeedX * ctx.Dt()
	if b.SpeedX < 0 {
		b.Direction = -1
	} else if b.SpeedX > 0 {
		b.Direction = 1
	}
}

func playerLanded(ctx *Context) {
	if p := ctx.PlayerState; p != nil {
		p.Deceleration = 1500
		p.JumpCancelEnabled = true
	}
}

func playerFell(ctx *Context) {
	if p := ctx.PlayerState; p != nil {
		p.Deceleration = 100
		p.JumpEnabled = false
	}
}
