package behavior

import (
	"math"

	"github.com/milk9111/mitchbros/ecs/component"
)

func bounce(ctx *Context) {
	ctx.Body.OnFloor = false
	ctx.Body.SpeedY = -200
}

func faceRight(ctx *Context) { ctx.Body.Direction = 1 }

func faceLeft(ctx *Context) { ctx.Body.Direction = -1 }

func despawn(ctx *Context) {
	ctx.Queue.Remove(uint64(ctx.Entity))
}

// flipGravity inverts gravity once vertical speed saturates, which makes the
// entity bob up and down.
func flipGravity(b *component.Body, g float64) {
	if b.SpeedY >= b.MaxSpeedY {
		b.Gravity = -g
	} else if b.SpeedY <= -b.MaxSpeedY {
		b.Gravity = g
	}
}

// faceToward turns toward the player once it is outside the dead zone.
func faceToward(ctx *Context, deadZone float64) {
	px := ctx.playerX()
	if ctx.Transform.X < px-deadZone {
		ctx.Body.Direction = 1
	} else if ctx.Transform.X > px+deadZone {
		ctx.Body.Direction = -1
	}
}

func hover(g float64) Hook {
	return func(ctx *Context) {
		flipGravity(ctx.Body, g)
		faceToward(ctx, 8)
	}
}

// leap relaunches the entity from below the screen, a sawtooth patrol used
// by fish and jumping fire.
func leap(speed float64) Hook {
	return func(ctx *Context) {
		if ctx.Body.SpeedY < 0 {
			ctx.Body.Direction = -1
		} else {
			ctx.Body.Direction = 1
		}
		if ctx.Transform.Y >= 320 {
			ctx.Transform.Y = 272
			ctx.Body.SpeedY = speed
		}
	}
}

func ghost(ctx *Context) {
	ctx.Body.SpeedX = math.Min(-64, ctx.Camera.Speed-32)
	flipGravity(ctx.Body, 400)
}

func teleportLeft(ctx *Context) {
	if ctx.State == nil || !ctx.State.TeleportPending {
		return
	}
	ctx.Transform.X = ctx.Camera.Left - 8
	ctx.State.TeleportPending = false
}

func reverseGhost(ctx *Context) {
	teleportLeft(ctx)
	ctx.Body.SpeedX = math.Max(128, ctx.Camera.Speed+64)
	flipGravity(ctx.Body, 400)
}

func angryGhost(ctx *Context) {
	teleportLeft(ctx)

	b := ctx.Body
	target := math.Min(math.Max(40, math.Abs(ctx.Transform.X-ctx.playerX())*8), 180)
	lerp := 1 - math.Pow(0.1, ctx.Dt())
	b.MaxSpeedX += (target - b.MaxSpeedX) * lerp

	faceToward(ctx, 4)

	py := ctx.playerY()
	if ctx.Transform.Y < py-16 {
		b.Gravity = 400
	} else if ctx.Transform.Y > py-8 {
		b.Gravity = -400
	}
}

var firebarCopies = [...]float64{8, 14, 20}

func firebar(ctx *Context) {
	s := ctx.State
	if s == nil {
		return
	}
	if s.SpawnCopies {
		for _, r := range firebarCopies {
			ctx.Queue.Spawn(component.SpawnRequest{
				Archetype: s.Archetype,
				X:         ctx.Transform.X,
				Y:         ctx.Transform.Y,
				Front:     true,
				Radius:    r,
				Copy:      true,
			})
		}
		s.SpawnCopies = false
	}
	angle := FirebarAngle(ctx.Clock.GameTime)
	ctx.Transform.X = s.OriginX + s.Radius*2*math.Sin(angle)
	ctx.Transform.Y = s.OriginY + s.Radius*2*math.Cos(angle)
}

// FirebarAngle is the shared orbit angle for a game time.
func FirebarAngle(gameTime float64) float64 {
	return math.Mod(gameTime*2, math.Pi) * 2
}
