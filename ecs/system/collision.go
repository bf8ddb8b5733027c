package system

import (
	"math"

	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/tiles"
)

const (
	wallProbeX    = 8.1
	wallProbeHead = 7
	wallProbeFoot = 0.1
	wallMargin    = 8

	ceilingProbeX = 5
	ceilingProbeY = 12

	footProbeX = 4

	semiSolidBias = 0.01
)

func solidAt(g *tiles.Grid, x, y float64) bool {
	return tiles.IsSolid(g.BlockAt(x, y))
}

func semiSolidAt(g *tiles.Grid, x, y float64) bool {
	return tiles.IsSemiSolid(g.BlockAt(x, y))
}

func tileFloor(v float64) float64 {
	return math.Floor(v/tiles.Size) * tiles.Size
}

// moveY integrates vertical motion for airborne bodies.
func moveY(t *component.Transform, b *component.Body, dt float64) {
	if b.OnFloor {
		return
	}
	b.SpeedY += b.Gravity * dt
	b.SpeedY = math.Min(math.Max(-b.MaxSpeedY, b.SpeedY), b.MaxSpeedY)
	t.Y += b.SpeedY * dt
}

// moveX is the default horizontal integration.
func moveX(t *component.Transform, b *component.Body, dt float64) {
	b.SpeedX += b.Acceleration * b.Direction * dt
	b.SpeedX = math.Min(math.Max(-b.MaxSpeedX, b.SpeedX), b.MaxSpeedX)
	t.X += b.SpeedX * dt
}

// checkCeiling stops an ascending body whose head is inside a solid tile.
func checkCeiling(ctx *behavior.Context, g *tiles.Grid, h behavior.Hooks) bool {
	t, b := ctx.Transform, ctx.Body
	if b.OnFloor || b.SpeedY >= 0 || b.IgnoreBlocks {
		return false
	}
	if !solidAt(g, t.X-ceilingProbeX, t.Y-ceilingProbeY) && !solidAt(g, t.X+ceilingProbeX, t.Y-ceilingProbeY) {
		return false
	}
	t.Y = math.Floor(t.Y/tiles.Size+1)*tiles.Size - 1
	b.SpeedY = 0
	if h.Ceiling != nil {
		h.Ceiling(ctx)
	}
	return true
}

// checkFall clears OnFloor once neither foot rests on solid or semi-solid
// ground. It does not honour IgnoreBlocks.
func checkFall(ctx *behavior.Context, g *tiles.Grid, h behavior.Hooks) bool {
	t, b := ctx.Transform, ctx.Body
	if !b.OnFloor {
		return false
	}
	lx, rx, y := t.X-footProbeX, t.X+footProbeX, t.Y+1
	if solidAt(g, lx, y) || solidAt(g, rx, y) || semiSolidAt(g, lx, y) || semiSolidAt(g, rx, y) {
		return false
	}
	b.OnFloor = false
	if h.Fell != nil {
		h.Fell(ctx)
	}
	return true
}

// crossedRow reports whether a body at y moving at speedY entered a new
// tile row this frame, going down.
func crossedRow(y, speedY, dt float64) bool {
	return tileFloor(y) > tileFloor(y-semiSolidBias-speedY*dt)
}

// checkLanded snaps a falling body onto the tile under its feet. Semi-solid
// tiles only catch bodies that entered their row from above this frame.
func checkLanded(ctx *behavior.Context, g *tiles.Grid, h behavior.Hooks) bool {
	t, b := ctx.Transform, ctx.Body
	if b.OnFloor || b.SpeedY < 0 || b.IgnoreBlocks {
		return false
	}
	lx, rx := t.X-footProbeX, t.X+footProbeX
	landed := solidAt(g, lx, t.Y) || solidAt(g, rx, t.Y)
	if !landed && (semiSolidAt(g, lx, t.Y) || semiSolidAt(g, rx, t.Y)) {
		landed = crossedRow(t.Y, b.SpeedY, ctx.Dt())
	}
	if !landed {
		return false
	}
	b.OnFloor = true
	t.Y = tileFloor(t.Y)
	b.SpeedY = 0
	if h.Landed != nil {
		h.Landed(ctx)
	}
	return true
}

// checkWalls pushes a body out of solid columns and the level edges.
func checkWalls(ctx *behavior.Context, geo *component.LevelGeometry, h behavior.Hooks) {
	t, b := ctx.Transform, ctx.Body
	if b.IgnoreBlocks {
		return
	}
	g := geo.Grid

	lx := t.X - wallProbeX
	if solidAt(g, lx, t.Y-wallProbeHead) || solidAt(g, lx, t.Y-wallProbeFoot) || t.X < wallMargin {
		b.SpeedX = math.Max(0, b.SpeedX)
		t.X = math.Max(t.X, tileFloor(t.X)+wallMargin)
		if h.WallLeft != nil {
			h.WallLeft(ctx)
		}
	}

	rx := t.X + wallProbeX
	if solidAt(g, rx, t.Y-wallProbeHead) || solidAt(g, rx, t.Y-wallProbeFoot) || t.X > geo.Width-wallMargin {
		b.SpeedX = math.Min(0, b.SpeedX)
		t.X = math.Min(t.X, tileFloor(t.X)+wallMargin)
		if h.WallRight != nil {
			h.WallRight(ctx)
		}
	}
}

// step runs the full per-entity update: custom action, vertical motion,
// ceiling, fall, landing, horizontal motion and walls.
func step(ctx *behavior.Context, geo *component.LevelGeometry) {
	h := behavior.For(ctx)
	behavior.RunCustomAction(ctx, h)

	dt := ctx.Dt()
	moveY(ctx.Transform, ctx.Body, dt)
	checkCeiling(ctx, geo.Grid, h)
	checkFall(ctx, geo.Grid, h)
	checkLanded(ctx, geo.Grid, h)
	if h.MoveX != nil {
		h.MoveX(ctx)
	} else {
		moveX(ctx.Transform, ctx.Body, dt)
	}
	checkWalls(ctx, geo, h)
}
