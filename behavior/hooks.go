package behavior

import "github.com/milk9111/mitchbros/ecs/component"

type Hook func(*Context)

// Hooks are the optional overrides a kind applies to the default physics.
// A nil hook means the default (or nothing) happens.
type Hooks struct {
	CustomAction Hook
	// MoveX replaces the default horizontal integration.
	MoveX     Hook
	WallLeft  Hook
	WallRight Hook
	Landed    Hook
	Ceiling   Hook
	Fell      Hook
	// Die replaces the default death transition.
	Die Hook
}

var table = map[component.EnemyKind]Hooks{
	component.KindFly: {
		Landed:    bounce,
		WallLeft:  faceRight,
		WallRight: faceLeft,
	},
	component.KindFlyingFly: {
		CustomAction: hover(200),
	},
	component.KindHoveringFly: {
		CustomAction: hover(200),
	},
	component.KindCockroach: {
		WallLeft:  faceRight,
		WallRight: faceLeft,
	},
	component.KindSpikeFloor:   {},
	component.KindSpikeCeiling: {},
	component.KindFish: {
		CustomAction: leap(-400),
	},
	component.KindGhost: {
		CustomAction: ghost,
	},
	component.KindReverseGhost: {
		CustomAction: reverseGhost,
	},
	component.KindAngryGhost: {
		CustomAction: angryGhost,
	},
	component.KindJumpingFire: {
		CustomAction: leap(-520),
	},
	component.KindFirebar: {
		CustomAction: firebar,
	},
	component.KindFireball: {
		Landed:    bounce,
		WallLeft:  despawn,
		WallRight: despawn,
	},
	component.KindBoss: {
		CustomAction: bossAction,
		MoveX:        bossMoveX,
		Landed:       bossLanded,
		Die:          bossDie,
	},
}

var playerHooks = Hooks{
	MoveX:  playerMoveX,
	Landed: playerLanded,
	Fell:   playerFell,
}

// For returns the hooks for the focused entity.
func For(ctx *Context) Hooks {
	if ctx.IsPlayer() {
		return playerHooks
	}
	if ctx.State == nil {
		return Hooks{}
	}
	return table[ctx.State.Kind]
}

// RunCustomAction runs the kind's custom action and then its script, if any.
// Dead entities skip both.
func RunCustomAction(ctx *Context, h Hooks) {
	if ctx.Body.Dead {
		return
	}
	if h.CustomAction != nil {
		h.CustomAction(ctx)
	}
	if ctx.State != nil && ctx.State.Script != "" && ctx.Env != nil && ctx.Env.Scripts != nil {
		ctx.Env.Scripts.Run(ctx)
	}
}

// Kill runs the death transition of the focused entity. It is a no-op on an
// entity that is already dead.
func Kill(ctx *Context) bool {
	if ctx.Body == nil || ctx.Body.Dead {
		return false
	}
	if ctx.IsPlayer() {
		return KillPlayer(ctx, false)
	}
	if h := For(ctx); h.Die != nil {
		h.Die(ctx)
		return true
	}
	defaultDie(ctx)
	return true
}

func defaultDie(ctx *Context) {
	b := ctx.Body
	b.Dead = true
	SetAnimation(ctx.Anim, ctx.catalog(), ctx.Anim.Name+"Dead")
	b.Acceleration = 0
	b.MaxSpeedY = 400
	b.Gravity = 1000
	b.IgnoreBlocks = true
	b.OnFloor = false
	b.SpeedX = 0
	b.SpeedY = -120
}
