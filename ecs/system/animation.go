package system

import (
	"math"

	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

const playerRunFrameRate = 13

// PlayerAnimationSystem picks the player's cycle from its movement state.
type PlayerAnimationSystem struct {
	catalog *prefabs.Catalog
}

func NewPlayerAnimationSystem(catalog *prefabs.Catalog) *PlayerAnimationSystem {
	return &PlayerAnimationSystem{catalog: catalog}
}

func (s *PlayerAnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	b, okB := ecs.Get(w, player, component.BodyComponent.Kind())
	a, okA := ecs.Get(w, player, component.AnimationComponent.Kind())
	if !okB || !okA {
		return
	}

	switch {
	case b.Dead:
		behavior.SetAnimation(a, s.catalog, "playerDead")
	case !b.OnFloor:
		behavior.SetAnimation(a, s.catalog, "playerJump")
	case b.SpeedX == 0:
		behavior.SetAnimation(a, s.catalog, "playerIdle")
	default:
		behavior.SetAnimation(a, s.catalog, "playerMoving")
		a.Speed = math.Abs(b.SpeedX / playerRunFrameRate)
	}
}

// AnimationSystem advances every animation, shared ones included.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem { return &AnimationSystem{} }

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	clock, ok := ecs.Singleton(w, component.ClockComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, a *component.Animation) {
		behavior.Advance(a, clock.Delta)
	})
}
