package system

import (
	"math"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

const flagReach = 12

// LevelEndSystem finishes the level when a living player reaches the flag.
type LevelEndSystem struct{}

func NewLevelEndSystem() *LevelEndSystem { return &LevelEndSystem{} }

func (s *LevelEndSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	geo, ok := levelGeometry(w)
	if !ok {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, okT := ecs.Get(w, player, component.TransformComponent.Kind())
	b, okB := ecs.Get(w, player, component.BodyComponent.Kind())
	p, okP := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !okT || !okB || !okP || b.Dead || p.Finished {
		return
	}
	if math.Abs(t.X-geo.EndX) >= flagReach || math.Abs(t.Y-geo.EndY) >= flagReach {
		return
	}

	p.Finished = true
	w.Events().Push(ecs.Event{Kind: ecs.EventMusicStop})
	w.Events().Sound("victory")
	w.Events().Push(ecs.Event{Kind: ecs.EventLevelComplete, Entity: player})
}
