package system

import (
	"sort"

	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

type actorRef struct {
	e     ecs.Entity
	order int
}

// liveActors lists actors in update order: the player first, then every
// other actor by ascending Order.
func liveActors(w *ecs.World) []ecs.Entity {
	player, hasPlayer := ecs.First(w, component.PlayerTagComponent.Kind())

	var refs []actorRef
	ecs.ForEach(w, component.ActorComponent.Kind(), func(e ecs.Entity, a *component.Actor) {
		if hasPlayer && e == player {
			return
		}
		refs = append(refs, actorRef{e: e, order: a.Order})
	})
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].order < refs[j].order })

	out := make([]ecs.Entity, 0, len(refs)+1)
	if hasPlayer && ecs.Has(w, player, component.ActorComponent.Kind()) {
		out = append(out, player)
	}
	for _, r := range refs {
		out = append(out, r.e)
	}
	return out
}

// destroy removes an actor and drops any script state it owned.
func destroy(w *ecs.World, env *behavior.Env, e ecs.Entity) bool {
	if env != nil && env.Scripts != nil {
		env.Scripts.Forget(e)
	}
	return ecs.DestroyEntity(w, e)
}

func levelGeometry(w *ecs.World) (*component.LevelGeometry, bool) {
	geo, ok := ecs.Singleton(w, component.LevelGeometryComponent.Kind())
	if !ok || geo.Grid == nil {
		return nil, false
	}
	return geo, true
}
