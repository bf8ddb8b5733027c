package system

import (
	"errors"

	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/ecs/entity"
	"github.com/milk9111/mitchbros/prefabs"
)

// QueueSystem applies the spawns and removals requested during the physics
// pass.
type QueueSystem struct {
	env *behavior.Env
}

func NewQueueSystem(env *behavior.Env) *QueueSystem {
	return &QueueSystem{env: env}
}

func (s *QueueSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	q, ok := ecs.Singleton(w, component.SpawnQueueComponent.Kind())
	if !ok || !q.Pending() {
		return
	}
	spawns, removals := q.Take()

	for _, id := range removals {
		e := ecs.Entity(id)
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			continue
		}
		destroy(w, s.env, e)
	}

	for _, req := range spawns {
		spawnEnemy(w, s.env, q, req)
	}
}

// spawnEnemy creates an enemy from a request, reporting unknown archetypes
// instead of failing the frame.
func spawnEnemy(w *ecs.World, env *behavior.Env, q *component.SpawnQueue, req component.SpawnRequest) (ecs.Entity, bool) {
	var catalog *prefabs.Catalog
	if env != nil {
		catalog = env.Catalog
	}
	e, err := entity.NewEnemy(w, catalog, req, q.NextOrder(req.Front))
	if err != nil {
		if env != nil && env.Logger != nil {
			if errors.Is(err, prefabs.ErrUnknownArchetype) {
				env.Logger.Warn("skipping unknown enemy", "name", req.Archetype, "x", req.X, "y", req.Y)
			} else {
				env.Logger.Error("spawn enemy", "name", req.Archetype, "err", err)
			}
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventUnknownEnemy, Name: req.Archetype})
		return 0, false
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventEnemySpawned, Entity: e, Name: req.Archetype})
	return e, true
}
