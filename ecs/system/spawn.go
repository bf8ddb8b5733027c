package system

import (
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

const (
	spawnMargin        = 8
	firebarSpawnMargin = 40
)

// SpawnSystem activates spawn points once the camera window comes within
// reach. New enemies are placed in front of every other actor and take part
// in this frame's contacts.
type SpawnSystem struct {
	env *behavior.Env
}

func NewSpawnSystem(env *behavior.Env) *SpawnSystem {
	return &SpawnSystem{env: env}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	q, ok := ecs.Singleton(w, component.SpawnQueueComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach2(w, component.SpawnPointComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sp *component.SpawnPoint, t *component.Transform) {
		if !inSpawnWindow(cam, sp.Name, t.X) {
			return
		}
		req := component.SpawnRequest{Archetype: sp.Name, X: t.X, Y: t.Y, Front: true}
		ecs.DestroyEntity(w, e)
		spawnEnemy(w, s.env, q, req)
	})
}

func inSpawnWindow(cam *component.Camera, name string, x float64) bool {
	margin := float64(spawnMargin)
	if name == "Firebar" {
		margin = firebarSpawnMargin
	}
	return x <= cam.Right+margin && x >= cam.Left-margin
}
