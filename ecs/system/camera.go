package system

import (
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

// CameraSystem centres the view window on the player.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem { return &CameraSystem{} }

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok {
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
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	var dt float64
	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok {
		dt = clock.Delta
	}
	cam.Follow(t.X, geo.Width, dt)
}
