package entity

import (
	"fmt"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/levels"
	"github.com/milk9111/mitchbros/prefabs"
)

// LoadLevelToWorld populates an empty world from a template: level
// singletons, shared animations, pickups, pending spawn points and the
// player. The template is only read.
func LoadLevelToWorld(w *ecs.World, tmpl *levels.Template, catalog *prefabs.Catalog) (ecs.Entity, error) {
	if tmpl == nil {
		return 0, fmt.Errorf("level: nil template")
	}
	grid := tmpl.Grid()

	cam := &component.Camera{}
	cam.Follow(tmpl.SpawnX, grid.Width(), 0)

	if _, err := build(w, "level",
		with(component.LevelGeometryComponent.Kind(), &component.LevelGeometry{
			Grid:       grid,
			Width:      grid.Width(),
			Water:      tmpl.WaterColumns(),
			Lava:       tmpl.LavaColumns(),
			EndX:       tmpl.EndX,
			EndY:       tmpl.EndY,
			Background: tmpl.Background,
		}),
		with(component.CameraComponent.Kind(), cam),
		with(component.ClockComponent.Kind(), &component.Clock{}),
		with(component.SpawnQueueComponent.Kind(), &component.SpawnQueue{}),
	); err != nil {
		return 0, err
	}

	if err := NewAmbience(w, catalog); err != nil {
		return 0, err
	}

	for i, p := range tmpl.Pizzas {
		if _, err := NewPickup(w, i, p.X, p.Y); err != nil {
			return 0, err
		}
	}
	for _, e := range tmpl.Enemies {
		if _, err := NewSpawnPoint(w, e.Name, e.X, e.Y); err != nil {
			return 0, err
		}
	}

	return NewPlayerAt(w, catalog, tmpl.SpawnX, tmpl.SpawnY)
}
