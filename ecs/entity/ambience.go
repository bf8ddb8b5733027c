package entity

import (
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

// NewAmbience creates one shared animation per catalog ambient entry. They
// are not tied to any actor and advance every frame.
func NewAmbience(w *ecs.World, catalog *prefabs.Catalog) error {
	for _, name := range catalog.Ambient {
		if _, err := build(w, "ambience "+name,
			with(component.AmbientTagComponent.Kind(), &component.AmbientTag{}),
			with(component.AnimationComponent.Kind(), newAnimation(catalog, name)),
		); err != nil {
			return err
		}
	}
	return nil
}

// Ambient finds the shared animation with the given name.
func Ambient(w *ecs.World, name string) (*component.Animation, bool) {
	var found *component.Animation
	ecs.ForEach2(w, component.AmbientTagComponent.Kind(), component.AnimationComponent.Kind(), func(_ ecs.Entity, _ *component.AmbientTag, a *component.Animation) {
		if found == nil && a.Name == name {
			found = a
		}
	})
	return found, found != nil
}
