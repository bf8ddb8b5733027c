package entity

import (
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

func newAnimation(catalog *prefabs.Catalog, name string) *component.Animation {
	a := &component.Animation{Name: name}
	if spec, ok := catalog.Animation(name); ok {
		a.Frames = append([]string(nil), spec.Frames...)
		a.Speed = spec.Speed
		a.Directional = spec.Directional
	}
	return a
}
