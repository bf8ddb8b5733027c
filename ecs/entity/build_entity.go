package entity

import (
	"fmt"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
)

type componentAdder func(w *ecs.World, e ecs.Entity) error

func with[T any](kind component.ComponentKind[T], value *T) componentAdder {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, kind, value)
	}
}

// build creates an entity and attaches every component. A failure destroys
// the half-built entity.
func build(w *ecs.World, what string, adders ...componentAdder) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if !e.Valid() {
		return 0, fmt.Errorf("%s: create entity: %w", what, component.ErrEntityNotAlive)
	}
	for _, add := range adders {
		if err := add(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("%s: add component: %w", what, err)
		}
	}
	return e, nil
}
