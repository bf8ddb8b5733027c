package ecs

import "github.com/milk9111/mitchbros/ecs/component"

// Kind is satisfied by every component.ComponentKind[T].
type Kind interface {
	ID() component.ComponentID
}

// IntersectEntities returns entities present in every set, in the dense
// order of the first set. A nil set yields nil.
func IntersectEntities(sets ...*SparseSet) []Entity {
	if len(sets) == 0 {
		return nil
	}
	for _, s := range sets {
		if s == nil {
			return nil
		}
	}
	base := sets[0].Entities()
	out := make([]Entity, 0, len(base))
outer:
	for _, e := range base {
		for _, s := range sets[1:] {
			if !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// Query returns live entities carrying every kind.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		sets = append(sets, w.store(k.ID(), false))
	}
	var out []Entity
	for _, e := range IntersectEntities(sets...) {
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	return out
}
