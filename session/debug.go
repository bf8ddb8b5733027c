package session

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/ecs/entity"
	"github.com/milk9111/mitchbros/levels"
)

// TogglePizza adds a pizza at the screen point snapped to an 8px grid, or
// removes the one already there. It reports whether a pizza now exists at
// that point.
func (s *Session) TogglePizza(screenX, screenY float64) (levels.Pizza, bool) {
	if s.run == nil {
		return levels.Pizza{}, false
	}
	w := s.run.World
	left := 0.0
	if cam, ok := ecs.Singleton(w, component.CameraComponent.Kind()); ok {
		left = cam.Left
	}
	at := levels.Pizza{
		X: math.Round((screenX+left)/8) * 8,
		Y: math.Round(screenY/8)*8 + 8,
	}

	var hit ecs.Entity
	next := 0
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pickup, t *component.Transform) {
		if t.X == at.X && t.Y == at.Y {
			hit = e
		}
		next = max(next, p.Index+1)
	})
	if hit.Valid() {
		ecs.DestroyEntity(w, hit)
		return at, false
	}
	if _, err := entity.NewPickup(w, next, at.X, at.Y); err != nil {
		s.logger.Error("add pizza", "x", at.X, "y", at.Y, "err", err)
		return at, false
	}
	return at, true
}

// Pizzas lists the pizzas still in the level in template order.
func (s *Session) Pizzas() []levels.Pizza {
	if s.run == nil {
		return nil
	}
	type indexed struct {
		index int
		pizza levels.Pizza
	}
	var all []indexed
	ecs.ForEach2(s.run.World, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, t *component.Transform) {
		all = append(all, indexed{p.Index, levels.Pizza{X: t.X, Y: t.Y}})
	})
	sort.Slice(all, func(i, j int) bool { return all[i].index < all[j].index })
	out := make([]levels.Pizza, len(all))
	for i, p := range all {
		out[i] = p.pizza
	}
	return out
}

// PizzasJSON is the pizza list in level file form.
func (s *Session) PizzasJSON() ([]byte, error) {
	pizzas := s.Pizzas()
	if pizzas == nil {
		pizzas = []levels.Pizza{}
	}
	return json.Marshal(pizzas)
}
