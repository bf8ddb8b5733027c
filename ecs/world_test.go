package ecs

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/mitchbros/ecs/component"
)

var (
	transforms = component.TransformComponent.Kind()
	bodies     = component.BodyComponent.Kind()
	actors     = component.ActorComponent.Kind()
	pickups    = component.PickupComponent.Kind()
	players    = component.PlayerComponent.Kind()
	queues     = component.SpawnQueueComponent.Kind()
	clocks     = component.ClockComponent.Kind()
)

func spawnActor(t *testing.T, w *World, x float64, order int) Entity {
	t.Helper()
	e := CreateEntity(w)
	for _, err := range []error{
		Add(w, e, transforms, &component.Transform{X: x, Y: 224}),
		Add(w, e, bodies, &component.Body{Direction: -1}),
		Add(w, e, actors, &component.Actor{Order: order}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func spawnPickup(t *testing.T, w *World, index int, x float64) Entity {
	t.Helper()
	e := CreateEntity(w)
	if err := Add(w, e, transforms, &component.Transform{X: x, Y: 200}); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, e, pickups, &component.Pickup{Index: index}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, spawnActor(t, w, float64(i*16), i+1))
			}
			want := c.create
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				want--
			}
			if got := len(Entities(w)); got != want {
				t.Fatalf("expected %d entities, got %d", want, got)
			}
			if got := len(w.Query(transforms, actors)); got != want {
				t.Fatalf("expected %d actors, got %d", want, got)
			}
		})
	}
}

func TestComponentTable(t *testing.T) {
	w := NewWorld()
	player := CreateEntity(w)
	enemy := spawnActor(t, w, 300, 1)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "transform",
			setup: func() error { return Add(w, player, transforms, &component.Transform{X: 40, Y: 224}) },
			check: func(t *testing.T) {
				tr, ok := Get(w, player, transforms)
				if !ok || tr.X != 40 || tr.Y != 224 {
					t.Fatalf("expected 40,224, got %+v ok=%v", tr, ok)
				}
			},
			teardown: func() bool { return Remove(w, player, transforms) },
		},
		{
			name:  "body_shared_with_enemy",
			setup: func() error { return Add(w, player, bodies, &component.Body{Direction: 1}) },
			check: func(t *testing.T) {
				if !Has(w, player, bodies) || !Has(w, enemy, bodies) {
					t.Fatalf("expected both entities to have a body")
				}
				pb, _ := Get(w, player, bodies)
				eb, _ := Get(w, enemy, bodies)
				if pb.Direction != 1 || eb.Direction != -1 {
					t.Fatalf("bodies must not alias: %+v %+v", pb, eb)
				}
			},
			teardown: func() bool { return Remove(w, player, bodies) },
		},
		{
			name:  "player_state",
			setup: func() error { return Add(w, player, players, &component.Player{Pizzas: 2, JumpEnabled: true}) },
			check: func(t *testing.T) {
				p, ok := Get(w, player, players)
				if !ok || p.Pizzas != 2 || !p.JumpEnabled {
					t.Fatalf("unexpected player %+v ok=%v", p, ok)
				}
			},
			teardown: func() bool { return Remove(w, player, players) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	if Has(w, player, transforms) || Has(w, player, bodies) || Has(w, player, players) {
		t.Fatalf("player should have no components left")
	}
	if !Has(w, enemy, bodies) {
		t.Fatalf("removing the player's body must not touch the enemy")
	}
	if Remove(w, player, bodies) {
		t.Fatalf("second remove should report false")
	}
}

func TestForEachByShape(t *testing.T) {
	w := NewWorld()
	player := CreateEntity(w)
	if err := Add(w, player, transforms, &component.Transform{X: 40}); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, player, bodies, &component.Body{Direction: 1}); err != nil {
		t.Fatal(err)
	}
	if err := Add(w, player, players, &component.Player{}); err != nil {
		t.Fatal(err)
	}
	spawnActor(t, w, 200, 1)
	spawnActor(t, w, 260, 2)
	gone := spawnActor(t, w, 320, 3)
	spawnPickup(t, w, 4, 120)
	DestroyEntity(w, gone)

	count := func(fn func(visit func())) int {
		n := 0
		fn(func() { n++ })
		return n
	}

	tests := []struct {
		name string
		want int
		run  func(visit func())
	}{
		{"positioned", 4, func(visit func()) {
			ForEach(w, transforms, func(Entity, *component.Transform) { visit() })
		}},
		{"moving", 3, func(visit func()) {
			ForEach2(w, transforms, bodies, func(Entity, *component.Transform, *component.Body) { visit() })
		}},
		{"actors", 2, func(visit func()) {
			ForEach3(w, transforms, bodies, actors, func(Entity, *component.Transform, *component.Body, *component.Actor) { visit() })
		}},
		{"player_actors", 0, func(visit func()) {
			ForEach4(w, transforms, bodies, actors, players, func(Entity, *component.Transform, *component.Body, *component.Actor, *component.Player) { visit() })
		}},
		{"pickups", 1, func(visit func()) {
			ForEach2(w, transforms, pickups, func(_ Entity, tr *component.Transform, p *component.Pickup) {
				if p.Index == 4 && tr.X == 120 {
					visit()
				}
			})
		}},
		{"missing_store", 0, func(visit func()) {
			ForEach2(w, transforms, queues, func(Entity, *component.Transform, *component.SpawnQueue) { visit() })
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := count(tc.run); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}

	if got := w.Query(bodies, players); len(got) != 1 || got[0] != player {
		t.Fatalf("expected only the player, got %v", got)
	}
}

func TestSpawnQueueDuringPass(t *testing.T) {
	w := NewWorld()
	holder := CreateEntity(w)
	if err := Add(w, holder, queues, &component.SpawnQueue{}); err != nil {
		t.Fatal(err)
	}
	shooter := spawnActor(t, w, 100, 1)
	faller := spawnActor(t, w, 900, 2)

	q, ok := Singleton(w, queues)
	if !ok {
		t.Fatal("expected spawn queue singleton")
	}

	visited := 0
	ForEach3(w, transforms, bodies, actors, func(e Entity, tr *component.Transform, _ *component.Body, _ *component.Actor) {
		visited++
		if e == shooter {
			q.Spawn(component.SpawnRequest{Archetype: "Fireball", X: tr.X, Y: tr.Y, Front: true})
		}
		if tr.X > 500 {
			q.Remove(uint64(e))
		}
	})
	if visited != 2 {
		t.Fatalf("queued changes must not affect the pass, visited %d", visited)
	}
	if !q.Pending() {
		t.Fatal("expected pending changes")
	}

	spawns, removals := q.Take()
	for _, id := range removals {
		DestroyEntity(w, Entity(id))
	}
	for _, req := range spawns {
		spawnActor(t, w, req.X, q.NextOrder(req.Front))
	}

	if q.Pending() {
		t.Fatal("take must clear the queue")
	}
	if IsAlive(w, faller) {
		t.Fatal("faller should be removed")
	}
	var orders []int
	ForEach(w, actors, func(_ Entity, a *component.Actor) { orders = append(orders, a.Order) })
	if len(orders) != 2 {
		t.Fatalf("expected shooter and fireball, got %v", orders)
	}
	if orders[0] != 1 && orders[1] != 1 {
		t.Fatalf("shooter order lost: %v", orders)
	}
	if orders[0] != -1 && orders[1] != -1 {
		t.Fatalf("front spawn should take order -1: %v", orders)
	}
	if got := q.NextOrder(false); got != 1 {
		t.Fatalf("back orders start at 1, got %d", got)
	}
}

func TestEntityGenerations(t *testing.T) {
	w := NewWorld()
	if e := (Entity(0)); e.Valid() || IsAlive(w, e) {
		t.Fatalf("zero entity must be invalid")
	}

	old := CreateEntity(w)
	if !DestroyEntity(w, old) {
		t.Fatalf("destroy failed")
	}
	reused := CreateEntity(w)

	if reused.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v then %v", old, reused)
	}
	if reused.generation() == old.generation() {
		t.Fatalf("expected a new generation for %v", reused)
	}
	if got := reused.String(); got != "1v1" {
		t.Fatalf("expected 1v1, got %s", got)
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle %v must not be alive", old)
	}
	if DestroyEntity(w, old) {
		t.Fatalf("destroying a stale handle must fail")
	}

	err := Add(w, old, transforms, &component.Transform{})
	if !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if !strings.Contains(err.Error(), "Transform") || !strings.Contains(err.Error(), old.String()) {
		t.Fatalf("error should name the component and entity: %v", err)
	}
	if err := Add(w, reused, bodies, nil); !errors.Is(err, component.ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
	if err := Add(w, reused, component.ComponentKind[component.Transform]{}, &component.Transform{}); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestComponentKindNames(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{transforms, "Transform"},
		{queues, "SpawnQueue"},
		{component.PlayerTagComponent.Kind(), "PlayerTag"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			if got := c.kind.ID().String(); got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
	if got := component.ComponentID(1 << 30).String(); !strings.HasPrefix(got, "component#") {
		t.Fatalf("unissued id should print its number, got %s", got)
	}
}

func TestDestroyRemovesComponents(t *testing.T) {
	w := NewWorld()
	e := spawnPickup(t, w, 0, 40)
	DestroyEntity(w, e)
	next := CreateEntity(w)
	if Has(w, next, pickups) {
		t.Fatalf("reused slot must not inherit components")
	}
	if got := w.Query(pickups); len(got) != 0 {
		t.Fatalf("expected empty query, got %v", got)
	}
}

func TestSingletonAndFirst(t *testing.T) {
	w := NewWorld()

	if _, ok := Singleton(w, clocks); ok {
		t.Fatalf("expected no clock in empty world")
	}

	e := CreateEntity(w)
	if err := Add(w, e, clocks, &component.Clock{Delta: 0.016}); err != nil {
		t.Fatal(err)
	}
	got, ok := Singleton(w, clocks)
	if !ok || got.Delta != 0.016 {
		t.Fatalf("expected 0.016, got %v ok=%v", got, ok)
	}
	got.GameTime = 0.5
	if first, ok := First(w, clocks); !ok || first != e {
		t.Fatalf("expected %v, got %v", e, first)
	}
	if c, _ := Get(w, e, clocks); c.GameTime != 0.5 {
		t.Fatalf("singleton must be stored by pointer")
	}
}

func TestForEachSnapshot(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 3; i++ {
		spawnActor(t, w, float64(i), i+1)
	}

	visited := 0
	ForEach(w, transforms, func(e Entity, tr *component.Transform) {
		visited++
		if tr.X == 0 {
			// Spawning and destroying mid-iteration must not disturb the pass.
			spawnActor(t, w, 99, 4)
			for _, other := range Entities(w) {
				if o, ok := Get(w, other, transforms); ok && o.X == 2 {
					DestroyEntity(w, other)
				}
			}
		}
	})
	if visited != 2 {
		t.Fatalf("expected 2 visits, got %d", visited)
	}
	if n := len(w.Query(transforms)); n != 3 {
		t.Fatalf("expected 3 entities after the pass, got %d", n)
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	q := w.Events()
	q.Sound("jump")
	q.Push(Event{Kind: EventPlayerDied, Hole: true})

	if q.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", q.Len())
	}
	got := q.Drain()
	if got[0].Kind != EventSound || got[0].Name != "jump" || !got[1].Hole {
		t.Fatalf("unexpected events %+v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("drain must empty the queue")
	}

	var nilQueue *EventQueue
	nilQueue.Push(Event{Kind: EventStomp})
	if nilQueue.Len() != 0 {
		t.Fatalf("nil queue must stay empty")
	}

	kinds := []struct {
		kind EventKind
		want string
	}{
		{EventSound, "sound"},
		{EventLevelComplete, "level_complete"},
		{EventKind(0), "unknown"},
	}
	for _, k := range kinds {
		t.Run(k.want, func(t *testing.T) {
			if k.kind.String() != k.want {
				t.Fatalf("expected %s, got %s", k.want, k.kind)
			}
		})
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (s recordSystem) Update(*World) { *s.log = append(*s.log, s.name) }

func TestSchedulerOrder(t *testing.T) {
	var log []string
	s := NewScheduler(recordSystem{"control", &log}, nil, recordSystem{"physics", &log})
	s.Add(nil)
	s.Add(recordSystem{"camera", &log})

	s.Update(NewWorld())
	s.Update(NewWorld())

	want := []string{"control", "physics", "camera", "control", "physics", "camera"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
	if len(s.Systems()) != 3 {
		t.Fatalf("expected 3 systems, got %d", len(s.Systems()))
	}
}

type sleepSystem struct{ d time.Duration }

func (s *sleepSystem) Update(*World) { time.Sleep(s.d) }

func TestSchedulerSlowest(t *testing.T) {
	var log []string
	s := NewScheduler(recordSystem{"control", &log}, &sleepSystem{d: 5 * time.Millisecond})
	if name, _ := s.Slowest(); name != "" {
		t.Fatalf("expected no timing before the first update, got %s", name)
	}

	s.Update(NewWorld())
	name, took := s.Slowest()
	if name != "sleepSystem" {
		t.Fatalf("expected sleepSystem, got %s", name)
	}
	if took < 5*time.Millisecond {
		t.Fatalf("expected at least 5ms, got %s", took)
	}
	if got := SystemName(recordSystem{}); got != "recordSystem" {
		t.Fatalf("expected recordSystem, got %s", got)
	}
}
