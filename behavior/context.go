// Package behavior implements the per-kind hooks that specialise the
// default physics for the player and every enemy archetype.
package behavior

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

// Env is shared by every hook during a level run.
type Env struct {
	Catalog *prefabs.Catalog
	Rand    *rand.Rand
	Scripts *ScriptRunner
	Logger  *log.Logger
}

// NewEnv builds an Env with a seeded random source.
func NewEnv(catalog *prefabs.Catalog, seed uint64, logger *log.Logger) *Env {
	if logger == nil {
		logger = log.Default()
	}
	return &Env{
		Catalog: catalog,
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Scripts: NewScriptRunner(logger),
		Logger:  logger,
	}
}

// Context is the view a hook gets of the entity being updated and of the
// level state around it. Player fields may be nil when no player exists.
type Context struct {
	World     *ecs.World
	Entity    ecs.Entity
	Transform *component.Transform
	Body      *component.Body
	Anim      *component.Animation
	// State is nil for the player.
	State *component.Behavior

	Player          ecs.Entity
	PlayerTransform *component.Transform
	PlayerBody      *component.Body
	PlayerState     *component.Player

	Camera *component.Camera
	Clock  *component.Clock
	Queue  *component.SpawnQueue
	Events *ecs.EventQueue
	Env    *Env
}

// Dt is the current frame delta in seconds.
func (c *Context) Dt() float64 {
	if c == nil || c.Clock == nil {
		return 0
	}
	return c.Clock.Delta
}

func (c *Context) playerX() float64 {
	if c.PlayerTransform == nil {
		return c.Transform.X
	}
	return c.PlayerTransform.X
}

func (c *Context) playerY() float64 {
	if c.PlayerTransform == nil {
		return c.Transform.Y
	}
	return c.PlayerTransform.Y
}

func (c *Context) playerDead() bool {
	return c.PlayerBody == nil || c.PlayerBody.Dead
}

// PlayerAlive reports whether a living player exists.
func (c *Context) PlayerAlive() bool {
	return !c.playerDead()
}

func (c *Context) catalog() *prefabs.Catalog {
	if c.Env == nil {
		return nil
	}
	return c.Env.Catalog
}

func (c *Context) sound(name string) {
	if c.Events != nil {
		c.Events.Sound(name)
	}
}

// Bind fills the shared fields of a Context from the world singletons.
func Bind(w *ecs.World, env *Env) *Context {
	ctx := &Context{World: w, Env: env, Events: w.Events()}
	if p, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		ctx.Player = p
		ctx.PlayerTransform, _ = ecs.Get(w, p, component.TransformComponent.Kind())
		ctx.PlayerBody, _ = ecs.Get(w, p, component.BodyComponent.Kind())
		ctx.PlayerState, _ = ecs.Get(w, p, component.PlayerComponent.Kind())
	}
	ctx.Camera, _ = ecs.Singleton(w, component.CameraComponent.Kind())
	ctx.Clock, _ = ecs.Singleton(w, component.ClockComponent.Kind())
	ctx.Queue, _ = ecs.Singleton(w, component.SpawnQueueComponent.Kind())
	if ctx.Camera == nil {
		ctx.Camera = &component.Camera{}
	}
	if ctx.Clock == nil {
		ctx.Clock = &component.Clock{}
	}
	if ctx.Queue == nil {
		ctx.Queue = &component.SpawnQueue{}
	}
	return ctx
}

// Focus points ctx at entity e. It returns false when e lacks a body.
func (c *Context) Focus(e ecs.Entity) bool {
	c.Entity = e
	c.Transform, _ = ecs.Get(c.World, e, component.TransformComponent.Kind())
	c.Body, _ = ecs.Get(c.World, e, component.BodyComponent.Kind())
	c.Anim, _ = ecs.Get(c.World, e, component.AnimationComponent.Kind())
	c.State, _ = ecs.Get(c.World, e, component.BehaviorComponent.Kind())
	if c.Anim == nil {
		c.Anim = &component.Animation{}
	}
	return c.Transform != nil && c.Body != nil
}

// IsPlayer reports whether the focused entity is the player.
func (c *Context) IsPlayer() bool {
	return c.Player.Valid() && c.Entity == c.Player
}
