package behavior

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

// Scripts define `update := func(self, state, world) {...}`. self holds the
// entity's kinematic state and is written back after the call; state
// persists between frames for the same entity.
const scriptDispatch = `
update(__self, __state, __world)
`

type scriptInstance struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

// ScriptRunner compiles behavior scripts once per path and keeps one
// instance per entity.
type ScriptRunner struct {
	// Source reads a script by name. Defaults to prefabs.LoadScript.
	Source func(name string) ([]byte, error)

	logger    *log.Logger
	compiled  map[string]*tengo.Compiled
	instances map[ecs.Entity]*scriptInstance
}

func NewScriptRunner(logger *log.Logger) *ScriptRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ScriptRunner{
		Source:    prefabs.LoadScript,
		logger:    logger,
		compiled:  map[string]*tengo.Compiled{},
		instances: map[ecs.Entity]*scriptInstance{},
	}
}

// Reset drops every compiled script so edited sources are picked up.
func (r *ScriptRunner) Reset() {
	if r == nil {
		return
	}
	r.compiled = map[string]*tengo.Compiled{}
	r.instances = map[ecs.Entity]*scriptInstance{}
}

// Forget releases the instance held for a removed entity.
func (r *ScriptRunner) Forget(e ecs.Entity) {
	if r == nil {
		return
	}
	delete(r.instances, e)
}

// Run executes the focused entity's script. A script that fails is logged
// once and disabled for that entity.
func (r *ScriptRunner) Run(ctx *Context) {
	if r == nil || ctx == nil || ctx.State == nil || ctx.State.Script == "" || ctx.State.ScriptDisabled {
		return
	}
	if err := r.run(ctx); err != nil {
		ctx.State.ScriptDisabled = true
		r.Forget(ctx.Entity)
		r.logger.Warn("behavior script disabled", "entity", ctx.Entity, "script", ctx.State.Script, "err", err)
	}
}

// run recovers panics raised inside the VM, such as integer division by
// zero, and reports them as errors.
func (r *ScriptRunner) run(ctx *Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script %s: panic: %v", ctx.State.Script, p)
		}
	}()

	inst, err := r.instance(ctx.Entity, ctx.State.Script)
	if err != nil {
		return err
	}

	self := selfMap(ctx)
	if err := inst.compiled.Set("__self", self); err != nil {
		return err
	}
	if err := inst.compiled.Set("__state", inst.state); err != nil {
		return err
	}
	if err := inst.compiled.Set("__world", worldMap(ctx)); err != nil {
		return err
	}
	if err := inst.compiled.Run(); err != nil {
		return err
	}
	applySelf(ctx, self)
	return nil
}

func (r *ScriptRunner) instance(e ecs.Entity, path string) (*scriptInstance, error) {
	if inst, ok := r.instances[e]; ok && inst.path == path {
		return inst, nil
	}

	base, ok := r.compiled[path]
	if !ok {
		c, err := r.compile(path)
		if err != nil {
			return nil, err
		}
		r.compiled[path] = c
		base = c
	}

	inst := &scriptInstance{
		path:     path,
		compiled: base.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	r.instances[e] = inst
	return inst, nil
}

func (r *ScriptRunner) compile(path string) (*tengo.Compiled, error) {
	source := r.Source
	if source == nil {
		source = prefabs.LoadScript
	}
	src, err := source(path)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	for _, name := range []string{"__self", "__state", "__world"} {
		if err := script.Add(name, map[string]any{}); err != nil {
			return nil, fmt.Errorf("compile script %s: add %s: %w", path, name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %s: %w", path, err)
	}
	return compiled, nil
}

func selfMap(ctx *Context) *tengo.Map {
	t, b := ctx.Transform, ctx.Body
	return &tengo.Map{Value: map[string]tengo.Object{
		"x":         &tengo.Float{Value: t.X},
		"y":         &tengo.Float{Value: t.Y},
		"speed_x":   &tengo.Float{Value: b.SpeedX},
		"speed_y":   &tengo.Float{Value: b.SpeedY},
		"gravity":   &tengo.Float{Value: b.Gravity},
		"direction": &tengo.Float{Value: b.Direction},
		"on_floor":  boolObject(b.OnFloor),
	}}
}

func applySelf(ctx *Context, self *tengo.Map) {
	t, b := ctx.Transform, ctx.Body
	readFloat(self, "x", &t.X)
	readFloat(self, "y", &t.Y)
	readFloat(self, "speed_x", &b.SpeedX)
	readFloat(self, "speed_y", &b.SpeedY)
	readFloat(self, "gravity", &b.Gravity)
	readFloat(self, "direction", &b.Direction)
	if b.Direction != -1 && b.Direction != 1 {
		if b.Direction < 0 {
			b.Direction = -1
		} else {
			b.Direction = 1
		}
	}
	if obj, ok := self.Value["on_floor"]; ok {
		b.OnFloor = !obj.IsFalsy()
	}
}

func readFloat(m *tengo.Map, key string, dst *float64) {
	obj, ok := m.Value[key]
	if !ok {
		return
	}
	switch v := obj.(type) {
	case *tengo.Float:
		*dst = v.Value
	case *tengo.Int:
		*dst = float64(v.Value)
	}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func worldMap(ctx *Context) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"dt":          &tengo.Float{Value: ctx.Dt()},
		"game_time":   &tengo.Float{Value: ctx.Clock.GameTime},
		"player_x":    &tengo.Float{Value: ctx.playerX()},
		"player_y":    &tengo.Float{Value: ctx.playerY()},
		"player_dead": boolObject(ctx.playerDead()),
		"camera_left": &tengo.Float{Value: ctx.Camera.Left},
	}

	values["sound"] = &tengo.UserFunction{Name: "sound", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := objectAsString(args[0])
		if name == "" {
			return tengo.FalseValue, nil
		}
		ctx.sound(name)
		return tengo.TrueValue, nil
	}}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		name := objectAsString(args[0])
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if name == "" || !okX || !okY {
			return tengo.FalseValue, nil
		}
		ctx.Queue.Spawn(component.SpawnRequest{Archetype: name, X: x, Y: y, Direction: ctx.Body.Direction})
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
