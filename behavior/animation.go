package behavior

import (
	"math"

	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/prefabs"
)

// SetAnimation switches a to the named cycle, restarting it. Unknown names
// and the already playing cycle are ignored.
func SetAnimation(a *component.Animation, catalog *prefabs.Catalog, name string) bool {
	if a == nil || a.Name == name {
		return false
	}
	spec, ok := catalog.Animation(name)
	if !ok {
		return false
	}
	*a = component.Animation{
		Name:        name,
		Frames:      append([]string(nil), spec.Frames...),
		Speed:       spec.Speed,
		Directional: spec.Directional,
	}
	return true
}

// Advance moves an animation forward by dt.
func Advance(a *component.Animation, dt float64) {
	if a == nil || len(a.Frames) == 0 {
		return
	}
	n := float64(len(a.Frames))
	a.Time = math.Mod(a.Time+a.Speed*dt, n)
	if a.Time < 0 {
		a.Time += n
	}
	a.Frame = int(math.Floor(a.Time))
	if a.Frame >= len(a.Frames) {
		a.Frame = len(a.Frames) - 1
	}
}
