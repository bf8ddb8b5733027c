package system

import (
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
)

// NewFrameScheduler returns the systems of one gameplay frame in the order
// they must run.
func NewFrameScheduler(env *behavior.Env) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewControlSystem(env),
		NewPhysicsSystem(env),
		NewQueueSystem(env),
		NewCameraSystem(),
		NewPlayerAnimationSystem(env.Catalog),
		NewAnimationSystem(),
		NewPickupSystem(),
		NewSpawnSystem(env),
		NewDespawnSystem(env),
		NewContactSystem(env),
		NewLevelEndSystem(),
		NewHazardSystem(env),
	)
}
