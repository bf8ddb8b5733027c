package ecs

import (
	"fmt"
	"strings"
	"time"
)

type System interface {
	Update(w *World)
}

// Scheduler runs the frame's systems in a fixed order and remembers how long
// each one took on the last frame, for the debug overlay.
type Scheduler struct {
	systems []System
	took    []time.Duration
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.took = append(s.took, 0)
}

func (s *Scheduler) Update(w *World) {
	for i, system := range s.systems {
		start := time.Now()
		system.Update(w)
		s.took[i] = time.Since(start)
	}
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}

// Slowest names the system that took longest on the last Update, e.g.
// "PhysicsSystem". It returns "" before the first Update.
func (s *Scheduler) Slowest() (string, time.Duration) {
	best := -1
	for i, d := range s.took {
		if best < 0 || d > s.took[best] {
			best = i
		}
	}
	if best < 0 || s.took[best] == 0 {
		return "", 0
	}
	return SystemName(s.systems[best]), s.took[best]
}

// SystemName is the bare type name of a system.
func SystemName(system System) string {
	name := strings.TrimPrefix(fmt.Sprintf("%T", system), "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
