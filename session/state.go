package session

import (
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/levels"
)

type State int

const (
	StateTitle State = iota
	StateLoading
	StatePlaying
	StateDead
	StateComplete
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateDead:
		return "dead"
	case StateComplete:
		return "complete"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Intents are the held buttons for one frame.
type Intents struct {
	Left    bool
	Right   bool
	Jump    bool
	Confirm bool
}

// Totals accumulate across levels until the title screen resets them.
type Totals struct {
	Collected int
	Total     int
	Deaths    int
	GameTime  float64
}

// RunState is one attempt at a level. It is rebuilt from Template on load
// and on every respawn.
type RunState struct {
	World    *ecs.World
	Template *levels.Template
	Player   ecs.Entity
}
