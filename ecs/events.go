package ecs

// EventKind identifies what happened during a frame.
type EventKind int

const (
	EventSound EventKind = iota + 1
	EventMusicStop
	EventPlayerDied
	EventStomp
	EventPickup
	EventEnemySpawned
	EventUnknownEnemy
	EventBossDefeated
	EventLevelComplete
)

func (k EventKind) String() string {
	switch k {
	case EventSound:
		return "sound"
	case EventMusicStop:
		return "music_stop"
	case EventPlayerDied:
		return "player_died"
	case EventStomp:
		return "stomp"
	case EventPickup:
		return "pickup"
	case EventEnemySpawned:
		return "enemy_spawned"
	case EventUnknownEnemy:
		return "unknown_enemy"
	case EventBossDefeated:
		return "boss_defeated"
	case EventLevelComplete:
		return "level_complete"
	default:
		return "unknown"
	}
}

// Event is emitted by systems and consumed by the session after the frame.
type Event struct {
	Kind   EventKind
	Entity Entity
	// Name carries the sound name or enemy archetype.
	Name string
	// Hole is set on EventPlayerDied for pit deaths.
	Hole bool
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Sound is shorthand for pushing an EventSound.
func (q *EventQueue) Sound(name string) {
	q.Push(Event{Kind: EventSound, Name: name})
}

// Len reports queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
