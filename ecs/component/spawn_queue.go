package component

import "math"

// SpawnRequest asks for an enemy to be created after the physics pass.
type SpawnRequest struct {
	Archetype string
	X         float64
	Y         float64
	// Direction overrides the archetype direction when non-zero.
	Direction float64
	// Front places the new entity before every existing actor.
	Front bool
	// Radius and Copy configure orbiting firebar segments.
	Radius float64
	Copy   bool
}

// SpawnQueue collects structural changes requested while systems iterate.
type SpawnQueue struct {
	Spawns   []SpawnRequest
	Removals []uint64
	front    int
	back     int
}

func (q *SpawnQueue) Spawn(req SpawnRequest) {
	q.Spawns = append(q.Spawns, req)
}

// Remove queues an entity id for removal.
func (q *SpawnQueue) Remove(id uint64) {
	q.Removals = append(q.Removals, id)
}

// NextOrder hands out actor orders: front entries count down from -1,
// back entries count up from 1.
func (q *SpawnQueue) NextOrder(front bool) int {
	if front {
		if q.front > math.MinInt+1 {
			q.front--
		}
		return q.front
	}
	q.back++
	return q.back
}

// Pending reports whether anything is queued.
func (q *SpawnQueue) Pending() bool {
	return len(q.Spawns) > 0 || len(q.Removals) > 0
}

// Take returns and clears the queued requests.
func (q *SpawnQueue) Take() ([]SpawnRequest, []uint64) {
	spawns, removals := q.Spawns, q.Removals
	q.Spawns, q.Removals = nil, nil
	return spawns, removals
}

var SpawnQueueComponent = NewComponent[SpawnQueue]()
