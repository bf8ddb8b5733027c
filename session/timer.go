package session

import "time"

type timerKind int

const (
	timerNameCard timerKind = iota
	timerReset
	timerBank
	timerLoadNext
)

const (
	nameCardDelay     = 3 * time.Second
	resetDelay        = 2 * time.Second
	bankDelay         = 2 * time.Second
	bossLoadNextDelay = 6200 * time.Millisecond
	loadNextDelay     = 4200 * time.Millisecond
)

// timer is a delayed transition. It only fires while the level it was
// scheduled in is still current.
type timer struct {
	due   time.Duration
	kind  timerKind
	epoch uint64
	level string
}

func (s *Session) schedule(kind timerKind, delay time.Duration, level string) {
	s.timers = append(s.timers, timer{due: s.now + delay, kind: kind, epoch: s.epoch, level: level})
}

// fireTimers runs every due timer in scheduling order.
func (s *Session) fireTimers() {
	for {
		i := s.nextDue()
		if i < 0 {
			return
		}
		t := s.timers[i]
		s.timers = append(s.timers[:i], s.timers[i+1:]...)
		if t.epoch != s.epoch {
			s.logger.Debug("dropped stale timer", "kind", t.kind, "epoch", t.epoch)
			continue
		}
		s.fire(t)
	}
}

func (s *Session) nextDue() int {
	best := -1
	for i, t := range s.timers {
		if t.due > s.now {
			continue
		}
		if best < 0 || t.due < s.timers[best].due {
			best = i
		}
	}
	return best
}

func (s *Session) fire(t timer) {
	switch t.kind {
	case timerNameCard:
		s.begin()
	case timerReset:
		if s.state == StateDead || s.state == StateGameOver {
			s.reset()
		}
	case timerBank:
		s.bank()
		s.banner = levelComplete
		s.state = StateComplete
		s.audio.PlaySound("victory")
	case timerLoadNext:
		s.load(t.level)
	}
}
