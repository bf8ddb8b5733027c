package session

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Step holds one set of intents for a stretch of simulated time.
type Step struct {
	Intents  Intents
	Duration time.Duration
}

// ParseScript reads a comma separated list of `buttons:duration` steps,
// for example "confirm:16ms,wait:3.1s,right+jump:500ms". Buttons are left,
// right, jump and confirm joined with '+'; wait holds nothing.
func ParseScript(src string) ([]Step, error) {
	var steps []Step
	for _, field := range strings.Split(src, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		buttons, dur, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("session: script step %q: missing duration", field)
		}
		d, err := time.ParseDuration(strings.TrimSpace(dur))
		if err != nil {
			return nil, fmt.Errorf("session: script step %q: %w", field, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("session: script step %q: duration must be positive", field)
		}

		var in Intents
		for _, b := range strings.Split(buttons, "+") {
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "left":
				in.Left = true
			case "right":
				in.Right = true
			case "jump":
				in.Jump = true
			case "confirm":
				in.Confirm = true
			case "wait", "":
			default:
				return nil, fmt.Errorf("session: script step %q: unknown button %q", field, b)
			}
		}
		steps = append(steps, Step{Intents: in, Duration: d})
	}
	return steps, nil
}

// Result summarises a headless run.
type Result struct {
	State  State
	Level  string
	Frames int
	Totals Totals
}

// Simulate drives the session with a fixed timestep. Level loads are
// awaited as soon as they start so simulated time never outruns them.
func Simulate(ctx context.Context, s *Session, steps []Step, tick time.Duration) (Result, error) {
	if tick <= 0 {
		return Result{}, fmt.Errorf("session: simulate: tick must be positive")
	}
	var res Result
	now := s.now
	for _, step := range steps {
		for end := now + step.Duration; now < end; {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			now += tick
			s.Frame(now, step.Intents)
			res.Frames++
			if err := s.Await(ctx); err != nil {
				return res, err
			}
		}
	}

	res.State = s.state
	res.Totals = s.totals
	if s.template != nil {
		res.Level = s.template.ID
	}
	return res, nil
}
