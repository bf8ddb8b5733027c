// Package audio plays the game's sound effects and music.
package audio

import "sync"

// Player receives fire-and-forget audio triggers from the session.
type Player interface {
	PlaySound(name string)
	PlayMusic()
	StopMusic()
	PreloadMusic(track string)
}

// Nop discards every trigger.
type Nop struct{}

func (Nop) PlaySound(string)    {}
func (Nop) PlayMusic()          {}
func (Nop) StopMusic()          {}
func (Nop) PreloadMusic(string) {}

// Call is one trigger seen by a Recorder.
type Call struct {
	Op   string
	Name string
}

// Recorder keeps every trigger in order. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) record(op, name string) {
	r.mu.Lock()
	r.calls = append(r.calls, Call{Op: op, Name: name})
	r.mu.Unlock()
}

func (r *Recorder) PlaySound(name string)     { r.record("sound", name) }
func (r *Recorder) PlayMusic()                { r.record("play", "") }
func (r *Recorder) StopMusic()                { r.record("stop", "") }
func (r *Recorder) PreloadMusic(track string) { r.record("preload", track) }

// Calls returns a copy of the recorded triggers.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Sounds lists the names of recorded PlaySound calls.
func (r *Recorder) Sounds() []string {
	var out []string
	for _, c := range r.Calls() {
		if c.Op == "sound" {
			out = append(out, c.Name)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}
