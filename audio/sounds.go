package audio

import (
	"time"

	"github.com/gopxl/beep"
)

const ms = time.Millisecond

// effect builds a fresh streamer for one play of a sound.
type effect func(rate beep.SampleRate) beep.Streamer

var soundEffects = map[string]effect{
	"jump": func(rate beep.SampleRate) beep.Streamer {
		return newTone(rate, waveSquare, 320, 640, 140*ms, 60*ms, 0.25)
	},
	"ouch": func(rate beep.SampleRate) beep.Streamer {
		return newTone(rate, waveTriangle, 520, 110, 380*ms, 120*ms, 0.4)
	},
	"glug": func(rate beep.SampleRate) beep.Streamer {
		return beep.Seq(
			newTone(rate, waveSine, 420, 620, 50*ms, 15*ms, 0.4),
			newTone(rate, waveSine, 520, 760, 50*ms, 15*ms, 0.4),
			newTone(rate, waveSine, 640, 900, 70*ms, 30*ms, 0.4),
		)
	},
	"stomp": func(rate beep.SampleRate) beep.Streamer {
		return layered{
			newTone(rate, waveNoise, 0, 0, 90*ms, 70*ms, 0.25),
			newTone(rate, waveSine, 160, 50, 120*ms, 80*ms, 0.5),
		}
	},
	"victory": func(rate beep.SampleRate) beep.Streamer {
		return beep.Seq(
			newTone(rate, waveSquare, 523.25, 523.25, 120*ms, 20*ms, 0.2),
			newTone(rate, waveSquare, 659.25, 659.25, 120*ms, 20*ms, 0.2),
			newTone(rate, waveSquare, 783.99, 783.99, 120*ms, 20*ms, 0.2),
			newTone(rate, waveSquare, 1046.5, 1046.5, 480*ms, 300*ms, 0.2),
		)
	},
}

// Sounds lists the effect names the synthesizer knows.
func Sounds() []string {
	return []string{"glug", "jump", "ouch", "stomp", "victory"}
}

const (
	c4 = 261.63
	d4 = 293.66
	e4 = 329.63
	f4 = 349.23
	g4 = 392.00
	a4 = 440.00
	b4 = 493.88
	c5 = 523.25
	a3 = 220.00
	e3 = 164.81
	g3 = 196.00
)

type track struct {
	tempo float64
	wave  waveType
	notes []note
}

var tracks = map[string]track{
	"overworld": {tempo: 150, wave: waveSquare, notes: []note{
		{e4, 1}, {g4, 1}, {c5, 1}, {g4, 1}, {a4, 1}, {f4, 1}, {g4, 2},
		{e4, 1}, {d4, 1}, {c4, 1}, {d4, 1}, {e4, 2}, {0, 2},
	}},
	"underground": {tempo: 120, wave: waveTriangle, notes: []note{
		{c4, 0.5}, {0, 0.5}, {a3, 0.5}, {0, 0.5}, {e3, 0.5}, {0, 1.5},
		{c4, 0.5}, {0, 0.5}, {b4 / 2, 0.5}, {0, 0.5}, {g3, 0.5}, {0, 1.5},
	}},
	"castle": {tempo: 96, wave: waveSquare, notes: []note{
		{a3, 1}, {c4, 1}, {e4, 1}, {c4, 1}, {a3, 1}, {b4 / 2, 1}, {e3, 2},
	}},
}

func newEffect(name string, rate beep.SampleRate) (beep.Streamer, bool) {
	build, ok := soundEffects[name]
	if !ok {
		return nil, false
	}
	return build(rate), true
}

func newTrack(name string, rate beep.SampleRate) (beep.Streamer, bool) {
	t, ok := tracks[name]
	if !ok {
		return nil, false
	}
	return newMelody(rate, t.tempo, t.wave, 0.12, t.notes), true
}
