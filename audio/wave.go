package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveTriangle
	waveNoise
)

// tone is a single oscillator that sweeps linearly from one frequency to
// another and fades out over its release.
type tone struct {
	rate     beep.SampleRate
	wave     waveType
	from, to float64
	gain     float64
	total    int
	release  int
	pos      int
	phase    float64
	seed     uint32
}

func newTone(rate beep.SampleRate, wave waveType, from, to float64, d, release time.Duration, gain float64) *tone {
	return &tone{
		rate:    rate,
		wave:    wave,
		from:    from,
		to:      to,
		gain:    gain,
		total:   rate.N(d),
		release: rate.N(release),
		seed:    0x2545f491,
	}
}

func (t *tone) sample() float64 {
	switch t.wave {
	case waveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case waveTriangle:
		return 4*math.Abs(t.phase-0.5) - 1
	case waveNoise:
		t.seed ^= t.seed << 13
		t.seed ^= t.seed >> 17
		t.seed ^= t.seed << 5
		return float64(t.seed)/float64(math.MaxUint32)*2 - 1
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.from + (t.to-t.from)*progress

		env := 1.0
		if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
			env = float64(remaining) / float64(t.release)
		}

		v := t.sample() * env * t.gain
		samples[i][0] = v
		samples[i][1] = v

		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// note is one step of a melody; a zero frequency is a rest.
type note struct {
	freq  float64
	beats float64
}

// melody repeats a note sequence forever.
type melody struct {
	rate    beep.SampleRate
	notes   []note
	beat    int
	wave    waveType
	gain    float64
	current *tone
	index   int
}

func newMelody(rate beep.SampleRate, tempo float64, wave waveType, gain float64, notes []note) *melody {
	return &melody{
		rate:  rate,
		notes: notes,
		beat:  rate.N(time.Duration(float64(time.Minute) / tempo)),
		wave:  wave,
		gain:  gain,
	}
}

func (m *melody) next() *tone {
	n := m.notes[m.index%len(m.notes)]
	m.index++
	d := time.Duration(float64(m.rate.D(m.beat)) * n.beats)
	gain := m.gain
	if n.freq == 0 {
		gain = 0
	}
	return newTone(m.rate, m.wave, n.freq, n.freq, d, d/4, gain)
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	if len(m.notes) == 0 {
		return 0, false
	}
	for n < len(samples) {
		if m.current == nil {
			m.current = m.next()
		}
		k, more := m.current.Stream(samples[n:])
		n += k
		if !more || k == 0 {
			m.current = nil
		}
	}
	return n, true
}

func (m *melody) Err() error { return nil }

// layered sums streamers that start together and ends with the longest.
type layered []beep.Streamer

func (l layered) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		samples[i] = [2]float64{}
	}
	tmp := make([][2]float64, len(samples))
	for _, st := range l {
		k, more := st.Stream(tmp)
		for i := 0; i < k; i++ {
			samples[i][0] += tmp[i][0]
			samples[i][1] += tmp[i][1]
		}
		n = max(n, k)
		ok = ok || more
	}
	return n, ok
}

func (l layered) Err() error { return nil }
