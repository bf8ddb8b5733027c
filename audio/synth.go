package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Settings are the mixer levels in [0, 1].
type Settings struct {
	Master  float64
	Music   float64
	Effects float64
	Mute    bool
}

// Synth renders effects and music procedurally through the beep speaker.
type Synth struct {
	mu          sync.Mutex
	settings    Settings
	logger      *log.Logger
	mixer       *beep.Mixer
	music       *beep.Ctrl
	track       string
	initialized bool
}

func NewSynth(settings Settings, logger *log.Logger) *Synth {
	if logger == nil {
		logger = log.Default()
	}
	return &Synth{settings: settings, logger: logger, mixer: &beep.Mixer{}}
}

// Init opens the speaker. The game runs silently when it fails.
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Close silences everything.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.music = nil
	s.initialized = false
}

func (s *Synth) PlaySound(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized || s.settings.Mute {
		return
	}
	st, ok := newEffect(name, sampleRate)
	if !ok {
		s.logger.Debug("unknown sound", "name", name)
		return
	}
	s.add(withVolume(st, s.settings.Master*s.settings.Effects))
}

// PreloadMusic selects the track the next PlayMusic starts.
func (s *Synth) PreloadMusic(track string) {
	s.mu.Lock()
	s.track = track
	s.mu.Unlock()
}

func (s *Synth) PlayMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopMusic()
	if !s.initialized || s.settings.Mute || s.track == "" {
		return
	}
	st, ok := newTrack(s.track, sampleRate)
	if !ok {
		s.logger.Debug("unknown music track", "track", s.track)
		return
	}
	s.music = &beep.Ctrl{Streamer: withVolume(st, s.settings.Master*s.settings.Music)}
	s.add(s.music)
}

func (s *Synth) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopMusic()
}

func (s *Synth) stopMusic() {
	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = true
	s.music.Streamer = nil
	speaker.Unlock()
	s.music = nil
}

// SetMute silences or restores output. Unmuting restarts the selected
// track if it never started.
func (s *Synth) SetMute(mute bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.Mute = mute
	if s.music != nil {
		speaker.Lock()
		s.music.Paused = mute
		speaker.Unlock()
		return
	}
	if !mute && s.initialized && s.track != "" {
		if st, ok := newTrack(s.track, sampleRate); ok {
			s.music = &beep.Ctrl{Streamer: withVolume(st, s.settings.Master*s.settings.Music)}
			s.add(s.music)
		}
	}
}

func (s *Synth) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Mute
}

func (s *Synth) add(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func withVolume(st beep.Streamer, level float64) beep.Streamer {
	if level <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(level)}
}
