package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, name string) int {
	t.Helper()
	st, ok := newEffect(name, sampleRate)
	require.True(t, ok, name)

	buf := make([][2]float64, 512)
	total := 0
	for range 10000 {
		n, ok := st.Stream(buf)
		total += n
		for _, s := range buf[:n] {
			assert.LessOrEqual(t, s[0], 1.0)
			assert.GreaterOrEqual(t, s[0], -1.0)
		}
		if !ok {
			return total
		}
	}
	t.Fatalf("%s never finished", name)
	return 0
}

func TestEffectsAreFinite(t *testing.T) {
	for _, name := range Sounds() {
		t.Run(name, func(t *testing.T) {
			n := drain(t, name)
			assert.Greater(t, n, 0)
			assert.Less(t, n, sampleRate.N(2e9))
		})
	}
}

func TestUnknownEffect(t *testing.T) {
	_, ok := newEffect("kazoo", sampleRate)
	assert.False(t, ok)
}

func TestTracksLoopForever(t *testing.T) {
	for name := range tracks {
		t.Run(name, func(t *testing.T) {
			st, ok := newTrack(name, sampleRate)
			require.True(t, ok)
			buf := make([][2]float64, 4096)
			// Longer than one pass of any melody.
			for range 400 {
				n, ok := st.Stream(buf)
				require.True(t, ok)
				require.Equal(t, len(buf), n)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Player = &r

	p.PreloadMusic("castle")
	p.PlayMusic()
	p.PlaySound("jump")
	p.StopMusic()
	p.PlaySound("ouch")

	assert.Equal(t, []Call{
		{Op: "preload", Name: "castle"},
		{Op: "play"},
		{Op: "sound", Name: "jump"},
		{Op: "stop"},
		{Op: "sound", Name: "ouch"},
	}, r.Calls())
	assert.Equal(t, []string{"jump", "ouch"}, r.Sounds())

	r.Reset()
	assert.Empty(t, r.Calls())
}

func TestSynthWithoutSpeakerIsSilent(t *testing.T) {
	s := NewSynth(Settings{Master: 1, Music: 1, Effects: 1}, nil)
	s.PreloadMusic("overworld")
	s.PlayMusic()
	s.PlaySound("jump")
	s.StopMusic()
	assert.Nil(t, s.music)
	assert.Equal(t, "overworld", s.track)
}

func TestSynthMuteToggle(t *testing.T) {
	s := NewSynth(Settings{Master: 1, Music: 1, Effects: 1}, nil)
	assert.False(t, s.Muted())

	s.SetMute(true)
	assert.True(t, s.Muted())
	s.PreloadMusic("castle")
	s.SetMute(false)

	assert.False(t, s.Muted())
	assert.Nil(t, s.music, "nothing starts without a speaker")
}
