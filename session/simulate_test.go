package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    []Step
		wantErr bool
	}{
		{
			name: "buttons and waits",
			src:  "confirm:16ms, wait:3s,right+jump:500ms",
			want: []Step{
				{Intents: Intents{Confirm: true}, Duration: 16 * time.Millisecond},
				{Duration: 3 * time.Second},
				{Intents: Intents{Right: true, Jump: true}, Duration: 500 * time.Millisecond},
			},
		},
		{name: "empty", src: "", want: nil},
		{name: "case insensitive", src: "LEFT:1s", want: []Step{{Intents: Intents{Left: true}, Duration: time.Second}}},
		{name: "missing duration", src: "right", wantErr: true},
		{name: "bad duration", src: "right:soon", wantErr: true},
		{name: "zero duration", src: "right:0s", wantErr: true},
		{name: "unknown button", src: "duck:1s", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseScript(tc.src)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSimulateRunsRight(t *testing.T) {
	h := newHarness(t, "a")
	steps, err := ParseScript("confirm:16ms,wait:3100ms,right:1s")
	require.NoError(t, err)

	res, err := Simulate(context.Background(), h.s, steps, frameStep)
	require.NoError(t, err)

	assert.Equal(t, StatePlaying, res.State)
	assert.Equal(t, "a", res.Level)
	assert.Equal(t, 2, res.Totals.Total)
	assert.Positive(t, res.Frames)
	assert.Greater(t, h.playerTransform(t).X, 100.0)
}

func TestSimulateRejectsBadTick(t *testing.T) {
	h := newHarness(t, "a")
	_, err := Simulate(context.Background(), h.s, nil, 0)
	assert.Error(t, err)
}
