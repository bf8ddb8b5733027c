package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/mitchbros/audio"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/levels"
	"github.com/milk9111/mitchbros/prefabs"
	"github.com/milk9111/mitchbros/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameStep = 16 * time.Millisecond

type stubLoader struct {
	mu     sync.Mutex
	levels map[string]*levels.Template
	calls  []string
}

func (l *stubLoader) Load(_ context.Context, id string) (*levels.Template, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, id)
	t, ok := l.levels[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", levels.ErrUnknownLevel, id)
	}
	return t, nil
}

func (l *stubLoader) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func flatLevel(id, next string) *levels.Template {
	blocks := make([]string, 16)
	blocks[14] = strings.Repeat("1", 40)
	blocks[15] = strings.Repeat("1", 40)
	return &levels.Template{
		ID:        id,
		Name:      "Test " + id,
		Blocks:    blocks,
		Pizzas:    []levels.Pizza{{X: 40, Y: 224}, {X: 300, Y: 100}},
		SpawnX:    40,
		SpawnY:    224,
		EndX:      600,
		EndY:      224,
		Music:     "overworld",
		NextLevel: next,
	}
}

type harness struct {
	s      *Session
	loader *stubLoader
	audio  *audio.Recorder
	now    time.Duration
}

func newHarness(t *testing.T, start string) *harness {
	t.Helper()
	catalog, err := prefabs.LoadCatalog()
	require.NoError(t, err)

	loader := &stubLoader{levels: map[string]*levels.Template{
		"a": flatLevel("a", "b"),
		"b": flatLevel("b", ""),
	}}
	rec := &audio.Recorder{}
	s, err := New(context.Background(), Options{
		Loader:     loader,
		Catalog:    catalog,
		Audio:      rec,
		Logger:     log.New(io.Discard),
		Seed:       1,
		StartLevel: start,
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return &harness{s: s, loader: loader, audio: rec}
}

// settle waits for the background load to deliver its result.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	ch := h.s.pending
	require.NotNil(t, ch)
	require.Eventually(t, func() bool { return len(ch) == 1 }, time.Second, time.Millisecond)
}

func (h *harness) frame(in Intents) []render.DrawRequest {
	h.now += frameStep
	return h.s.Frame(h.now, in)
}

func (h *harness) runUntil(until time.Duration, in Intents) {
	for h.now < until {
		h.frame(in)
	}
}

func (h *harness) play(t *testing.T) {
	t.Helper()
	h.s.Frame(h.now, Intents{Confirm: true})
	require.Equal(t, StateLoading, h.s.State())
	h.settle(t)
	h.runUntil(h.now+nameCardDelay+3*frameStep, Intents{})
	require.Equal(t, StatePlaying, h.s.State())
}

func (h *harness) playerTransform(t *testing.T) *component.Transform {
	t.Helper()
	run := h.s.Run()
	require.NotNil(t, run)
	tr, ok := ecs.Get(run.World, run.Player, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

func hasText(reqs []render.DrawRequest, s string) bool {
	for _, r := range reqs {
		if r.Text == s {
			return true
		}
	}
	return false
}

func hasSprite(reqs []render.DrawRequest, s string) bool {
	for _, r := range reqs {
		if r.Sprite == s {
			return true
		}
	}
	return false
}

func TestTitleToPlaying(t *testing.T) {
	h := newHarness(t, "a")
	assert.Equal(t, StateTitle, h.s.State())
	assert.True(t, hasSprite(h.s.Frame(0, Intents{}), "day"))

	h.s.Frame(0, Intents{Confirm: true})
	require.Equal(t, StateLoading, h.s.State())
	h.settle(t)

	reqs := h.frame(Intents{})
	assert.Equal(t, StateLoading, h.s.State())
	assert.True(t, hasText(reqs, "Test a"), "name card")
	assert.Nil(t, h.s.Run())
	assert.Equal(t, 2, h.s.Totals().Total)

	h.runUntil(h.now+nameCardDelay-2*frameStep, Intents{})
	assert.Equal(t, StateLoading, h.s.State())

	h.runUntil(h.now+3*frameStep, Intents{})
	require.Equal(t, StatePlaying, h.s.State())
	assert.Equal(t, []string{"a"}, h.loader.Calls())
	assert.Equal(t, []audio.Call{
		{Op: "stop"},
		{Op: "preload", Name: "overworld"},
		{Op: "play"},
		{Op: "sound", Name: "glug"},
	}, h.audio.Calls())

	reqs = h.frame(Intents{})
	assert.True(t, hasText(reqs, "1"), "pizza counter includes the spawn pizza")
	assert.True(t, hasSprite(reqs, "clock"))
}

func TestFirstFrameAfterLoadIsOneMillisecond(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)
	before := h.s.Totals().GameTime

	h.s.Pause()
	h.now += 5 * time.Second
	h.s.Frame(h.now, Intents{})

	assert.InDelta(t, 0.001, h.s.Totals().GameTime-before, 1e-9)
}

func TestPitDeathResetsAfterDelay(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)

	tr := h.playerTransform(t)
	tr.Y = 300
	h.frame(Intents{})

	require.Equal(t, StateDead, h.s.State())
	assert.Equal(t, 1, h.s.Totals().Deaths)
	assert.Contains(t, h.audio.Sounds(), "ouch")
	dead := h.s.Run().World

	h.runUntil(h.now+resetDelay-2*frameStep, Intents{})
	assert.Equal(t, StateDead, h.s.State())
	assert.Same(t, dead, h.s.Run().World)

	h.runUntil(h.now+3*frameStep, Intents{})
	require.Equal(t, StatePlaying, h.s.State())
	assert.NotSame(t, dead, h.s.Run().World)
	assert.InDelta(t, 40, h.playerTransform(t).X, 1)
	assert.Equal(t, 1, h.s.Totals().Deaths)
	assert.Equal(t, 2, h.s.Totals().Total, "a respawn does not recount pizzas")
}

func TestLevelCompleteBanksAndLoadsNext(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)

	tr := h.playerTransform(t)
	tr.X, tr.Y = 600, 224
	reqs := h.frame(Intents{})

	require.Equal(t, StateComplete, h.s.State())
	assert.Equal(t, 1, h.s.Totals().Collected)
	assert.True(t, hasText(reqs, levelComplete))
	assert.Contains(t, h.audio.Sounds(), "victory")

	frozen := tr.X
	h.runUntil(h.now+loadNextDelay-2*frameStep, Intents{Right: true})
	assert.Equal(t, StateComplete, h.s.State())
	assert.Equal(t, frozen, tr.X, "the world is frozen after the flag")

	h.runUntil(h.now+3*frameStep, Intents{})
	require.Equal(t, StateLoading, h.s.State())
	h.settle(t)
	h.frame(Intents{})
	assert.Equal(t, []string{"a", "b"}, h.loader.Calls())
	assert.Equal(t, 4, h.s.Totals().Total)
	assert.Equal(t, 1, h.s.Totals().Collected)
}

func TestLoadFailureShowsGameOver(t *testing.T) {
	h := newHarness(t, "missing")

	h.s.Frame(0, Intents{Confirm: true})
	h.settle(t)
	reqs := h.frame(Intents{Confirm: true})

	require.Equal(t, StateGameOver, h.s.State())
	assert.True(t, h.s.Run().Template.Fallback)
	assert.True(t, hasSprite(reqs, "gameOverShade"))
	assert.True(t, hasText(reqs, "0/0"))

	frozen := h.s.Totals().GameTime
	h.runUntil(h.now+time.Second, Intents{})
	assert.Equal(t, frozen, h.s.Totals().GameTime, "clock is stopped")

	h.frame(Intents{Confirm: true})
	assert.Equal(t, StateTitle, h.s.State())
	assert.Nil(t, h.s.Run())
}

func TestConfirmIsEdgeTriggered(t *testing.T) {
	h := newHarness(t, "missing")
	h.s.Frame(0, Intents{Confirm: true})
	h.settle(t)

	// Still held from the title screen.
	h.runUntil(h.now+10*frameStep, Intents{Confirm: true})
	assert.Equal(t, StateGameOver, h.s.State())

	h.frame(Intents{})
	h.frame(Intents{Confirm: true})
	assert.Equal(t, StateTitle, h.s.State())
}

func TestTitleResetsTotals(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)
	h.playerTransform(t).Y = 300
	h.frame(Intents{})
	require.Equal(t, 1, h.s.Totals().Deaths)

	h.s.title()
	h.s.Start()
	assert.Equal(t, Totals{}, h.s.Totals())
	assert.Equal(t, StateLoading, h.s.State())
}

func TestStaleTimerIsDropped(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)

	h.s.timers = append(h.s.timers, timer{due: 0, kind: timerLoadNext, epoch: h.s.Epoch() - 1, level: "b"})
	h.frame(Intents{})

	assert.Equal(t, StatePlaying, h.s.State())
	assert.Empty(t, h.s.timers)
	assert.Equal(t, []string{"a"}, h.loader.Calls())
}

func TestTimersFireInDueOrder(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)

	h.s.now = h.now
	h.s.schedule(timerLoadNext, 2*frameStep, "b")
	h.s.schedule(timerBank, frameStep, "")
	h.runUntil(h.now+3*frameStep, Intents{})

	assert.Equal(t, StateLoading, h.s.State())
	assert.Equal(t, 1, h.s.Totals().Collected, "bank ran before the load replaced the run")
}

func TestPauseClearsInput(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)
	h.frame(Intents{Right: true})

	run := h.s.Run()
	in, ok := ecs.Get(run.World, run.Player, component.InputComponent.Kind())
	require.True(t, ok)
	require.True(t, in.Right)

	h.s.Pause()
	assert.Equal(t, component.Input{}, *in)
}

func TestTogglePizza(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)
	assert.Equal(t, []levels.Pizza{{X: 300, Y: 100}}, h.s.Pizzas())

	at, placed := h.s.TogglePizza(101, 99)
	assert.True(t, placed)
	assert.Equal(t, levels.Pizza{X: 104, Y: 104}, at)

	data, err := h.s.PizzasJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"x":300,"y":100},{"x":104,"y":104}]`, string(data))

	_, placed = h.s.TogglePizza(103, 97)
	assert.False(t, placed)
	assert.Equal(t, []levels.Pizza{{X: 300, Y: 100}}, h.s.Pizzas())
}

func TestFrameClock(t *testing.T) {
	c := NewFrameClock()
	assert.InDelta(t, 0.001, c.Tick(time.Second), 1e-12)
	assert.InDelta(t, 0.02, c.Tick(time.Second+20*time.Millisecond), 1e-12)

	for i := 2; i <= 5; i++ {
		c.Tick(time.Second + time.Duration(i)*20*time.Millisecond)
	}
	assert.Equal(t, 50, c.FPS())

	c.Fix()
	assert.InDelta(t, 0.001, c.Tick(time.Hour), 1e-12)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateTitle, "title"},
		{StateLoading, "loading"},
		{StatePlaying, "playing"},
		{StateDead, "dead"},
		{StateComplete, "complete"},
		{StateGameOver, "game_over"},
		{State(99), "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.state.String())
		})
	}
}

func TestAwaitDeliversLoad(t *testing.T) {
	h := newHarness(t, "a")
	require.NoError(t, h.s.Await(context.Background()), "nothing in flight")

	h.s.Frame(0, Intents{Confirm: true})
	require.NoError(t, h.s.Await(context.Background()))
	assert.Nil(t, h.s.pending)
	assert.Equal(t, 2, h.s.Totals().Total)
	assert.Equal(t, StateLoading, h.s.State())
}

// stompBoss drops the player onto a freshly queued Boss and returns the time
// of the frame that killed it.
func stompBoss(t *testing.T, h *harness) time.Duration {
	t.Helper()
	run := h.s.Run()
	tr := h.playerTransform(t)
	body, ok := ecs.Get(run.World, run.Player, component.BodyComponent.Kind())
	require.True(t, ok)
	queue, ok := ecs.Singleton(run.World, component.SpawnQueueComponent.Kind())
	require.True(t, ok)

	tr.X, tr.Y = 200, 150
	body.SpeedY, body.OnFloor = 100, false
	queue.Spawn(component.SpawnRequest{Archetype: "Boss", X: 200, Y: 160})
	h.frame(Intents{})
	return h.now
}

func TestBossDefeatBanksThenLoadsNext(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)
	h.runUntil(h.now+10*frameStep, Intents{})
	require.Equal(t, 1, h.s.player().Pizzas)

	defeated := stompBoss(t, h)
	run := h.s.Run()
	assert.Equal(t, StatePlaying, h.s.State())
	assert.True(t, h.s.stopTime)
	assert.True(t, h.s.player().ControlsLocked)

	frozen := h.s.Totals().GameTime
	x := h.playerTransform(t).X
	h.runUntil(defeated+bankDelay-frameStep, Intents{Right: true, Jump: true})
	assert.Equal(t, StatePlaying, h.s.State())
	assert.Equal(t, frozen, h.s.Totals().GameTime)
	assert.Equal(t, x, h.playerTransform(t).X)
	assert.Empty(t, h.s.Banner())
	assert.Same(t, run, h.s.Run())

	h.runUntil(defeated+bankDelay+frameStep, Intents{})
	assert.Equal(t, StateComplete, h.s.State())
	assert.Equal(t, levelComplete, h.s.Banner())
	assert.Equal(t, 1, h.s.Totals().Collected)
	assert.Equal(t, frozen, h.s.Totals().GameTime)
	assert.Contains(t, h.audio.Calls(), audio.Call{Op: "sound", Name: "victory"})

	h.runUntil(defeated+bossLoadNextDelay-frameStep, Intents{})
	assert.Equal(t, StateComplete, h.s.State())
	assert.Equal(t, []string{"a"}, h.loader.Calls())

	h.runUntil(defeated+bossLoadNextDelay, Intents{})
	assert.Equal(t, StateLoading, h.s.State())
	h.settle(t)
	assert.Equal(t, []string{"a", "b"}, h.loader.Calls())
}

func TestBossDefeatThenFlagLoadsOnce(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)
	h.runUntil(h.now+10*frameStep, Intents{})

	defeated := stompBoss(t, h)
	require.True(t, h.s.stopTime)

	tr := h.playerTransform(t)
	tr.X, tr.Y = 600, 224
	h.frame(Intents{})
	require.Equal(t, StateComplete, h.s.State())
	assert.Equal(t, 1, h.s.Totals().Collected)

	// The flag's load fires first and supersedes the boss's pending one.
	h.runUntil(defeated+frameStep+loadNextDelay, Intents{})
	require.Equal(t, StateLoading, h.s.State())
	h.settle(t)
	epoch := h.s.Epoch()

	h.runUntil(defeated+bossLoadNextDelay+time.Second, Intents{})
	assert.Equal(t, epoch, h.s.Epoch())
	assert.Equal(t, []string{"a", "b"}, h.loader.Calls())
	assert.Equal(t, 1, h.s.Totals().Collected)
}

func TestReloadScriptsReenablesFailedScripts(t *testing.T) {
	h := newHarness(t, "a")
	h.play(t)
	run := h.s.Run()

	e := ecs.CreateEntity(run.World)
	b := component.NewBehavior(component.KindFly, "Fly", 0, 0)
	b.Script, b.ScriptDisabled = "hop.tengo", true
	require.NoError(t, ecs.Add(run.World, e, component.BehaviorComponent.Kind(), b))

	h.s.ReloadScripts()
	assert.False(t, b.ScriptDisabled)
}

func TestSlowestSystem(t *testing.T) {
	h := newHarness(t, "a")
	name, _ := h.s.SlowestSystem()
	assert.Empty(t, name)

	h.play(t)
	name, took := h.s.SlowestSystem()
	assert.True(t, strings.HasSuffix(name, "System"), name)
	assert.Positive(t, took)
}

func TestNewLoadsDefaultCatalog(t *testing.T) {
	loader := &stubLoader{levels: map[string]*levels.Template{"a": flatLevel("a", "")}}
	s, err := New(context.Background(), Options{
		Loader:     loader,
		Logger:     log.New(io.Discard),
		StartLevel: "a",
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	h := &harness{s: s, loader: loader}
	h.play(t)
	h.playerTransform(t)
	assert.Equal(t, 160.0, s.env.Catalog.Player.MaxSpeedX)
}
