// Package session drives a play-through: the title screen, asynchronous
// level loads, delayed transitions and the per-frame simulation.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/mitchbros/audio"
	"github.com/milk9111/mitchbros/behavior"
	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/ecs/entity"
	"github.com/milk9111/mitchbros/ecs/system"
	"github.com/milk9111/mitchbros/levels"
	"github.com/milk9111/mitchbros/prefabs"
	"github.com/milk9111/mitchbros/render"
)

const levelComplete = "Level complete!"

type Options struct {
	Loader     levels.Loader
	Catalog    *prefabs.Catalog
	Audio      audio.Player
	Logger     *log.Logger
	Seed       uint64
	StartLevel string
}

type loadResult struct {
	epoch    uint64
	id       string
	template *levels.Template
	err      error
}

type Session struct {
	loader     levels.Loader
	audio      audio.Player
	logger     *log.Logger
	env        *behavior.Env
	scheduler  *ecs.Scheduler
	startLevel string

	ctx    context.Context
	cancel context.CancelFunc

	state    State
	run      *RunState
	template *levels.Template
	totals   Totals
	banner   string
	stopTime bool

	now     time.Duration
	clock   *FrameClock
	epoch   uint64
	timers  []timer
	pending chan loadResult
	abort   context.CancelFunc

	confirmHeld bool
}

// New returns a session on the title screen, loading the prefab catalog
// when Options leaves it nil. Close releases any load in flight.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Loader == nil {
		opts.Loader = levels.NewFSLoader("")
	}
	if opts.StartLevel == "" {
		opts.StartLevel = "level1"
	}
	if opts.Catalog == nil {
		catalog, err := prefabs.LoadCatalog()
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		opts.Catalog = catalog
	}
	env := behavior.NewEnv(opts.Catalog, opts.Seed, opts.Logger)
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		loader:     opts.Loader,
		audio:      opts.Audio,
		logger:     opts.Logger,
		env:        env,
		scheduler:  system.NewFrameScheduler(env),
		startLevel: opts.StartLevel,
		ctx:        ctx,
		cancel:     cancel,
		clock:      NewFrameClock(),
	}, nil
}

func (s *Session) Close() {
	s.cancel()
}

func (s *Session) State() State       { return s.state }
func (s *Session) Totals() Totals     { return s.totals }
func (s *Session) Run() *RunState     { return s.run }
func (s *Session) FPS() int           { return s.clock.FPS() }
func (s *Session) Banner() string     { return s.banner }
func (s *Session) Epoch() uint64      { return s.epoch }
func (s *Session) Clock() *FrameClock { return s.clock }

// SetCatalog swaps the behavior catalog. The running level keeps the
// animations it was built with; the next build picks up the change.
func (s *Session) SetCatalog(c *prefabs.Catalog) {
	if c != nil {
		s.env.Catalog = c
	}
}

// SlowestSystem reports the frame system that took longest last frame.
func (s *Session) SlowestSystem() (string, time.Duration) {
	return s.scheduler.Slowest()
}

// ReloadScripts drops compiled behavior scripts so edited sources are read
// again, and gives scripts that failed earlier another chance.
func (s *Session) ReloadScripts() {
	s.env.Scripts.Reset()
	if s.run == nil {
		return
	}
	ecs.ForEach(s.run.World, component.BehaviorComponent.Kind(), func(_ ecs.Entity, b *component.Behavior) {
		b.ScriptDisabled = false
	})
}

// Pause is called when the window loses focus or the pause menu opens.
func (s *Session) Pause() {
	s.clock.Fix()
	if s.run == nil {
		return
	}
	if in, ok := ecs.Get(s.run.World, s.run.Player, component.InputComponent.Kind()); ok {
		*in = component.Input{}
	}
}

// Start leaves the title screen for the configured first level.
func (s *Session) Start() {
	if s.state != StateTitle {
		return
	}
	s.totals = Totals{}
	s.load(s.startLevel)
}

// Frame advances the session to now and returns what to draw.
func (s *Session) Frame(now time.Duration, in Intents) []render.DrawRequest {
	s.now = now
	s.poll()
	s.fireTimers()

	confirm := in.Confirm && !s.confirmHeld
	s.confirmHeld = in.Confirm
	switch {
	case confirm && s.state == StateTitle:
		s.Start()
	case confirm && s.state == StateGameOver:
		s.title()
	}

	switch s.state {
	case StatePlaying, StateDead, StateGameOver:
		s.step(in)
		s.handle(s.run.World.Events().Drain())
	}

	return s.draw()
}

func (s *Session) title() {
	if s.abort != nil {
		s.abort()
		s.abort = nil
	}
	s.pending = nil
	s.epoch++
	s.timers = nil
	s.run = nil
	s.template = nil
	s.banner = ""
	s.state = StateTitle
	s.audio.StopMusic()
}

// load starts fetching a level in the background. The result is picked up
// by a later Frame.
func (s *Session) load(id string) {
	if s.abort != nil {
		s.abort()
	}
	s.epoch++
	s.timers = nil
	s.run = nil
	s.template = nil
	s.banner = ""
	s.state = StateLoading
	s.audio.StopMusic()

	ctx, cancel := context.WithCancel(s.ctx)
	s.abort = cancel
	ch := make(chan loadResult, 1)
	s.pending = ch
	epoch := s.epoch
	s.logger.Info("loading level", "level", id)

	go func() {
		tmpl, err := s.loader.Load(ctx, id)
		ch <- loadResult{epoch: epoch, id: id, template: tmpl, err: err}
	}()
}

func (s *Session) poll() {
	if s.pending == nil {
		return
	}
	select {
	case res := <-s.pending:
		s.receive(res)
	default:
	}
}

// Await blocks until the level load in flight, if any, has delivered its
// result. Headless runs use it to keep simulated time deterministic.
func (s *Session) Await(ctx context.Context) error {
	if s.pending == nil {
		return nil
	}
	select {
	case res := <-s.pending:
		s.receive(res)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) receive(res loadResult) {
	s.pending = nil
	if s.abort != nil {
		s.abort()
		s.abort = nil
	}
	if res.epoch == s.epoch {
		s.loaded(res)
	}
}

func (s *Session) loaded(res loadResult) {
	tmpl := res.template
	s.stopTime = false
	if res.err != nil || tmpl == nil {
		s.logger.Warn("level unavailable, showing game over", "level", res.id, "err", res.err)
		tmpl = levels.GameOver()
		s.stopTime = true
	}
	s.template = tmpl
	s.totals.Total += len(tmpl.Pizzas)
	s.audio.PreloadMusic(tmpl.Music)

	delay := nameCardDelay
	if tmpl.Fallback {
		delay = 0
	}
	s.schedule(timerNameCard, delay, tmpl.ID)
}

// begin builds the first run of the loaded template.
func (s *Session) begin() {
	if err := s.build(); err != nil {
		s.logger.Error("build level", "level", s.template.ID, "err", err)
		s.template = levels.GameOver()
		s.stopTime = true
		if err := s.build(); err != nil {
			s.logger.Error("build game over", "err", err)
			s.title()
			return
		}
	}
	s.clock.Fix()
	s.audio.PlayMusic()
}

func (s *Session) reset() {
	if err := s.build(); err != nil {
		s.logger.Error("reset level", "level", s.template.ID, "err", err)
		s.title()
	}
}

func (s *Session) build() error {
	w := ecs.NewWorld()
	player, err := entity.LoadLevelToWorld(w, s.template, s.env.Catalog)
	if err != nil {
		return err
	}
	s.env.Scripts.Reset()
	s.run = &RunState{World: w, Template: s.template, Player: player}
	if s.template.Fallback {
		s.state = StateGameOver
	} else {
		s.state = StatePlaying
	}
	return nil
}

func (s *Session) step(in Intents) {
	w := s.run.World
	dt := s.clock.Tick(s.now)
	if !s.stopTime {
		s.totals.GameTime += dt
	}

	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok {
		clock.Delta = dt
		clock.GameTime = s.totals.GameTime
		clock.Stopped = s.stopTime
	}
	if input, ok := ecs.Get(w, s.run.Player, component.InputComponent.Kind()); ok {
		*input = component.Input{Left: in.Left, Right: in.Right, Jump: in.Jump}
	}

	s.scheduler.Update(w)

	if clock, ok := ecs.Singleton(w, component.ClockComponent.Kind()); ok && clock.Stopped {
		s.stopTime = true
	}
}

func (s *Session) handle(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Kind {
		case ecs.EventSound:
			s.audio.PlaySound(evt.Name)
		case ecs.EventMusicStop:
			s.audio.StopMusic()
		case ecs.EventPlayerDied:
			s.totals.Deaths++
			if s.state == StatePlaying {
				s.state = StateDead
			}
			s.schedule(timerReset, resetDelay, "")
		case ecs.EventBossDefeated:
			s.schedule(timerBank, bankDelay, "")
			s.schedule(timerLoadNext, bossLoadNextDelay, s.template.NextLevel)
		case ecs.EventLevelComplete:
			s.bank()
			s.banner = levelComplete
			s.state = StateComplete
			s.schedule(timerLoadNext, loadNextDelay, s.template.NextLevel)
		case ecs.EventUnknownEnemy:
			s.logger.Debug("skipped enemy", "name", evt.Name, "level", s.template.ID)
		}
	}
}

// bank moves the run's pizzas into the totals.
func (s *Session) bank() {
	if p := s.player(); p != nil {
		s.totals.Collected += p.Pizzas
		p.Pizzas = 0
	}
}

func (s *Session) player() *component.Player {
	if s.run == nil {
		return nil
	}
	p, _ := ecs.Get(s.run.World, s.run.Player, component.PlayerComponent.Kind())
	return p
}

// PlayerPosition reports the player's position in level coordinates.
func (s *Session) PlayerPosition() (x, y float64, ok bool) {
	if s.run == nil {
		return 0, 0, false
	}
	t, ok := ecs.Get(s.run.World, s.run.Player, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

func (s *Session) draw() []render.DrawRequest {
	blink := render.Blink(s.now.Seconds())
	switch s.state {
	case StateTitle:
		return render.Title(blink)
	case StateLoading:
		if s.template == nil || s.template.Fallback {
			return nil
		}
		return render.NameCard(s.template.Name)
	}
	if s.run == nil {
		return nil
	}

	out := render.World(s.run.World)
	if s.state == StateGameOver {
		return append(out, render.Summary{
			Collected: s.totals.Collected,
			Total:     s.totals.Total,
			Deaths:    s.totals.Deaths,
			GameTime:  s.totals.GameTime,
		}.Requests(blink)...)
	}

	pizzas := s.totals.Collected
	if p := s.player(); p != nil {
		pizzas += p.Pizzas
	}
	out = append(out, render.HUD{Pizzas: pizzas, GameTime: s.totals.GameTime}.Requests()...)
	if s.banner != "" {
		out = append(out, render.Banner(s.banner))
	}
	return out
}
