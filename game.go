package main

import (
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/mitchbros/audio"
	"github.com/milk9111/mitchbros/prefabs"
	"github.com/milk9111/mitchbros/render"
	"github.com/milk9111/mitchbros/session"
)

const (
	tileSize       = 16
	backgroundSize = 128
)

var (
	clearColor = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	textColor  = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	textShadow = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
)

type GameOptions struct {
	Session  *session.Session
	Bindings *Bindings
	Catalog  *prefabs.Catalog
	Synth    *audio.Synth
	Watcher  *prefabs.Watcher
	Logger   *log.Logger
	Debug    bool
}

// Game adapts the session to ebiten. Sprites are drawn as flat colored
// rectangles looked up in the catalog palette.
type Game struct {
	session  *session.Session
	bindings *Bindings
	catalog  *prefabs.Catalog
	synth    *audio.Synth
	watcher  *prefabs.Watcher
	logger   *log.Logger

	face  text.Face
	start time.Time
	draws []render.DrawRequest

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
	focused bool

	debug *debugOverlay
}

func NewGame(opts GameOptions) *Game {
	g := &Game{
		session:  opts.Session,
		bindings: opts.Bindings,
		catalog:  opts.Catalog,
		synth:    opts.Synth,
		watcher:  opts.Watcher,
		logger:   opts.Logger,
		face:     text.NewGoXFace(basicfont.Face7x13),
		start:    time.Now(),
		focused:  true,
	}
	if opts.Debug {
		g.debug = newDebugOverlay(g.logger)
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reloadPrefabs()

	focused := ebiten.IsFocused()
	if focused != g.focused {
		g.focused = focused
		g.session.Pause()
	}
	if !focused {
		return nil
	}

	if g.bindings.PausePressed() {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	in := g.bindings.Intents(g.debug == nil)
	g.draws = g.session.Frame(time.Since(g.start), in)
	if g.debug != nil {
		g.debug.Update(g)
	}
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	g.session.Pause()
}

// reloadPrefabs applies at most one batch of prefab edits per frame.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case change, ok := <-g.watcher.Changes:
		if !ok {
			g.watcher = nil
			return
		}
		g.applyChange(change)
	case err, ok := <-g.watcher.Errors:
		if !ok {
			g.watcher = nil
			return
		}
		g.logger.Warn("prefab watcher", "err", err)
	default:
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	if change.Has(prefabs.CatalogChanged) {
		catalog, err := prefabs.LoadCatalog()
		if err != nil {
			g.logger.Error("reload catalog", "files", change.Files, "err", err)
			return
		}
		g.catalog = catalog
		g.session.SetCatalog(catalog)
	}
	if change.Has(prefabs.ScriptChanged) {
		g.session.ReloadScripts()
	}
	g.logger.Info("reloaded prefabs", "files", change.Files)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	for _, r := range g.draws {
		if r.Text != "" {
			g.drawText(screen, r)
			continue
		}
		g.drawSprite(screen, r)
	}
	if g.debug != nil {
		g.debug.Draw(screen, g)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawSprite(screen *ebiten.Image, r render.DrawRequest) {
	scale := r.Scale
	if scale == 0 {
		scale = 1
	}
	size := float64(tileSize)
	switch r.Layer {
	case render.LayerBackground:
		size = backgroundSize
	case render.LayerHUD:
		if r.Sprite == "gameOverShade" {
			size = render.ScreenWidth
		}
	}
	size *= scale
	c := g.catalog.Color(r.Sprite, colornames.Magenta)
	vector.FillRect(screen, float32(r.X), float32(r.Y), float32(size), float32(size), c, false)
}

func (g *Game) drawText(screen *ebiten.Image, r render.DrawRequest) {
	scale := r.Scale
	if scale == 0 {
		scale = 1
	}
	width, _ := text.Measure(r.Text, g.face, 0)
	x := r.X
	if r.Centered {
		x -= width * scale / 2
	}
	// Requests give the baseline; text/v2 draws from the top.
	y := r.Y - g.face.Metrics().HAscent*scale

	for _, pass := range []struct {
		dx, dy float64
		c      color.Color
	}{
		{1, 1, textShadow},
		{0, 0, textColor},
	} {
		op := &text.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x+pass.dx, y+pass.dy)
		op.ColorScale.ScaleWithColor(pass.c)
		text.Draw(screen, r.Text, g.face, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return render.ScreenWidth, render.ScreenHeight
}
