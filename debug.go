package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"
)

// debugOverlay shows frame rate, held inputs and the player position, and
// turns the mouse into a pizza placement tool.
type debugOverlay struct {
	logger    *log.Logger
	clipboard bool
	status    string
}

func newDebugOverlay(logger *log.Logger) *debugOverlay {
	d := &debugOverlay{logger: logger}
	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		d.clipboard = true
	}
	return d
}

func (d *debugOverlay) Update(g *Game) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		at, placed := g.session.TogglePizza(float64(x), float64(y))
		verb := "removed"
		if placed {
			verb = "placed"
		}
		d.status = fmt.Sprintf("pizza %s at %.0f,%.0f", verb, at.X, at.Y)
		d.logger.Debug("pizza toggled", "x", at.X, "y", at.Y, "placed", placed)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		data, err := g.session.PizzasJSON()
		switch {
		case err != nil:
			d.status = "copy failed"
			d.logger.Error("encode pizzas", "err", err)
		case !d.clipboard:
			d.status = "no clipboard, pizzas logged"
			d.logger.Info("pizzas", "json", string(data))
		default:
			clipboard.Write(clipboard.FmtText, data)
			d.status = fmt.Sprintf("copied %d pizzas", len(g.session.Pizzas()))
		}
	}
}

func (d *debugOverlay) Draw(screen *ebiten.Image, g *Game) {
	lines := []string{
		fmt.Sprintf("FPS: %d", g.session.FPS()),
		"Inputs: " + strings.Join(g.bindings.Held(), ", "),
	}
	if name, took := g.session.SlowestSystem(); name != "" {
		lines = append(lines, fmt.Sprintf("Slowest: %s %.2fms", name, took.Seconds()*1000))
	}
	if x, y, ok := g.session.PlayerPosition(); ok {
		lines = append(lines, fmt.Sprintf("X:%.0f Y:%.0f", x, y))
	}
	if d.status != "" {
		lines = append(lines, d.status)
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 4, 14)
}
