package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/mitchbros/config"
	"github.com/milk9111/mitchbros/session"
)

// Bindings maps keyboard keys to game intents.
type Bindings struct {
	left    []ebiten.Key
	right   []ebiten.Key
	jump    []ebiten.Key
	confirm []ebiten.Key
	pause   []ebiten.Key
}

func NewBindings(c config.Controls) (*Bindings, error) {
	var b Bindings
	for _, bind := range []struct {
		action string
		names  []string
		dst    *[]ebiten.Key
	}{
		{"left", c.Left, &b.left},
		{"right", c.Right, &b.right},
		{"jump", c.Jump, &b.jump},
		{"confirm", c.Confirm, &b.confirm},
		{"pause", c.Pause, &b.pause},
	} {
		for _, name := range bind.names {
			k, err := parseKey(name)
			if err != nil {
				return nil, fmt.Errorf("controls: %s: %w", bind.action, err)
			}
			*bind.dst = append(*bind.dst, k)
		}
	}
	return &b, nil
}

// parseKey accepts ebiten key names such as "ArrowLeft", "A" or "Space".
func parseKey(name string) (ebiten.Key, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "Key")
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// Intents reads the held keys. A left click also confirms unless the debug
// overlay owns the mouse.
func (b *Bindings) Intents(mouseConfirms bool) session.Intents {
	return session.Intents{
		Left:    anyPressed(b.left),
		Right:   anyPressed(b.right),
		Jump:    anyPressed(b.jump),
		Confirm: anyPressed(b.confirm) || (mouseConfirms && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)),
	}
}

func (b *Bindings) PausePressed() bool {
	return anyJustPressed(b.pause)
}

// Held lists the names of bound keys currently down, for the debug overlay.
func (b *Bindings) Held() []string {
	var out []string
	seen := map[ebiten.Key]bool{}
	for _, keys := range [][]ebiten.Key{b.left, b.right, b.jump, b.confirm} {
		for _, k := range keys {
			if !seen[k] && ebiten.IsKeyPressed(k) {
				seen[k] = true
				out = append(out, k.String())
			}
		}
	}
	return out
}
