package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HUD is the in-level counter strip.
type HUD struct {
	Pizzas   int
	GameTime float64
}

// Summary is the end-of-game report.
type Summary struct {
	Collected int
	Total     int
	Deaths    int
	GameTime  float64
}

func (h HUD) Requests() []DrawRequest {
	return []DrawRequest{
		hudSprite("pizza0", 0, 0),
		text(strconv.Itoa(h.Pizzas), 18, 7, false),
		hudSprite("clock", 48, 0),
		text(FormatTime(h.GameTime, 1), 66, 7, false),
	}
}

// Requests draws the summary; blink shows the replay prompt.
func (s Summary) Requests(blink bool) []DrawRequest {
	pizzas := fmt.Sprintf("%d/%d", s.Collected, s.Total)
	clock := FormatTime(s.GameTime, 2)
	deaths := strconv.Itoa(s.Deaths)

	widest := max(len(pizzas), len(clock), len(deaths))
	textX := 136 - float64(widest*charWidth)/2
	iconX := textX - 18

	out := []DrawRequest{
		{Sprite: "gameOverShade", Scale: 1, Layer: LayerHUD},
		hudSprite("pizza0", iconX, 24),
		text(pizzas, textX, 32, false),
		hudSprite("clock", iconX, 40),
		text(clock, textX, 48, false),
		hudSprite("skull", iconX, 56),
		text(deaths, textX, 64, false),
	}
	if blink {
		out = append(out, text("Play again?", ScreenWidth/2, 128, true))
	}
	return out
}

// charWidth approximates the HUD font advance.
const charWidth = 6

func hudSprite(name string, x, y float64) DrawRequest {
	return sprite(name, x, y, LayerHUD)
}

// Title is the start screen.
func Title(blink bool) []DrawRequest {
	bg := sprite("day", 0, 0, LayerBackground)
	bg.Scale = 2
	out := []DrawRequest{
		bg,
		{Text: "Mitch", X: 140, Y: 54, Scale: 3, Layer: LayerHUD, Centered: true},
		{Text: "Super", X: 112, Y: 34, Scale: 2, Layer: LayerHUD, Centered: true},
		{Text: "Bros", X: 162, Y: 74, Scale: 3, Layer: LayerHUD, Centered: true},
		text("Made by Lobo", 206, 244, true),
	}
	if blink {
		out = append(out, text("Start", ScreenWidth/2, 128, true))
	}
	return out
}

// NameCard is shown while a level is loading.
func NameCard(name string) []DrawRequest {
	if name == "" {
		return nil
	}
	return []DrawRequest{text(name, ScreenWidth/2, ScreenHeight/2, true)}
}

// Banner is a centred message over the level.
func Banner(msg string) DrawRequest {
	return text(msg, ScreenWidth/2, ScreenHeight/2, true)
}

// Blink reports whether blinking prompts are lit at the given time.
func Blink(seconds float64) bool {
	ms := math.Mod(seconds*1000, 1000)
	return math.Mod(ms, 250) < 150
}

// FormatTime renders seconds as [h:][m:]s.f with the given number of
// fractional digits, truncating rather than rounding.
func FormatTime(seconds float64, decimals int) string {
	if seconds < 0 {
		seconds = 0
	}
	pow := math.Pow(10, float64(decimals))
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(math.Mod(seconds, 3600) / 60))
	secs := int(math.Floor(math.Mod(math.Mod(seconds, 3600), 60)))
	frac := int(math.Floor(math.Mod(seconds, 1) * pow))

	var b strings.Builder
	switch {
	case hours > 0:
		fmt.Fprintf(&b, "%d:%02d:%02d", hours, minutes, secs)
	case minutes > 0:
		fmt.Fprintf(&b, "%d:%02d", minutes, secs)
	default:
		fmt.Fprintf(&b, "%d", secs)
	}
	if decimals > 0 {
		fmt.Fprintf(&b, ".%0*d", decimals, frac)
	}
	return b.String()
}
