// Package levels decodes level templates and loads them by id.
package levels

import (
	"strconv"

	"github.com/milk9111/mitchbros/tiles"
)

// Template is the immutable description of a level as stored on disk.
type Template struct {
	Name       string   `json:"name"`
	Blocks     []string `json:"blocks"`
	Water      string   `json:"water,omitempty"`
	Lava       string   `json:"lava,omitempty"`
	Pizzas     []Pizza  `json:"pizzas,omitempty"`
	Enemies    []Enemy  `json:"enemies,omitempty"`
	SpawnX     float64  `json:"spawnX"`
	SpawnY     float64  `json:"spawnY"`
	EndX       float64  `json:"endX"`
	EndY       float64  `json:"endY"`
	Background string   `json:"background,omitempty"`
	Music      string   `json:"music,omitempty"`
	NextLevel  string   `json:"nextLevel,omitempty"`

	// ID is the id the template was loaded under.
	ID string `json:"-"`
	// Fallback marks the built-in game over template.
	Fallback bool `json:"-"`
}

type Pizza struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Enemy struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Grid builds the tile grid for the template's block rows.
func (t *Template) Grid() *tiles.Grid {
	if t == nil {
		return tiles.NewGrid(nil)
	}
	return tiles.NewGrid(t.Blocks)
}

// WaterColumns decodes the water overlay, one flag per tile column.
func (t *Template) WaterColumns() []bool {
	if t == nil {
		return nil
	}
	return overlay(t.Water)
}

// LavaColumns decodes the lava overlay, one flag per tile column.
func (t *Template) LavaColumns() []bool {
	if t == nil {
		return nil
	}
	return overlay(t.Lava)
}

func overlay(s string) []bool {
	if s == "" {
		return nil
	}
	out := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		v, err := strconv.ParseInt(s[i:i+1], 10, 8)
		out[i] = err == nil && v != 0
	}
	return out
}

// GameOver is the template shown when no further level can be loaded.
func GameOver() *Template {
	return &Template{
		Name:   "Game Over",
		SpawnX: 128,
		SpawnY: 224,
		Blocks: []string{
			"", "", "", "", "", "", "", "", "", "", "",
			"  v          v  ",
			"  w          w  ",
			"9aw        8aw 8",
			"1111111111111111",
			"2222222222222222",
		},
		Background: "night",
		EndX:       -1000,
		EndY:       -1000,
		ID:         "gameOver",
		Fallback:   true,
	}
}
