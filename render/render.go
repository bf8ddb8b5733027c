// Package render turns a level run into an ordered list of sprite and text
// draw requests. It never draws anything itself.
package render

import (
	"math"
	"sort"

	"github.com/milk9111/mitchbros/ecs"
	"github.com/milk9111/mitchbros/ecs/component"
	"github.com/milk9111/mitchbros/ecs/entity"
	"github.com/milk9111/mitchbros/tiles"
)

const (
	ScreenWidth  = 256
	ScreenHeight = 256

	backgroundWidth    = 256
	backgroundStride   = 2560
	backgroundParallax = 0.1
	overlayY           = 240
)

type Layer int

const (
	LayerBackground Layer = iota
	LayerTiles
	LayerPickups
	LayerFlag
	LayerEntities
	LayerOverlay
	LayerHUD
)

// DrawRequest is one sprite or one line of text in screen coordinates.
// Exactly one of Sprite and Text is set.
type DrawRequest struct {
	Sprite string
	Text   string
	X      float64
	Y      float64
	Scale  float64
	Layer  Layer
	// Centered text is anchored on X instead of starting at it.
	Centered bool
}

func sprite(name string, x, y float64, layer Layer) DrawRequest {
	return DrawRequest{Sprite: name, X: math.Round(x), Y: math.Round(y), Scale: 1, Layer: layer}
}

func text(s string, x, y float64, centered bool) DrawRequest {
	return DrawRequest{Text: s, X: x, Y: y, Scale: 1, Layer: LayerHUD, Centered: centered}
}

func visible(x float64, width float64) bool {
	return x < ScreenWidth && x+width > 0
}

// BackgroundRepeat is how many copies of the parallax background cover a
// level of the given width.
func BackgroundRepeat(levelWidth float64) int {
	return int(math.Ceil((levelWidth-ScreenWidth)/backgroundStride)) + 1
}

// World draws the level: background, tiles, pickups, flag, actors, then the
// water and lava overlays.
func World(w *ecs.World) []DrawRequest {
	geo, ok := ecs.Singleton(w, component.LevelGeometryComponent.Kind())
	if !ok || geo.Grid == nil {
		return nil
	}
	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok {
		cam = &component.Camera{}
	}
	left := cam.Left

	var out []DrawRequest

	if geo.Background != "" {
		for i := 0; i < BackgroundRepeat(geo.Width); i++ {
			r := sprite(geo.Background, -backgroundParallax*left+float64(i*backgroundWidth), 0, LayerBackground)
			r.Scale = 2
			out = append(out, r)
		}
	}

	first := int(math.Floor(cam.Left / tiles.Size))
	last := int(math.Floor(cam.Right / tiles.Size))
	for row := 0; row < geo.Grid.Rows(); row++ {
		for col := first; col <= last; col++ {
			b := geo.Grid.Cell(col, row)
			if b == tiles.None {
				continue
			}
			out = append(out, sprite(b.Name(), float64(col*tiles.Size)-left, float64(row*tiles.Size), LayerTiles))
		}
	}

	if pizza, ok := entity.Ambient(w, "pizza"); ok {
		type placed struct {
			index int
			t     *component.Transform
		}
		var pickups []placed
		ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, t *component.Transform) {
			pickups = append(pickups, placed{index: p.Index, t: t})
		})
		sort.Slice(pickups, func(i, j int) bool { return pickups[i].index < pickups[j].index })
		for _, p := range pickups {
			if x := p.t.X - 8 - left; visible(x, tiles.Size) {
				out = append(out, sprite(pizza.Sprite(1), x, p.t.Y-16, LayerPickups))
			}
		}
	}

	if flag, ok := entity.Ambient(w, "flag"); ok {
		if x := geo.EndX - 8 - left; visible(x, tiles.Size) {
			out = append(out, sprite(flag.Sprite(1), x, geo.EndY-16, LayerFlag))
		}
	}

	out = append(out, actors(w, left)...)

	out = append(out, overlay(w, "water", geo.Water, left)...)
	out = append(out, overlay(w, "lava", geo.Lava, left)...)
	return out
}

func actors(w *ecs.World, left float64) []DrawRequest {
	type drawn struct {
		order int
		req   DrawRequest
	}
	var list []drawn
	ecs.ForEach4(w, component.ActorComponent.Kind(), component.TransformComponent.Kind(), component.BodyComponent.Kind(), component.AnimationComponent.Kind(),
		func(_ ecs.Entity, a *component.Actor, t *component.Transform, b *component.Body, anim *component.Animation) {
			name := anim.Sprite(b.Direction)
			x := t.X - 8 - left
			if name == "" || !visible(x, tiles.Size) {
				return
			}
			list = append(list, drawn{order: a.Order, req: sprite(name, x, t.Y-16, LayerEntities)})
		})
	sort.SliceStable(list, func(i, j int) bool { return list[i].order < list[j].order })

	out := make([]DrawRequest, 0, len(list))
	for _, d := range list {
		out = append(out, d.req)
	}
	return out
}

func overlay(w *ecs.World, name string, columns []bool, left float64) []DrawRequest {
	if len(columns) == 0 {
		return nil
	}
	anim, ok := entity.Ambient(w, name)
	if !ok {
		return nil
	}
	var out []DrawRequest
	for col, on := range columns {
		if !on {
			continue
		}
		if x := float64(col*tiles.Size) - left; visible(x, tiles.Size) {
			out = append(out, sprite(anim.Sprite(1), x, overlayY, LayerOverlay))
		}
	}
	return out
}
