package component

import "github.com/milk9111/mitchbros/tiles"

// LevelGeometry is the read-only level layout shared by every system.
type LevelGeometry struct {
	Grid       *tiles.Grid
	Width      float64
	Water      []bool
	Lava       []bool
	EndX       float64
	EndY       float64
	Background string
}

var LevelGeometryComponent = NewComponent[LevelGeometry]()
