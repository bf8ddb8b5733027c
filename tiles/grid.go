package tiles

import "math"

// Grid is the immutable block layout of one level.
type Grid struct {
	rows  []string
	width int
}

// NewGrid copies rows. The widest row defines the level width.
func NewGrid(rows []string) *Grid {
	g := &Grid{rows: append([]string(nil), rows...)}
	for _, r := range g.rows {
		if len(r) > g.width {
			g.width = len(r)
		}
	}
	return g
}

// Rows is the number of tile rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// Columns is the length of the widest row.
func (g *Grid) Columns() int {
	if g == nil {
		return 0
	}
	return g.width
}

// Width is the level width in world units.
func (g *Grid) Width() float64 {
	return float64(g.Columns() * Size)
}

// Cell returns the block stored at a tile coordinate.
func (g *Grid) Cell(col, row int) Block {
	if g == nil || row < 0 || row >= len(g.rows) {
		return None
	}
	r := g.rows[row]
	if col < 0 || col >= len(r) {
		return None
	}
	return ParseCode(r[col])
}

// BlockAt maps a world position to its tile. Positions outside the grid
// are open space.
func (g *Grid) BlockAt(x, y float64) Block {
	col := int(math.Floor(x / Size))
	row := int(math.Floor(y / Size))
	return g.Cell(col, row)
}
