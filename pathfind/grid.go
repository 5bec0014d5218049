package pathfind

import (
	"math"

	"github.com/milk9111/undercroft/common"
)

// Grid is a room's static obstacle map. It is built once at room
// population and never mutated afterwards; FindPath is stateless per
// call against it.
type Grid struct {
	width    int
	height   int
	cellSize float64
	blocked  []bool
}

// NewGrid creates an open grid of width x height cells.
func NewGrid(width, height int, cellSize float64) *Grid {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil
	}
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		blocked:  make([]bool, width*height),
	}
}

// Block marks a cell impassable.
func (g *Grid) Block(x, y int) {
	if g == nil || !g.inBounds(x, y) {
		return
	}
	g.blocked[y*g.width+x] = true
}

// Blocked reports whether a cell is impassable. Out-of-bounds cells
// count as blocked.
func (g *Grid) Blocked(x, y int) bool {
	if g == nil || !g.inBounds(x, y) {
		return true
	}
	return g.blocked[y*g.width+x]
}

// CellSize returns the world size of one grid cell.
func (g *Grid) CellSize() float64 {
	if g == nil {
		return 0
	}
	return g.cellSize
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// cellAt clamps a world position into grid coordinates.
func (g *Grid) cellAt(p common.Vec2) (int, int) {
	x := int(math.Floor(p.X / g.cellSize))
	y := int(math.Floor(p.Y / g.cellSize))
	x = int(common.Clamp(float64(x), 0, float64(g.width-1)))
	y = int(common.Clamp(float64(y), 0, float64(g.height-1)))
	return x, y
}

// center returns the world-space center of a cell.
func (g *Grid) center(x, y int) common.Vec2 {
	return common.Vec2{
		X: (float64(x) + 0.5) * g.cellSize,
		Y: (float64(y) + 0.5) * g.cellSize,
	}
}
