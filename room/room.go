// Package room holds the static room definitions: dimensions, obstacle
// layout, doors, and the population list. Rooms are data; the
// transition system and the entity builders interpret them.
package room

import (
	"fmt"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/pathfind"
)

// DoorSpec is a trigger region leading to another room.
type DoorSpec struct {
	X      float64 `yaml:"x"` // tile coordinates
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Target string  `yaml:"target"`
	Side   string  `yaml:"side"` // spawn side in the target room
}

// SpawnSpec is one entry in a room's population list.
type SpawnSpec struct {
	Archetype string  `yaml:"archetype"`
	X         float64 `yaml:"x"` // tile coordinates
	Y         float64 `yaml:"y"`
}

// Spec is one room definition.
type Spec struct {
	ID       string      `yaml:"id"`
	Width    int         `yaml:"width"` // tiles
	Height   int         `yaml:"height"`
	TileSize float64     `yaml:"tile"`
	Layout   []string    `yaml:"layout"` // '#' = wall; optional
	Doors    []DoorSpec  `yaml:"doors"`
	Spawns   []SpawnSpec `yaml:"spawns"`
}

// PixelWidth returns the room width in world units.
func (s *Spec) PixelWidth() float64 {
	return float64(s.Width) * s.TileSize
}

// PixelHeight returns the room height in world units.
func (s *Spec) PixelHeight() float64 {
	return float64(s.Height) * s.TileSize
}

// SpawnPosition computes where the player appears when entering from
// the given side.
func (s *Spec) SpawnPosition(side component.SpawnSide) common.Vec2 {
	y := s.PixelHeight() / 2
	switch side {
	case component.SpawnLeft:
		return common.Vec2{X: s.TileSize * 2, Y: y}
	case component.SpawnRight:
		return common.Vec2{X: s.PixelWidth() - s.TileSize*2, Y: y}
	default:
		return common.Vec2{X: s.PixelWidth() / 2, Y: y}
	}
}

// BuildGrid derives the static obstacle grid for pathfinding from the
// layout rows. Rooms without a layout get an open grid.
func (s *Spec) BuildGrid() *pathfind.Grid {
	g := pathfind.NewGrid(s.Width, s.Height, s.TileSize)
	for y, row := range s.Layout {
		if y >= s.Height {
			break
		}
		for x, ch := range row {
			if x >= s.Width {
				break
			}
			if ch == '#' {
				g.Block(x, y)
			}
		}
	}
	return g
}

// WallAt reports whether the tile at a world position is solid.
func (s *Spec) WallAt(p common.Vec2) bool {
	if len(s.Layout) == 0 {
		return false
	}
	tx := int(p.X / s.TileSize)
	ty := int(p.Y / s.TileSize)
	if tx < 0 || ty < 0 || tx >= s.Width || ty >= s.Height {
		return true
	}
	if ty >= len(s.Layout) {
		return false
	}
	row := s.Layout[ty]
	if tx >= len(row) {
		return false
	}
	return row[tx] == '#'
}

// ParseSide maps a yaml side name to a SpawnSide.
func ParseSide(name string) (component.SpawnSide, error) {
	switch name {
	case "left":
		return component.SpawnLeft, nil
	case "right":
		return component.SpawnRight, nil
	case "center", "":
		return component.SpawnCenter, nil
	}
	return component.SpawnCenter, fmt.Errorf("room: unknown spawn side %q", name)
}
