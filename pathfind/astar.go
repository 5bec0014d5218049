package pathfind

import (
	"math"

	"github.com/milk9111/undercroft/common"
)

// maxSearchNodes bounds a single query so a degenerate map cannot stall
// a frame. Callers rate-limit on top of this.
const maxSearchNodes = 4096

type node struct {
	x int
	y int
}

// FindPath returns an ordered sequence of world-space waypoints from
// from to to, or an empty slice when no path exists or the grid is nil.
// Empty is not an error: callers fall back to direct movement.
func (g *Grid) FindPath(from, to common.Vec2) []common.Vec2 {
	if g == nil {
		return nil
	}
	sx, sy := g.cellAt(from)
	gx, gy := g.cellAt(to)
	cells := g.search(sx, sy, gx, gy)
	if len(cells) == 0 {
		return nil
	}
	out := make([]common.Vec2, 0, len(cells))
	for _, c := range cells {
		out = append(out, g.center(c.x, c.y))
	}
	return out
}

// search runs 4-way A* on grid coordinates.
func (g *Grid) search(startX, startY, goalX, goalY int) []node {
	if startX == goalX && startY == goalY {
		return []node{{x: startX, y: startY}}
	}
	if g.Blocked(goalX, goalY) {
		return nil
	}

	startIdx := startY*g.width + startX
	goalIdx := goalY*g.width + goalX

	open := make([]node, 0, 64)
	open = append(open, node{x: startX, y: startY})
	openSet := map[int]bool{startIdx: true}

	cameFrom := make(map[int]int, 128)
	gScore := map[int]float64{startIdx: 0}
	fScore := map[int]float64{startIdx: heuristic(startX, startY, goalX, goalY)}

	iterations := 0
	for len(open) > 0 && iterations < maxSearchNodes {
		iterations++

		bestIdx := 0
		bestScore := math.MaxFloat64
		for i, n := range open {
			idx := n.y*g.width + n.x
			if f, ok := fScore[idx]; ok && f < bestScore {
				bestScore = f
				bestIdx = i
			}
		}
		current := open[bestIdx]
		currentIdx := current.y*g.width + current.x
		open = append(open[:bestIdx], open[bestIdx+1:]...)
		delete(openSet, currentIdx)

		if currentIdx == goalIdx {
			return g.reconstruct(cameFrom, currentIdx, startIdx)
		}

		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx := current.x + d[0]
			ny := current.y + d[1]
			if g.Blocked(nx, ny) {
				continue
			}
			neighborIdx := ny*g.width + nx
			tentative := gScore[currentIdx] + 1
			prev, seen := gScore[neighborIdx]
			if !seen || tentative < prev {
				cameFrom[neighborIdx] = currentIdx
				gScore[neighborIdx] = tentative
				fScore[neighborIdx] = tentative + heuristic(nx, ny, goalX, goalY)
				if !openSet[neighborIdx] {
					open = append(open, node{x: nx, y: ny})
					openSet[neighborIdx] = true
				}
			}
		}
	}

	return nil
}

func (g *Grid) reconstruct(cameFrom map[int]int, currentIdx, startIdx int) []node {
	path := make([]node, 0, 32)
	for {
		path = append(path, node{x: currentIdx % g.width, y: currentIdx / g.width})
		if currentIdx == startIdx {
			break
		}
		prev, ok := cameFrom[currentIdx]
		if !ok {
			return nil
		}
		currentIdx = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func heuristic(x1, y1, x2, y2 int) float64 {
	return math.Abs(float64(x1-x2)) + math.Abs(float64(y1-y2))
}
