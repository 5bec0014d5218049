package component

import "github.com/milk9111/undercroft/common"

// Transform is an entity's position and facing in world space.
type Transform struct {
	Pos      common.Vec2
	Rotation float64 // radians
}

var TransformComponent = NewComponent[Transform]()
