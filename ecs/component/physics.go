package component

import "github.com/milk9111/undercroft/common"

// Velocity is applied by the movement system each step.
type Velocity struct {
	V common.Vec2
}

var VelocityComponent = NewComponent[Velocity]()
