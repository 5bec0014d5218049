package component

// ColliderShape is the closed set of collision shapes.
type ColliderShape uint8

const (
	ShapeCircle ColliderShape = iota
	ShapeBox
)

// Collider declares an entity's collision shape centered on its
// transform. Trigger colliders detect overlap without blocking
// movement; non-trigger colliders participate in blocking resolution
// in the movement step.
type Collider struct {
	Shape   ColliderShape
	Radius  float64 // circle
	Width   float64 // box
	Height  float64 // box
	Trigger bool
}

// HalfExtents returns the half width/height of the collider's bounding
// box, for either shape.
func (c Collider) HalfExtents() (float64, float64) {
	if c.Shape == ShapeCircle {
		return c.Radius, c.Radius
	}
	return c.Width / 2, c.Height / 2
}

var ColliderComponent = NewComponent[Collider]()
