package system

import (
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/room"
)

// MovementSystem integrates velocity and resolves blocking: solid
// room tiles stop movement per axis, and non-trigger colliders push
// each other apart. Trigger colliders never block.
type MovementSystem struct {
	room func() *room.Spec
}

func NewMovementSystem(roomProvider func() *room.Spec) *MovementSystem {
	return &MovementSystem{room: roomProvider}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}

	var r *room.Spec
	if s.room != nil {
		r = s.room()
	}

	ecs.ForEach2(w, component.TransformComponent, component.VelocityComponent, func(e ecs.Entity, t *component.Transform, vel *component.Velocity) {
		col, hasCol := ecs.Get(w, e, component.ColliderComponent)
		if !hasCol || col.Trigger || r == nil {
			t.Pos = t.Pos.Add(vel.V.Scale(dt))
			return
		}

		hw, hh := col.HalfExtents()

		// axis-separated so sliding along a wall keeps the free axis
		nx := t.Pos.X + vel.V.X*dt
		if wallOverlap(r, common.Vec2{X: nx, Y: t.Pos.Y}, hw, hh) {
			vel.V.X = 0
		} else {
			t.Pos.X = nx
		}

		ny := t.Pos.Y + vel.V.Y*dt
		if wallOverlap(r, common.Vec2{X: t.Pos.X, Y: ny}, hw, hh) {
			vel.V.Y = 0
		} else {
			t.Pos.Y = ny
		}
	})

	s.separateSolids(w)
}

// separateSolids pushes overlapping non-trigger circle colliders apart
// by half the overlap each, so bodies cannot stack.
func (s *MovementSystem) separateSolids(w *ecs.World) {
	type solid struct {
		e ecs.Entity
		t *component.Transform
		r float64
	}
	solids := make([]solid, 0, 32)
	ecs.ForEach2(w, component.ColliderComponent, component.TransformComponent, func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		if col.Trigger || col.Shape != component.ShapeCircle {
			return
		}
		solids = append(solids, solid{e: e, t: t, r: col.Radius})
	})

	for i := 0; i < len(solids); i++ {
		for j := i + 1; j < len(solids); j++ {
			a, b := solids[i], solids[j]
			delta := b.t.Pos.Sub(a.t.Pos)
			dist := delta.Length()
			overlap := a.r + b.r - dist
			if overlap <= 0 {
				continue
			}
			var dir common.Vec2
			if dist > 0 {
				dir = delta.Scale(1 / dist)
			} else {
				dir = common.Vec2{X: 1}
			}
			push := dir.Scale(overlap / 2)
			a.t.Pos = a.t.Pos.Sub(push)
			b.t.Pos = b.t.Pos.Add(push)
		}
	}
}

func wallOverlap(r *room.Spec, center common.Vec2, hw, hh float64) bool {
	corners := []common.Vec2{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X - hw, Y: center.Y + hh},
		{X: center.X + hw, Y: center.Y + hh},
	}
	for _, c := range corners {
		if r.WallAt(c) {
			return true
		}
	}
	return false
}
