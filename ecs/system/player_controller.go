package system

import (
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
	"github.com/milk9111/undercroft/prefabs"
)

// Input is the polled input boundary. The real implementation wraps
// ebiten; tests substitute a scripted fake.
type Input interface {
	KeyHeld(id string) bool
	KeyPressedThisFrame(id string) bool
	PointerPressedThisFrame() bool
	PointerHeld() bool
	PointerWorldPosition() common.Vec2
}

// PlayerControllerSystem turns polled input into player velocity,
// facing, and ranged attacks.
type PlayerControllerSystem struct {
	input Input
	spec  *prefabs.PlayerSpec
}

func NewPlayerControllerSystem(input Input, spec *prefabs.PlayerSpec) *PlayerControllerSystem {
	return &PlayerControllerSystem{input: input, spec: spec}
}

// SetSpec swaps the tuning spec (prefab hot reload).
func (s *PlayerControllerSystem) SetSpec(spec *prefabs.PlayerSpec) {
	if spec != nil {
		s.spec = spec
	}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.input == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return
	}
	vel, ok := ecs.Get(w, player, component.VelocityComponent)
	if !ok {
		return
	}
	if hp, ok := ecs.Get(w, player, component.HealthComponent); ok && !hp.Alive() {
		vel.V = common.Vec2{}
		return
	}

	var dir common.Vec2
	if s.input.KeyHeld("left") {
		dir.X -= 1
	}
	if s.input.KeyHeld("right") {
		dir.X += 1
	}
	if s.input.KeyHeld("up") {
		dir.Y -= 1
	}
	if s.input.KeyHeld("down") {
		dir.Y += 1
	}
	vel.V = dir.Normalized().Scale(s.spec.MoveSpeed)

	pointer := s.input.PointerWorldPosition()
	t.Rotation = pointer.Sub(t.Pos).Angle()

	if energy, ok := ecs.Get(w, player, component.EnergyComponent); ok {
		energy.Restore(energy.Regen * dt)

		cds, _ := ecs.Get(w, player, component.CooldownsComponent)
		if s.input.PointerHeld() && cds != nil && cds.Ready("shoot") {
			if energy.Spend(s.spec.BulletCost) {
				aim := common.FromAngle(t.Rotation)
				muzzle := t.Pos.Add(aim.Scale(s.spec.Radius + 6))
				if _, err := entity.NewBullet(w, muzzle, aim.Scale(s.spec.BulletSpeed), s.spec.BulletDamage, component.TagPlayerBullet); err == nil {
					cds.Start("shoot", 0.18)
					w.Events().PushSound("player_shot")
				}
			}
		}
	}
}
