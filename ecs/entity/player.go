package entity

import (
	"fmt"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/prefabs"
)

// NewPlayer spawns the player at pos with full stats from the spec.
// The transition orchestrator overwrites health/energy afterwards when
// carrying progress across a room swap.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, pos common.Vec2) (ecs.Entity, error) {
	e := w.CreateEntity()

	adds := []error{
		ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{}),
		ecs.Add(w, e, component.ArchetypeComponent, component.Archetype{ID: component.ArchetypePlayer}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: pos}),
		ecs.Add(w, e, component.VelocityComponent, component.Velocity{}),
		ecs.Add(w, e, component.ColliderComponent, component.Collider{
			Shape:  component.ShapeCircle,
			Radius: spec.Radius,
		}),
		ecs.Add(w, e, component.TagsComponent, component.Tags{Mask: component.TagPlayer}),
		ecs.Add(w, e, component.HealthComponent, component.NewHealth(spec.MaxHealth)),
		ecs.Add(w, e, component.EnergyComponent, component.NewEnergy(spec.MaxEnergy, spec.EnergyRegen)),
		ecs.Add(w, e, component.PlayerStatsComponent, component.PlayerStats{}),
		ecs.Add(w, e, component.CooldownsComponent, component.Cooldowns{}),
		ecs.Add(w, e, component.VisualComponent, component.NewVisual()),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("player: %w", err)
		}
	}
	return e, nil
}
