package entity

import (
	"fmt"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

const bulletRadius = 4.0
const bulletLifetime = 3.0

// NewBullet spawns a projectile. tag decides which collision rules it
// participates in (TagPlayerBullet or TagEnemyBullet).
func NewBullet(w *ecs.World, pos, vel common.Vec2, damage float64, tag component.Tag) (ecs.Entity, error) {
	e := w.CreateEntity()

	adds := []error{
		ecs.Add(w, e, component.ArchetypeComponent, component.Archetype{ID: component.ArchetypeBullet}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: pos, Rotation: vel.Angle()}),
		ecs.Add(w, e, component.VelocityComponent, component.Velocity{V: vel}),
		ecs.Add(w, e, component.ColliderComponent, component.Collider{
			Shape:   component.ShapeCircle,
			Radius:  bulletRadius,
			Trigger: true,
		}),
		ecs.Add(w, e, component.TagsComponent, component.Tags{Mask: tag}),
		ecs.Add(w, e, component.BulletComponent, component.Bullet{Damage: damage}),
		ecs.Add(w, e, component.TTLComponent, component.TTL{Seconds: bulletLifetime}),
		ecs.Add(w, e, component.VisualComponent, component.NewVisual()),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("bullet: %w", err)
		}
	}
	return e, nil
}
