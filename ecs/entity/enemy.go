package entity

import (
	"fmt"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/prefabs"
)

func aiFromSpec(spec *prefabs.EnemySpec) component.AI {
	return component.AI{
		MoveSpeed:     spec.MoveSpeed,
		MeleeRange:    spec.MeleeRange,
		StrikeRange:   spec.StrikeRange,
		Damage:        spec.Damage,
		WindUp:        spec.WindUp,
		LungeSpeed:    spec.LungeSpeed,
		RecoverDelay:  spec.RecoverDelay,
		PathInterval:  spec.PathInterval,
		RetreatRange:  spec.RetreatRange,
		ApproachRange: spec.ApproachRange,
		ShootCooldown: spec.ShootCooldown,
		BulletSpeed:   spec.BulletSpeed,
		BulletDamage:  spec.BulletDamage,
	}
}

func newEnemyBase(w *ecs.World, archetype component.ArchetypeID, spec *prefabs.EnemySpec, pos common.Vec2) (ecs.Entity, error) {
	e := w.CreateEntity()

	adds := []error{
		ecs.Add(w, e, component.ArchetypeComponent, component.Archetype{ID: archetype}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: pos}),
		ecs.Add(w, e, component.VelocityComponent, component.Velocity{}),
		ecs.Add(w, e, component.ColliderComponent, component.Collider{
			Shape:  component.ShapeCircle,
			Radius: spec.Radius,
		}),
		ecs.Add(w, e, component.TagsComponent, component.Tags{Mask: component.TagEnemy}),
		ecs.Add(w, e, component.HealthComponent, component.NewHealth(spec.MaxHealth)),
		ecs.Add(w, e, component.AIComponent, aiFromSpec(spec)),
		ecs.Add(w, e, component.CooldownsComponent, component.Cooldowns{}),
		ecs.Add(w, e, component.VisualComponent, component.NewVisual()),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("enemy: %w", err)
		}
	}
	return e, nil
}

// NewMeleeEnemy spawns a chase/telegraph/attack melee enemy.
func NewMeleeEnemy(w *ecs.World, spec *prefabs.EnemySpec, pos common.Vec2) (ecs.Entity, error) {
	e, err := newEnemyBase(w, component.ArchetypeMeleeEnemy, spec, pos)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AIStateComponent, component.AIState{Current: component.StateChase}); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	return e, nil
}

// NewRangedEnemy spawns a distance-banded shooter.
func NewRangedEnemy(w *ecs.World, spec *prefabs.EnemySpec, pos common.Vec2) (ecs.Entity, error) {
	e, err := newEnemyBase(w, component.ArchetypeRangedEnemy, spec, pos)
	if err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AIStateComponent, component.AIState{}); err != nil {
		return 0, fmt.Errorf("enemy: %w", err)
	}
	return e, nil
}

// NewSentinel spawns a stationary turret driven by the sentinel script.
func NewSentinel(w *ecs.World, spec *prefabs.EnemySpec, pos common.Vec2) (ecs.Entity, error) {
	e, err := newEnemyBase(w, component.ArchetypeSentinel, spec, pos)
	if err != nil {
		return 0, err
	}
	adds := []error{
		ecs.Add(w, e, component.AIStateComponent, component.AIState{}),
		ecs.Add(w, e, component.AIScriptComponent, component.AIScript{Name: "sentinel.tengo"}),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("enemy: %w", err)
		}
	}
	return e, nil
}

// NewBoss spawns the two-phase boss.
func NewBoss(w *ecs.World, spec *prefabs.BossSpec, pos common.Vec2) (ecs.Entity, error) {
	e, err := newEnemyBase(w, component.ArchetypeBoss, &spec.EnemySpec, pos)
	if err != nil {
		return 0, err
	}
	adds := []error{
		ecs.Add(w, e, component.AIStateComponent, component.AIState{Current: component.StateChase}),
		ecs.Add(w, e, component.BossPhaseComponent, component.BossPhase{
			Phase:        1,
			TriggerFrac:  spec.Phase2.TriggerFrac,
			SpeedScale:   spec.Phase2.SpeedScale,
			CadenceScale: spec.Phase2.CadenceScale,
			BurstCount:   spec.Phase2.BurstCount,
			BurstEvery:   spec.Phase2.BurstEvery,
		}),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("boss: %w", err)
		}
	}
	return e, nil
}
