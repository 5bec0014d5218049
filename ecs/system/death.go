package system

import (
	"math/rand"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
	"github.com/milk9111/undercroft/prefabs"
)

const (
	deathFadeDuration  = 0.6
	playerRespawnDelay = 1.5
)

// DeathSystem runs the terminal death routine: when health hits zero
// the entity stops colliding, fades out, rolls its single loot drop,
// and is destroyed after the death-animation delay rather than
// immediately.
type DeathSystem struct {
	clock *ecs.Clock
	trans *TransitionSystem
	loot  []prefabs.LootEntry
	rng   *rand.Rand
}

func NewDeathSystem(clock *ecs.Clock, trans *TransitionSystem, loot []prefabs.LootEntry, rng *rand.Rand) *DeathSystem {
	return &DeathSystem{clock: clock, trans: trans, loot: loot, rng: rng}
}

// SetLoot swaps the drop table (prefab hot reload).
func (s *DeathSystem) SetLoot(loot []prefabs.LootEntry) {
	s.loot = loot
}

func (s *DeathSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}

	ecs.ForEach(w, component.HealthComponent, func(e ecs.Entity, hp *component.Health) {
		if !hp.Dead {
			return
		}
		if dying, ok := ecs.Get(w, e, component.DyingComponent); ok {
			dying.Remaining -= dt
			if vis, ok := ecs.Get(w, e, component.VisualComponent); ok && dying.Duration > 0 {
				vis.Alpha = dying.Remaining / dying.Duration
				if vis.Alpha < 0 {
					vis.Alpha = 0
				}
			}
			return
		}
		s.beginDeath(w, e)
	})
}

func (s *DeathSystem) beginDeath(w *ecs.World, e ecs.Entity) {
	_ = ecs.Add(w, e, component.DyingComponent, component.Dying{
		Remaining: deathFadeDuration,
		Duration:  deathFadeDuration,
	})
	if vel, ok := ecs.Get(w, e, component.VelocityComponent); ok {
		vel.V.X, vel.V.Y = 0, 0
	}

	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		w.Events().PushParticles(t.Pos, "death")
	}
	w.Events().PushSound("death")

	if tags, ok := ecs.Get(w, e, component.TagsComponent); ok && tags.Has(component.TagEnemy) {
		if player, ok := ecs.First(w, component.PlayerTagComponent); ok {
			if stats, ok := ecs.Get(w, player, component.PlayerStatsComponent); ok {
				stats.KillCount++
			}
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			s.rollLoot(w, t.Pos)
		}
	}

	// corpses don't collide, but they keep their shape so the fade-out
	// stays on screen: the collider turns overlap-only and the rule
	// tags go away, which drops the entity from collision pairing and
	// solid separation both
	if col, ok := ecs.Get(w, e, component.ColliderComponent); ok {
		col.Trigger = true
	}
	ecs.Remove(w, e, component.TagsComponent)

	if _, isPlayer := ecs.Get(w, e, component.PlayerTagComponent); isPlayer && s.trans != nil {
		// the player entity is gone before the respawn fires, so the
		// run stats have to be snapshotted now
		s.trans.captureProgress(w)
		s.clock.After(playerRespawnDelay, func() {
			s.trans.Respawn(w)
		})
	}

	// the handle may already be dead by then (room swap); that's fine
	s.clock.After(deathFadeDuration, func() {
		w.DestroyEntity(e)
	})
}

// rollLoot grants at most one drop from the weighted table. A "none"
// row keeps the roll honest without spawning anything.
func (s *DeathSystem) rollLoot(w *ecs.World, pos common.Vec2) {
	if len(s.loot) == 0 || s.rng == nil {
		return
	}
	total := 0
	for _, l := range s.loot {
		if l.Weight > 0 {
			total += l.Weight
		}
	}
	if total <= 0 {
		return
	}
	roll := s.rng.Intn(total)
	for _, l := range s.loot {
		if l.Weight <= 0 {
			continue
		}
		roll -= l.Weight
		if roll >= 0 {
			continue
		}
		switch l.Kind {
		case "health":
			_, _ = entity.NewPickup(w, component.PickupHealth, l.Amount, pos)
		case "energy":
			_, _ = entity.NewPickup(w, component.PickupEnergy, l.Amount, pos)
		case "upgrade":
			_, _ = entity.NewPickup(w, component.PickupUpgrade, l.Amount, pos)
		}
		return
	}
}
