package system

import (
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

const hitFreezeFrames = 4

// Combat centralizes damage application so every source (melee strike,
// bullet, burst) goes through the same invulnerability-window rules and
// feedback cues.
type Combat struct {
	clock              *ecs.Clock
	playerInvulnFrames int
}

func NewCombat(clock *ecs.Clock, playerInvulnFrames int) *Combat {
	return &Combat{clock: clock, playerInvulnFrames: playerInvulnFrames}
}

// DamagePlayer applies damage to the player if one exists. The player's
// invulnerability window is the only debounce: while it's positive the
// call is a no-op, and a fresh window opens on every applied hit.
func (c *Combat) DamagePlayer(w *ecs.World, amount float64, from common.Vec2) bool {
	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return false
	}
	hp, ok := ecs.Get(w, player, component.HealthComponent)
	if !ok {
		return false
	}
	if !hp.ApplyDamage(amount) {
		return false
	}
	hp.InvulnFrames = c.playerInvulnFrames

	if vis, ok := ecs.Get(w, player, component.VisualComponent); ok {
		vis.Flash = 1
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent); ok {
		w.Events().PushParticles(t.Pos, "player_hit")
	}
	w.Events().PushSound("player_hurt")
	if c.clock != nil {
		c.clock.Freeze(hitFreezeFrames)
	}
	return true
}

// DamageEnemy applies damage to an enemy-tagged entity. Enemies carry
// no invulnerability window unless their archetype set one, so
// sustained sources reapply every frame; that is the observed behavior
// and stays.
func (c *Combat) DamageEnemy(w *ecs.World, e ecs.Entity, amount float64) bool {
	hp, ok := ecs.Get(w, e, component.HealthComponent)
	if !ok {
		return false
	}
	if !hp.ApplyDamage(amount) {
		return false
	}
	if vis, ok := ecs.Get(w, e, component.VisualComponent); ok {
		vis.Flash = 1
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		w.Events().PushParticles(t.Pos, "enemy_hit")
	}
	w.Events().PushSound("enemy_hurt")
	return true
}

// RegisterCombatRules wires the canonical tag-pair rules into the
// collision system. Called once at startup; the rule set is static
// across room swaps.
func RegisterCombatRules(cs *CollisionSystem, combat *Combat, trans *TransitionSystem) {
	cs.RegisterRule(component.TagPlayerBullet, component.TagEnemy, func(w *ecs.World, bullet, enemy ecs.Entity) {
		if b, ok := ecs.Get(w, bullet, component.BulletComponent); ok {
			combat.DamageEnemy(w, enemy, b.Damage)
		}
		w.DestroyEntity(bullet)
	})

	cs.RegisterRule(component.TagEnemyBullet, component.TagPlayer, func(w *ecs.World, bullet, player ecs.Entity) {
		if b, ok := ecs.Get(w, bullet, component.BulletComponent); ok {
			var from common.Vec2
			if t, ok := ecs.Get(w, bullet, component.TransformComponent); ok {
				from = t.Pos
			}
			combat.DamagePlayer(w, b.Damage, from)
		}
		w.DestroyEntity(bullet)
	})

	cs.RegisterRule(component.TagPlayer, component.TagPickupHealth, collectPickup)
	cs.RegisterRule(component.TagPlayer, component.TagPickupEnergy, collectPickup)
	cs.RegisterRule(component.TagPlayer, component.TagPickupUpgrade, collectPickup)

	cs.RegisterRule(component.TagPlayer, component.TagDoor, func(w *ecs.World, player, door ecs.Entity) {
		d, ok := ecs.Get(w, door, component.DoorComponent)
		if !ok {
			return
		}
		trans.Begin(w, d.TargetRoom, d.Side)
	})
}

// collectPickup applies a pickup's typed effect to the player, then
// destroys the pickup.
func collectPickup(w *ecs.World, player, pickup ecs.Entity) {
	p, ok := ecs.Get(w, pickup, component.PickupComponent)
	if !ok {
		return
	}
	switch p.Kind {
	case component.PickupHealth:
		if hp, ok := ecs.Get(w, player, component.HealthComponent); ok {
			hp.Heal(p.Amount)
		}
		w.Events().PushSound("pickup_health")
	case component.PickupEnergy:
		if en, ok := ecs.Get(w, player, component.EnergyComponent); ok {
			en.Restore(p.Amount)
		}
		w.Events().PushSound("pickup_energy")
	case component.PickupUpgrade:
		if stats, ok := ecs.Get(w, player, component.PlayerStatsComponent); ok {
			stats.Upgrades++
		}
		w.Events().PushSound("pickup_upgrade")
	}
	if t, ok := ecs.Get(w, pickup, component.TransformComponent); ok {
		w.Events().PushParticles(t.Pos, "sparkle")
	}
	w.DestroyEntity(pickup)
}
