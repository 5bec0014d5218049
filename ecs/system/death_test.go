package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/prefabs"
)

func newDeathFixture(t *testing.T, loot []prefabs.LootEntry) (*fixture, *DeathSystem) {
	f := newFixture(t)
	ds := NewDeathSystem(f.clock, nil, loot, rand.New(rand.NewSource(1)))
	f.world.AddSystem(ds)
	return f, ds
}

func TestDeathStopsCollisionAndMovement(t *testing.T) {
	f, _ := newDeathFixture(t, nil)
	enemy := f.spawnMelee(common.Vec2{X: 200, Y: 200})

	if vel, ok := ecs.Get(f.world, enemy, component.VelocityComponent); ok {
		vel.V = common.Vec2{X: 50, Y: -30}
	}
	f.health(enemy).Current = 0
	f.health(enemy).Dead = true
	f.step(1)

	// the shape stays for the fade-out, but it no longer blocks or
	// pairs with anything
	col, ok := ecs.Get(f.world, enemy, component.ColliderComponent)
	require.True(t, ok, "corpse keeps its shape while fading")
	assert.True(t, col.Trigger)
	assert.False(t, ecs.Has(f.world, enemy, component.TagsComponent))

	vel, ok := ecs.Get(f.world, enemy, component.VelocityComponent)
	require.True(t, ok)
	assert.Zero(t, vel.V.X)
	assert.Zero(t, vel.V.Y)
	assert.True(t, ecs.Has(f.world, enemy, component.DyingComponent))
}

func TestCorpseIgnoredByCollisionRules(t *testing.T) {
	f, _ := newDeathFixture(t, nil)
	enemy := f.spawnMelee(common.Vec2{X: 200, Y: 200})

	cs := NewCollisionSystem()
	hits := 0
	cs.RegisterRule(component.TagPlayerBullet, component.TagEnemy, func(w *ecs.World, bullet, target ecs.Entity) {
		hits++
	})
	f.world.AddSystem(cs)

	f.health(enemy).Dead = true
	f.step(1)

	// a bullet flying through the corpse during the fade hits nothing
	spawnTagged(t, f.world, component.TagPlayerBullet, common.Vec2{X: 200, Y: 200}, 4)
	f.step(1)
	assert.Zero(t, hits)
}

func TestDeathDestroysAfterFade(t *testing.T) {
	f, _ := newDeathFixture(t, nil)
	enemy := f.spawnMelee(common.Vec2{X: 200, Y: 200})

	f.health(enemy).Dead = true
	f.step(1)
	require.True(t, f.world.IsAlive(enemy), "fade keeps the corpse around")

	f.stepSeconds(deathFadeDuration)
	assert.False(t, f.world.IsAlive(enemy))
}

func TestDeathFadesVisualAlpha(t *testing.T) {
	f, _ := newDeathFixture(t, nil)
	enemy := f.spawnMelee(common.Vec2{X: 200, Y: 200})

	f.health(enemy).Dead = true
	f.step(1)
	f.step(int(deathFadeDuration * 60 / 2))

	vis, ok := ecs.Get(f.world, enemy, component.VisualComponent)
	require.True(t, ok)
	assert.Less(t, vis.Alpha, 0.6)
	assert.Greater(t, vis.Alpha, 0.0)
}

func TestEnemyDeathCountsKill(t *testing.T) {
	f, _ := newDeathFixture(t, nil)
	player := f.spawnPlayer(common.Vec2{X: 100, Y: 100})
	enemy := f.spawnMelee(common.Vec2{X: 400, Y: 400})

	f.health(enemy).Dead = true
	f.step(1)

	stats, ok := ecs.Get(f.world, player, component.PlayerStatsComponent)
	require.True(t, ok)
	assert.Equal(t, 1, stats.KillCount)
}

func TestEnemyDeathRollsGuaranteedLoot(t *testing.T) {
	loot := []prefabs.LootEntry{{Kind: "health", Amount: 25, Weight: 1}}
	f, _ := newDeathFixture(t, loot)
	enemy := f.spawnMelee(common.Vec2{X: 400, Y: 400})

	f.health(enemy).Dead = true
	f.step(1)

	drops := 0
	ecs.ForEach(f.world, component.PickupComponent, func(e ecs.Entity, p *component.Pickup) {
		drops++
		assert.Equal(t, component.PickupHealth, p.Kind)
		assert.Equal(t, 25.0, p.Amount)
	})
	assert.Equal(t, 1, drops)
}

func TestLootNoneRowDropsNothing(t *testing.T) {
	loot := []prefabs.LootEntry{{Kind: "none", Weight: 1}}
	f, _ := newDeathFixture(t, loot)
	enemy := f.spawnMelee(common.Vec2{X: 400, Y: 400})

	f.health(enemy).Dead = true
	f.step(1)

	drops := 0
	ecs.ForEach(f.world, component.PickupComponent, func(e ecs.Entity, p *component.Pickup) { drops++ })
	assert.Zero(t, drops)
}

func TestPlayerDeathCountsNoKill(t *testing.T) {
	f, _ := newDeathFixture(t, nil)
	player := f.spawnPlayer(common.Vec2{X: 100, Y: 100})

	f.health(player).Dead = true
	f.step(1)

	stats, ok := ecs.Get(f.world, player, component.PlayerStatsComponent)
	require.True(t, ok)
	assert.Zero(t, stats.KillCount)
}

func TestDeathRoutineRunsOnce(t *testing.T) {
	f, _ := newDeathFixture(t, []prefabs.LootEntry{{Kind: "health", Amount: 10, Weight: 1}})
	player := f.spawnPlayer(common.Vec2{X: 100, Y: 100})
	enemy := f.spawnMelee(common.Vec2{X: 400, Y: 400})

	f.health(enemy).Dead = true
	f.step(5)

	stats, ok := ecs.Get(f.world, player, component.PlayerStatsComponent)
	require.True(t, ok)
	assert.Equal(t, 1, stats.KillCount, "kill is tallied once, not per frame")

	drops := 0
	ecs.ForEach(f.world, component.PickupComponent, func(e ecs.Entity, p *component.Pickup) { drops++ })
	assert.Equal(t, 1, drops)
}
