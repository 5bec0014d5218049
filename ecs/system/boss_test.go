package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

func bossPhase(t *testing.T, w *ecs.World, e ecs.Entity) *component.BossPhase {
	t.Helper()
	phase, ok := ecs.Get(w, e, component.BossPhaseComponent)
	require.True(t, ok)
	return phase
}

func countBullets(w *ecs.World) int {
	n := 0
	ecs.ForEach(w, component.BulletComponent, func(e ecs.Entity, b *component.Bullet) {
		n++
	})
	return n
}

func TestBossEntersPhaseTwoAtThreshold(t *testing.T) {
	f := newFixture(t)
	f.world.AddSystem(NewBossSystem())
	boss := f.spawnBoss(common.Vec2{X: 640, Y: 200})
	phase := bossPhase(t, f.world, boss)
	hp := f.health(boss)

	require.Equal(t, 1, phase.Phase)

	// just above the threshold: still phase 1
	hp.Current = phase.TriggerFrac*hp.Max + 1
	f.step(1)
	assert.Equal(t, 1, bossPhase(t, f.world, boss).Phase)

	// a large hit that skips over the exact threshold still triggers
	f.health(boss).Current = phase.TriggerFrac*hp.Max - 37
	f.step(1)
	assert.Equal(t, 2, bossPhase(t, f.world, boss).Phase)
}

func TestBossPhaseTransitionIsOneWay(t *testing.T) {
	f := newFixture(t)
	f.world.AddSystem(NewBossSystem())
	boss := f.spawnBoss(common.Vec2{X: 640, Y: 200})
	phase := bossPhase(t, f.world, boss)

	f.health(boss).Current = phase.TriggerFrac * f.health(boss).Max
	f.step(1)
	require.Equal(t, 2, bossPhase(t, f.world, boss).Phase)

	// healing back above the threshold does not revert the phase
	f.health(boss).Current = f.health(boss).Max
	f.step(1)
	assert.Equal(t, 2, bossPhase(t, f.world, boss).Phase)
}

func TestBossBurstFiresOnCadence(t *testing.T) {
	f := newFixture(t)
	f.world.AddSystem(NewBossSystem())
	boss := f.spawnBoss(common.Vec2{X: 640, Y: 384})
	phase := bossPhase(t, f.world, boss)

	f.health(boss).Current = 1
	f.step(1)
	require.Equal(t, 2, bossPhase(t, f.world, boss).Phase)

	// no burst until the first cadence interval elapses
	assert.Zero(t, countBullets(f.world))

	f.stepSeconds(phase.BurstEvery)
	assert.Equal(t, phase.BurstCount, countBullets(f.world), "one full radial ring")

	f.stepSeconds(phase.BurstEvery)
	assert.Equal(t, 2*phase.BurstCount, countBullets(f.world))
}

func TestBossBurstStopsWhenDead(t *testing.T) {
	f := newFixture(t)
	f.world.AddSystem(NewBossSystem())
	boss := f.spawnBoss(common.Vec2{X: 640, Y: 384})
	phase := bossPhase(t, f.world, boss)

	f.health(boss).Current = 1
	f.step(1)
	f.stepSeconds(phase.BurstEvery)
	fired := countBullets(f.world)
	require.Positive(t, fired)

	f.health(boss).Current = 0
	f.health(boss).Dead = true
	f.stepSeconds(phase.BurstEvery)
	assert.Equal(t, fired, countBullets(f.world))
}

func TestBossBurstBulletsCarryEnemyTag(t *testing.T) {
	f := newFixture(t)
	f.world.AddSystem(NewBossSystem())
	boss := f.spawnBoss(common.Vec2{X: 640, Y: 384})
	phase := bossPhase(t, f.world, boss)

	f.health(boss).Current = 1
	f.step(1)
	f.stepSeconds(phase.BurstEvery)

	ecs.ForEach2(f.world, component.BulletComponent, component.TagsComponent, func(e ecs.Entity, b *component.Bullet, tags *component.Tags) {
		assert.True(t, tags.Has(component.TagEnemyBullet))
	})
	assert.Positive(t, countBullets(f.world))
}
