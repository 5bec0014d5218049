package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
	"github.com/milk9111/undercroft/prefabs"
)

// fixture bundles the minimal simulation loop used by the system
// tests: a world, a clock, and whatever systems the test registered.
type fixture struct {
	t     *testing.T
	world *ecs.World
	clock *ecs.Clock
	spec  *prefabs.GameSpec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	require.NoError(t, err)
	return &fixture{
		t:     t,
		world: ecs.NewWorld(),
		clock: ecs.NewClock(60),
		spec:  spec,
	}
}

// step runs n full frames: clock first so due callbacks fire, then the
// registered systems.
func (f *fixture) step(n int) {
	f.t.Helper()
	for i := 0; i < n; i++ {
		dt := f.clock.Step()
		f.world.Update(dt)
	}
}

// stepSeconds runs enough frames to advance the simulation by at least
// the given seconds at full speed.
func (f *fixture) stepSeconds(seconds float64) {
	f.step(int(seconds*60) + 1)
}

func (f *fixture) spawnPlayer(pos common.Vec2) ecs.Entity {
	f.t.Helper()
	e, err := entity.NewPlayer(f.world, &f.spec.Player, pos)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) spawnMelee(pos common.Vec2) ecs.Entity {
	f.t.Helper()
	e, err := entity.NewMeleeEnemy(f.world, &f.spec.Melee, pos)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) spawnRanged(pos common.Vec2) ecs.Entity {
	f.t.Helper()
	e, err := entity.NewRangedEnemy(f.world, &f.spec.Ranged, pos)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) spawnBoss(pos common.Vec2) ecs.Entity {
	f.t.Helper()
	e, err := entity.NewBoss(f.world, &f.spec.Boss, pos)
	require.NoError(f.t, err)
	return e
}

func (f *fixture) health(e ecs.Entity) *component.Health {
	f.t.Helper()
	hp, ok := ecs.Get(f.world, e, component.HealthComponent)
	require.True(f.t, ok)
	return hp
}

func (f *fixture) aiState(e ecs.Entity) *component.AIState {
	f.t.Helper()
	st, ok := ecs.Get(f.world, e, component.AIStateComponent)
	require.True(f.t, ok)
	return st
}
