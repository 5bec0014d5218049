package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/pathfind"
	"github.com/milk9111/undercroft/room"
)

func nilGrid() *pathfind.Grid { return nil }

func TestMeleeChaseTelegraphAttackCycle(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	player := f.spawnPlayer(common.Vec2{X: 400, Y: 300})
	// inside MeleeRange so chase flips immediately
	enemy := f.spawnMelee(common.Vec2{X: 400 + f.spec.Melee.MeleeRange - 4, Y: 300})

	f.step(1)
	st := f.aiState(enemy)
	require.Equal(t, component.StateTelegraph, st.Current)

	// healthy for the full wind-up: no damage lands early
	f.stepSeconds(f.spec.Melee.WindUp / 2)
	assert.Equal(t, f.spec.Player.MaxHealth, f.health(player).Current)
	assert.Positive(t, st.WarnIntensity, "telegraph should pulse the warning")

	f.stepSeconds(f.spec.Melee.WindUp / 2)
	st = f.aiState(enemy)
	assert.Equal(t, component.StateAttack, st.Current)
	assert.Equal(t, f.spec.Player.MaxHealth-f.spec.Melee.Damage, f.health(player).Current,
		"attack within strike range lands once")

	// recovery returns the machine to chase
	f.stepSeconds(f.spec.Melee.RecoverDelay + 0.1)
	assert.Equal(t, component.StateChase, f.aiState(enemy).Current)
}

func TestMeleeAttackMissesOutsideStrikeRange(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	player := f.spawnPlayer(common.Vec2{X: 400, Y: 300})
	enemy := f.spawnMelee(common.Vec2{X: 400 + f.spec.Melee.MeleeRange - 4, Y: 300})

	f.step(1)
	require.Equal(t, component.StateTelegraph, f.aiState(enemy).Current)

	// player repositions out of strike range during the wind-up
	pt, _ := ecs.Get(f.world, player, component.TransformComponent)
	pt.Pos = common.Vec2{X: 400 + f.spec.Melee.StrikeRange + 100, Y: 300}

	f.stepSeconds(f.spec.Melee.WindUp + 0.1)
	assert.Equal(t, component.StateAttack, f.aiState(enemy).Current)
	assert.Equal(t, f.spec.Player.MaxHealth, f.health(player).Current,
		"attack outside strike range whiffs")
}

func TestScheduledTransitionIgnoresStaleState(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	f.spawnPlayer(common.Vec2{X: 400, Y: 300})
	enemy := f.spawnMelee(common.Vec2{X: 400 + f.spec.Melee.MeleeRange - 4, Y: 300})

	// drive into attack, which schedules the recovery transition
	f.stepSeconds(f.spec.Melee.WindUp + 0.05)
	require.Equal(t, component.StateAttack, f.aiState(enemy).Current)

	// the machine moves on before the callback lands
	st := f.aiState(enemy)
	st.Current = component.StateTelegraph
	st.Seq += 10
	st.TelegraphLeft = 100 // park it

	f.stepSeconds(f.spec.Melee.RecoverDelay + 0.1)
	assert.Equal(t, component.StateTelegraph, f.aiState(enemy).Current,
		"stale scheduled transition must not fire")
}

func TestScheduledTransitionIgnoresDeadEntity(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	f.spawnPlayer(common.Vec2{X: 400, Y: 300})
	enemy := f.spawnMelee(common.Vec2{X: 400 + f.spec.Melee.MeleeRange - 4, Y: 300})

	f.stepSeconds(f.spec.Melee.WindUp + 0.05)
	require.Equal(t, component.StateAttack, f.aiState(enemy).Current)

	f.world.DestroyEntity(enemy)

	// must not panic or resurrect anything
	f.stepSeconds(f.spec.Melee.RecoverDelay + 0.1)
	assert.False(t, f.world.IsAlive(enemy))
}

func TestMeleeIdlesWithoutPlayer(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	enemy := f.spawnMelee(common.Vec2{X: 100, Y: 100})
	f.step(30)

	vel, _ := ecs.Get(f.world, enemy, component.VelocityComponent)
	assert.Equal(t, common.Vec2{}, vel.V)
	assert.Equal(t, component.StateChase, f.aiState(enemy).Current)
}

func TestRangedDistanceBands(t *testing.T) {
	cases := []struct {
		name string
		dist float64
		want func(t *testing.T, toPlayerX, velX float64)
	}{
		{
			name: "retreats when crowded",
			dist: 40,
			want: func(t *testing.T, toPlayerX, velX float64) {
				assert.Negative(t, velX*toPlayerX, "velocity should point away from the player")
			},
		},
		{
			name: "approaches when far",
			dist: 600,
			want: func(t *testing.T, toPlayerX, velX float64) {
				assert.Positive(t, velX*toPlayerX, "velocity should point toward the player")
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
			ai := NewAISystem(f.clock, nilGrid, combat)
			f.world.AddSystem(ai)

			f.spawnPlayer(common.Vec2{X: 400, Y: 300})
			enemy := f.spawnRanged(common.Vec2{X: 400 + c.dist, Y: 300})

			f.step(1)
			vel, _ := ecs.Get(f.world, enemy, component.VelocityComponent)
			toPlayerX := -c.dist
			c.want(t, toPlayerX, vel.V.X)
		})
	}
}

func TestRangedStrafesInBand(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	f.spawnPlayer(common.Vec2{X: 400, Y: 300})
	mid := (f.spec.Ranged.RetreatRange + f.spec.Ranged.ApproachRange) / 2
	enemy := f.spawnRanged(common.Vec2{X: 400 + mid, Y: 300})

	f.step(1)
	vel, _ := ecs.Get(f.world, enemy, component.VelocityComponent)
	// movement is perpendicular: dominated by Y for a horizontal pair
	assert.Greater(t, absF(vel.V.Y), absF(vel.V.X))
}

func TestRangedShootsInsideApproachRange(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)
	f.world.AddSystem(NewCooldownSystem())

	f.spawnPlayer(common.Vec2{X: 400, Y: 300})
	mid := (f.spec.Ranged.RetreatRange + f.spec.Ranged.ApproachRange) / 2
	f.spawnRanged(common.Vec2{X: 400 + mid, Y: 300})

	f.step(1)
	assert.Equal(t, 1, ecs.Count(f.world, component.BulletComponent), "first shot is immediate")

	// the cooldown gates the next shot
	f.step(2)
	assert.Equal(t, 1, ecs.Count(f.world, component.BulletComponent))

	f.stepSeconds(f.spec.Ranged.ShootCooldown + 0.1)
	assert.GreaterOrEqual(t, ecs.Count(f.world, component.BulletComponent), 2)
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestChaseFallsBackToStraightLineBearing(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	// no grid, so no path: pursuit must run exactly along the bearing
	f.spawnPlayer(common.Vec2{X: 500, Y: 700})
	enemy := f.spawnMelee(common.Vec2{X: 200, Y: 300})

	f.step(1)

	dir := common.Vec2{X: 300, Y: 400}.Normalized()
	vel, _ := ecs.Get(f.world, enemy, component.VelocityComponent)
	assert.InDelta(t, dir.X*f.spec.Melee.MoveSpeed, vel.V.X, 1e-9)
	assert.InDelta(t, dir.Y*f.spec.Melee.MoveSpeed, vel.V.Y, 1e-9)

	pt, _ := ecs.Get(f.world, enemy, component.TransformComponent)
	assert.InDelta(t, dir.Angle(), pt.Rotation, 1e-9)
}

func TestMeleeApproachesFromDistance(t *testing.T) {
	f := newFixture(t)
	rm := testRoom(t)
	grid := rm.BuildGrid()

	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, func() *pathfind.Grid { return grid }, combat)
	f.world.AddSystem(ai)
	f.world.AddSystem(NewMovementSystem(func() *room.Spec { return rm }))

	playerPos := common.Vec2{X: 640, Y: 384}
	f.spawnPlayer(playerPos)
	enemy := f.spawnMelee(common.Vec2{X: 140, Y: 384}) // 500 units out

	closed := false
	for frame := 0; frame < 10*60; frame++ {
		f.step(1)
		if f.aiState(enemy).Current != component.StateChase {
			closed = true
			break
		}
	}
	require.True(t, closed, "enemy never closed the gap")
	assert.Equal(t, component.StateTelegraph, f.aiState(enemy).Current)

	pt, _ := ecs.Get(f.world, enemy, component.TransformComponent)
	assert.Less(t, pt.Pos.DistanceTo(playerPos), f.spec.Melee.MeleeRange+1,
		"chase hands off inside melee range")
}

func TestTelegraphTimerStrictlyDecreases(t *testing.T) {
	f := newFixture(t)
	combat := NewCombat(f.clock, f.spec.Player.InvulnFrames)
	ai := NewAISystem(f.clock, nilGrid, combat)
	f.world.AddSystem(ai)

	f.spawnPlayer(common.Vec2{X: 400, Y: 300})
	enemy := f.spawnMelee(common.Vec2{X: 400 + f.spec.Melee.MeleeRange - 4, Y: 300})

	f.step(1)
	require.Equal(t, component.StateTelegraph, f.aiState(enemy).Current)

	prev := f.aiState(enemy).TelegraphLeft
	steps := 0
	for f.aiState(enemy).Current == component.StateTelegraph {
		f.step(1)
		if f.aiState(enemy).Current != component.StateTelegraph {
			break
		}
		left := f.aiState(enemy).TelegraphLeft
		require.Less(t, left, prev, "wind-up timer must shrink every update")
		prev = left
		steps++
		require.Less(t, steps, 120, "telegraph never ended")
	}
	assert.Equal(t, component.StateAttack, f.aiState(enemy).Current)
}
