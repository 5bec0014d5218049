package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

func TestTTLDestroysOnExpiry(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewTTLSystem())

	short := w.CreateEntity()
	require.NoError(t, ecs.Add(w, short, component.TTLComponent, component.TTL{Seconds: 0.05}))
	long := w.CreateEntity()
	require.NoError(t, ecs.Add(w, long, component.TTLComponent, component.TTL{Seconds: 10}))

	for i := 0; i < 4; i++ {
		w.Update(1.0 / 60)
	}
	assert.False(t, w.IsAlive(short))
	assert.True(t, w.IsAlive(long))
}

func TestCooldownTicksOnlyRunningTimers(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewCooldownSystem())

	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.CooldownsComponent, component.Cooldowns{
		Timers: map[string]float64{"shoot": 0.5, "dash": 0},
	}))

	w.Update(1.0 / 60)

	cds, ok := ecs.Get(w, e, component.CooldownsComponent)
	require.True(t, ok)
	assert.InDelta(t, 0.5-1.0/60, cds.Timers["shoot"], 1e-9)
	assert.Zero(t, cds.Timers["dash"], "expired timers stay put")
}

func TestInvulnTicksPerFrameNotPerSecond(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewInvulnSystem())

	e := w.CreateEntity()
	hp := component.NewHealth(100)
	hp.InvulnFrames = 3
	require.NoError(t, ecs.Add(w, e, component.HealthComponent, hp))

	w.Update(1.0 / 60)
	w.Update(1.0 / 60)
	got, _ := ecs.Get(w, e, component.HealthComponent)
	assert.Equal(t, 1, got.InvulnFrames)

	w.Update(1.0 / 60)
	w.Update(1.0 / 60)
	assert.Zero(t, got.InvulnFrames, "window bottoms out at zero")
}

func TestTimersHoldDuringFreeze(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewTTLSystem())
	w.AddSystem(NewCooldownSystem())
	w.AddSystem(NewInvulnSystem())

	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TTLComponent, component.TTL{Seconds: 0.01}))
	hp := component.NewHealth(100)
	hp.InvulnFrames = 2
	require.NoError(t, ecs.Add(w, e, component.HealthComponent, hp))

	// frozen frames hand dt=0 to the world; nothing may advance
	for i := 0; i < 10; i++ {
		w.Update(0)
	}
	assert.True(t, w.IsAlive(e))
	got, _ := ecs.Get(w, e, component.HealthComponent)
	assert.Equal(t, 2, got.InvulnFrames)
}
