package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// TTLSystem destroys entities whose time-to-live ran out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem { return &TTLSystem{} }

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}
	ecs.ForEach(w, component.TTLComponent, func(e ecs.Entity, ttl *component.TTL) {
		ttl.Seconds -= dt
		if ttl.Seconds <= 0 {
			w.DestroyEntity(e)
		}
	})
}

// CooldownSystem ticks every named cooldown timer down.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem { return &CooldownSystem{} }

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}
	ecs.ForEach(w, component.CooldownsComponent, func(e ecs.Entity, cds *component.Cooldowns) {
		for name, left := range cds.Timers {
			if left <= 0 {
				continue
			}
			cds.Timers[name] = left - dt
		}
	})
}

// InvulnSystem ticks invulnerability windows down one frame per step.
type InvulnSystem struct{}

func NewInvulnSystem() *InvulnSystem { return &InvulnSystem{} }

func (s *InvulnSystem) Update(w *ecs.World) {
	if w == nil || w.DT() <= 0 {
		return
	}
	ecs.ForEach(w, component.HealthComponent, func(e ecs.Entity, hp *component.Health) {
		if hp.InvulnFrames > 0 {
			hp.InvulnFrames--
		}
	})
}
