package system

import (
	"math"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
)

// BossSystem owns the phase machine layered on top of the shared melee
// state table: the one-way 1 -> 2 transition at the health threshold,
// and the phase-2 radial burst.
type BossSystem struct{}

func NewBossSystem() *BossSystem { return &BossSystem{} }

func (s *BossSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}

	ecs.ForEach2(w, component.BossPhaseComponent, component.HealthComponent, func(e ecs.Entity, phase *component.BossPhase, hp *component.Health) {
		if !hp.Alive() {
			return
		}

		// checked once per frame, applied once: the threshold may be
		// skipped over by a large hit and must still trigger
		if phase.Phase < 2 && hp.Current <= phase.TriggerFrac*hp.Max {
			phase.Phase = 2
			phase.BurstLeft = phase.BurstEvery
			w.Events().PushSound("boss_enrage")
			if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
				w.Events().PushParticles(t.Pos, "enrage")
			}
		}

		if phase.Phase < 2 || phase.BurstCount <= 0 {
			return
		}
		phase.BurstLeft -= dt
		if phase.BurstLeft > 0 {
			return
		}
		phase.BurstLeft = phase.BurstEvery
		s.radialBurst(w, e, phase)
	})
}

func (s *BossSystem) radialBurst(w *ecs.World, e ecs.Entity, phase *component.BossPhase) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	ai, ok := ecs.Get(w, e, component.AIComponent)
	if !ok {
		return
	}

	for i := 0; i < phase.BurstCount; i++ {
		angle := (2 * math.Pi / float64(phase.BurstCount)) * float64(i)
		dir := common.FromAngle(angle)
		muzzle := t.Pos.Add(dir.Scale(32))
		if _, err := entity.NewBullet(w, muzzle, dir.Scale(ai.BulletSpeed), ai.BulletDamage, component.TagEnemyBullet); err != nil {
			return
		}
	}
	w.Events().PushSound("boss_burst")
}
