package system

import (
	"math"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

const flashDecayRate = 10.0

// VisualSystem decays damage flash on wall-clock step time, so hit
// flashes visibly fade even while the clock is frozen or slowed.
// Telegraph pulses overwrite Flash every frame and are unaffected.
type VisualSystem struct {
	clock *ecs.Clock
}

func NewVisualSystem(clock *ecs.Clock) *VisualSystem {
	return &VisualSystem{clock: clock}
}

func (s *VisualSystem) Update(w *ecs.World) {
	dt := s.clock.StepDT()
	ecs.ForEach(w, component.VisualComponent, func(_ ecs.Entity, vis *component.Visual) {
		if vis.Flash <= 0 {
			return
		}
		vis.Flash *= math.Exp(-flashDecayRate * dt)
		if vis.Flash < 0.01 {
			vis.Flash = 0
		}
	})
}
