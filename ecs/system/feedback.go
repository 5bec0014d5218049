package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/obj"
)

// FeedbackSystem drains boundary requests raised during the step and
// forwards them to the audio and particle layers. It must run last in
// the system order so it sees everything the step produced.
type FeedbackSystem struct {
	sounds    *obj.SoundBank
	particles *obj.Particles
}

func NewFeedbackSystem(sounds *obj.SoundBank, particles *obj.Particles) *FeedbackSystem {
	return &FeedbackSystem{sounds: sounds, particles: particles}
}

func (s *FeedbackSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventSound:
			if req, ok := evt.Data.(ecs.SoundRequest); ok && s.sounds != nil {
				s.sounds.Play(req.ID)
			}
		case ecs.EventParticles:
			if req, ok := evt.Data.(ecs.ParticleRequest); ok && s.particles != nil {
				s.particles.Emit(req.Origin, req.Preset)
			}
		}
	}
}
