package system

import (
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/obj"
)

const (
	zoomDensityRadius = 350.0
	zoomBase          = 1.1
	zoomPerEnemy      = 0.05
	zoomMin           = 0.85
)

// CameraSystem feeds the camera controller: follow target position and
// rotation each frame, plus the density-driven target zoom. The camera
// holds no reference to the player entity; a dead target just stops
// feeding it.
type CameraSystem struct {
	cam *obj.Camera
}

func NewCameraSystem(cam *obj.Camera) *CameraSystem {
	return &CameraSystem{cam: cam}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if s == nil || s.cam == nil || w == nil {
		return
	}
	dt := w.DT()
	if dt <= 0 {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return
	}

	s.cam.SetTargetZoom(s.densityZoom(w, t.Pos))
	s.cam.Update(t.Pos, t.Rotation, dt)
}

// densityZoom widens the view as enemies crowd the follow target.
func (s *CameraSystem) densityZoom(w *ecs.World, center common.Vec2) float64 {
	count := 0
	ecs.ForEach2(w, component.TagsComponent, component.TransformComponent, func(e ecs.Entity, tags *component.Tags, t *component.Transform) {
		if !tags.Has(component.TagEnemy) {
			return
		}
		if hp, ok := ecs.Get(w, e, component.HealthComponent); ok && !hp.Alive() {
			return
		}
		if t.Pos.DistanceTo(center) <= zoomDensityRadius {
			count++
		}
	})
	return common.Clamp(zoomBase-zoomPerEnemy*float64(count), zoomMin, zoomBase)
}
