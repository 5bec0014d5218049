package entity

import (
	"fmt"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/room"
)

// NewDoor spawns a door trigger region from a room's door spec.
func NewDoor(w *ecs.World, r *room.Spec, d room.DoorSpec) (ecs.Entity, error) {
	side, err := room.ParseSide(d.Side)
	if err != nil {
		return 0, err
	}

	width := d.W * r.TileSize
	height := d.H * r.TileSize
	center := common.Vec2{
		X: d.X*r.TileSize + width/2,
		Y: d.Y*r.TileSize + height/2,
	}

	e := w.CreateEntity()
	adds := []error{
		ecs.Add(w, e, component.ArchetypeComponent, component.Archetype{ID: component.ArchetypeDecoration}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: center}),
		ecs.Add(w, e, component.ColliderComponent, component.Collider{
			Shape:   component.ShapeBox,
			Width:   width,
			Height:  height,
			Trigger: true,
		}),
		ecs.Add(w, e, component.TagsComponent, component.Tags{Mask: component.TagDoor}),
		ecs.Add(w, e, component.DoorComponent, component.Door{TargetRoom: d.Target, Side: side}),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("door: %w", err)
		}
	}
	return e, nil
}

// NewDecoration spawns a non-interactive prop.
func NewDecoration(w *ecs.World, pos common.Vec2) (ecs.Entity, error) {
	e := w.CreateEntity()
	adds := []error{
		ecs.Add(w, e, component.ArchetypeComponent, component.Archetype{ID: component.ArchetypeDecoration}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: pos}),
		ecs.Add(w, e, component.VisualComponent, component.NewVisual()),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("decoration: %w", err)
		}
	}
	return e, nil
}
