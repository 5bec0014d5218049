package entity

import (
	"fmt"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

const pickupRadius = 10.0

func pickupTag(kind component.PickupKind) component.Tag {
	switch kind {
	case component.PickupEnergy:
		return component.TagPickupEnergy
	case component.PickupUpgrade:
		return component.TagPickupUpgrade
	default:
		return component.TagPickupHealth
	}
}

// NewPickup spawns a collectible at pos.
func NewPickup(w *ecs.World, kind component.PickupKind, amount float64, pos common.Vec2) (ecs.Entity, error) {
	e := w.CreateEntity()

	adds := []error{
		ecs.Add(w, e, component.ArchetypeComponent, component.Archetype{ID: component.ArchetypePickup}),
		ecs.Add(w, e, component.TransformComponent, component.Transform{Pos: pos}),
		ecs.Add(w, e, component.ColliderComponent, component.Collider{
			Shape:   component.ShapeCircle,
			Radius:  pickupRadius,
			Trigger: true,
		}),
		ecs.Add(w, e, component.TagsComponent, component.Tags{Mask: pickupTag(kind)}),
		ecs.Add(w, e, component.PickupComponent, component.Pickup{Kind: kind, Amount: amount}),
		ecs.Add(w, e, component.VisualComponent, component.NewVisual()),
	}
	for _, err := range adds {
		if err != nil {
			return 0, fmt.Errorf("pickup: %w", err)
		}
	}
	return e, nil
}
