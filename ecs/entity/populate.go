package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/room"
)

// PopulateRoom runs a room's population routine: doors, enemies,
// pickups, and decorations. The player is placed separately by the
// transition orchestrator.
func PopulateRoom(w *ecs.World, r *room.Spec, spec *prefabs.GameSpec) error {
	for _, d := range r.Doors {
		if _, err := NewDoor(w, r, d); err != nil {
			return fmt.Errorf("populate %s: %w", r.ID, err)
		}
	}

	for _, s := range r.Spawns {
		pos := common.Vec2{
			X: s.X * r.TileSize,
			Y: s.Y * r.TileSize,
		}
		var err error
		switch s.Archetype {
		case "melee":
			_, err = NewMeleeEnemy(w, &spec.Melee, pos)
		case "ranged":
			_, err = NewRangedEnemy(w, &spec.Ranged, pos)
		case "sentinel":
			_, err = NewSentinel(w, &spec.Sentinel, pos)
		case "boss":
			_, err = NewBoss(w, &spec.Boss, pos)
		case "pickup_health":
			_, err = NewPickup(w, component.PickupHealth, 30, pos)
		case "pickup_energy":
			_, err = NewPickup(w, component.PickupEnergy, 20, pos)
		case "torch":
			_, err = NewDecoration(w, pos)
		default:
			// an unknown archetype in room data shouldn't take the
			// whole room down with it
			log.Printf("populate %s: unknown archetype %q, skipping", r.ID, s.Archetype)
		}
		if err != nil {
			return fmt.Errorf("populate %s: %w", r.ID, err)
		}
	}
	return nil
}
