package component

// ArchetypeID is the closed set of entity categories. Behavior
// dispatches on this tag; entities never carry executable state.
type ArchetypeID uint8

const (
	ArchetypeNone ArchetypeID = iota
	ArchetypePlayer
	ArchetypeMeleeEnemy
	ArchetypeRangedEnemy
	ArchetypeSentinel
	ArchetypeBoss
	ArchetypeBullet
	ArchetypePickup
	ArchetypeDecoration
)

func (a ArchetypeID) String() string {
	switch a {
	case ArchetypePlayer:
		return "player"
	case ArchetypeMeleeEnemy:
		return "melee_enemy"
	case ArchetypeRangedEnemy:
		return "ranged_enemy"
	case ArchetypeSentinel:
		return "sentinel"
	case ArchetypeBoss:
		return "boss"
	case ArchetypeBullet:
		return "bullet"
	case ArchetypePickup:
		return "pickup"
	case ArchetypeDecoration:
		return "decoration"
	}
	return "none"
}

// Archetype tags an entity with its category.
type Archetype struct {
	ID ArchetypeID
}

var ArchetypeComponent = NewComponent[Archetype]()
