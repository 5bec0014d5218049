package component

// Tag is a bit in an entity's tag set. Collision rules pair entities by
// tags, so every combat-relevant archetype carries at least one.
type Tag uint32

const (
	TagPlayer Tag = 1 << iota
	TagEnemy
	TagPlayerBullet
	TagEnemyBullet
	TagPickupHealth
	TagPickupEnergy
	TagPickupUpgrade
	TagDoor
	TagSolid
)

// Tags is an entity's unordered tag set.
type Tags struct {
	Mask Tag
}

func (t Tags) Has(tag Tag) bool {
	return t.Mask&tag != 0
}

func (t *Tags) Add(tag Tag) {
	t.Mask |= tag
}

func (t *Tags) Remove(tag Tag) {
	t.Mask &^= tag
}

var TagsComponent = NewComponent[Tags]()
