package component

// PickupKind is the closed set of collectible effects.
type PickupKind uint8

const (
	PickupHealth PickupKind = iota
	PickupEnergy
	PickupUpgrade
)

// Pickup applies a typed effect to the player on contact, then the
// pickup entity is destroyed.
type Pickup struct {
	Kind   PickupKind
	Amount float64
}

var PickupComponent = NewComponent[Pickup]()
