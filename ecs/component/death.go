package component

// Dying marks an entity in its terminal death routine: destruction is
// scheduled, the corpse fades, and the loot roll has already happened.
type Dying struct {
	Remaining float64 // seconds until destruction
	Duration  float64
}

var DyingComponent = NewComponent[Dying]()
