package component

// SpawnSide tells the orchestrator where to place the player in the
// room a door leads to.
type SpawnSide uint8

const (
	SpawnCenter SpawnSide = iota
	SpawnLeft
	SpawnRight
)

// Door is a trigger region that starts a room transition on player
// contact.
type Door struct {
	TargetRoom string
	Side       SpawnSide
}

var DoorComponent = NewComponent[Door]()
