package component

// PlayerTag marks the single player entity.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// PlayerStats is run-long player progress that rides along on the
// player entity and crosses room swaps by value through the progress
// snapshot.
type PlayerStats struct {
	KillCount int
	Upgrades  int
}

var PlayerStatsComponent = NewComponent[PlayerStats]()
