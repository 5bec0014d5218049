package component

import "github.com/milk9111/undercroft/common"

// StateID names an AI state within an archetype's state table.
type StateID string

const (
	StateChase     StateID = "chase"
	StateTelegraph StateID = "telegraph"
	StateAttack    StateID = "attack"
)

// AI holds the tuning constants for an AI-driven entity, loaded from
// the archetype prefab spec.
type AI struct {
	MoveSpeed    float64
	MeleeRange   float64 // chase -> telegraph threshold
	StrikeRange  float64 // attack connects within this
	Damage       float64
	WindUp       float64 // telegraph duration, seconds
	LungeSpeed   float64
	RecoverDelay float64 // attack -> chase delay, seconds
	PathInterval float64 // pathfind recompute interval, seconds

	// ranged archetype bands
	RetreatRange  float64
	ApproachRange float64
	ShootCooldown float64
	BulletSpeed   float64
	BulletDamage  float64
}

var AIComponent = NewComponent[AI]()

// AIState is the FSM runtime attached alongside AI: the single active
// state, elapsed time in it, and the state-local scratch record.
type AIState struct {
	Current StateID
	Elapsed float64

	// Seq increments on every transition. A scheduled transition
	// captures the value at issue time and no-ops if it no longer
	// matches, so a stale callback cannot yank a later state.
	Seq uint64

	// state-local scratch
	Path          []common.Vec2
	Waypoint      int
	PathCooldown  float64
	TelegraphLeft float64
	WarnIntensity float64
	StrafeSign    float64
}

var AIStateComponent = NewComponent[AIState]()
