package component

// BossPhase is the two-phase boss runtime. Phase moves 1 -> 2 exactly
// once, when health first drops to the trigger fraction of max; it
// never moves back.
type BossPhase struct {
	Phase        int
	TriggerFrac  float64 // phase 2 activates at health <= TriggerFrac*max
	SpeedScale   float64 // applied to MoveSpeed in phase 2
	CadenceScale float64 // applied to shoot cooldown in phase 2
	BurstCount   int     // radial burst bullets, phase 2 only
	BurstEvery   float64 // seconds between bursts
	BurstLeft    float64
}

var BossPhaseComponent = NewComponent[BossPhase]()
