package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PlayerSpec tunes the player archetype.
type PlayerSpec struct {
	MaxHealth    float64 `yaml:"max_health"`
	MaxEnergy    float64 `yaml:"max_energy"`
	EnergyRegen  float64 `yaml:"energy_regen"`
	MoveSpeed    float64 `yaml:"move_speed"`
	Radius       float64 `yaml:"radius"`
	BulletSpeed  float64 `yaml:"bullet_speed"`
	BulletDamage float64 `yaml:"bullet_damage"`
	BulletCost   float64 `yaml:"bullet_cost"`
	InvulnFrames int     `yaml:"invuln_frames"`
}

// EnemySpec tunes one enemy archetype. Fields irrelevant to an
// archetype are left zero in the yaml.
type EnemySpec struct {
	MaxHealth    float64 `yaml:"max_health"`
	MoveSpeed    float64 `yaml:"move_speed"`
	Radius       float64 `yaml:"radius"`
	MeleeRange   float64 `yaml:"melee_range"`
	StrikeRange  float64 `yaml:"strike_range"`
	Damage       float64 `yaml:"damage"`
	WindUp       float64 `yaml:"wind_up"`
	LungeSpeed   float64 `yaml:"lunge_speed"`
	RecoverDelay float64 `yaml:"recover_delay"`
	PathInterval float64 `yaml:"path_interval"`

	RetreatRange  float64 `yaml:"retreat_range"`
	ApproachRange float64 `yaml:"approach_range"`
	ShootCooldown float64 `yaml:"shoot_cooldown"`
	BulletSpeed   float64 `yaml:"bullet_speed"`
	BulletDamage  float64 `yaml:"bullet_damage"`
}

// BossPhaseSpec tunes the one-way phase 2.
type BossPhaseSpec struct {
	TriggerFrac  float64 `yaml:"trigger_frac"`
	SpeedScale   float64 `yaml:"speed_scale"`
	CadenceScale float64 `yaml:"cadence_scale"`
	BurstCount   int     `yaml:"burst_count"`
	BurstEvery   float64 `yaml:"burst_every"`
}

// BossSpec tunes the boss archetype.
type BossSpec struct {
	EnemySpec `yaml:",inline"`
	Phase2    BossPhaseSpec `yaml:"phase2"`
}

// LootEntry is one row of the weighted drop table. Kind "none" is a
// valid row meaning no drop.
type LootEntry struct {
	Kind   string  `yaml:"kind"`
	Amount float64 `yaml:"amount"`
	Weight int     `yaml:"weight"`
}

// GameSpec is the whole tuning document.
type GameSpec struct {
	Player   PlayerSpec  `yaml:"player"`
	Melee    EnemySpec   `yaml:"melee"`
	Ranged   EnemySpec   `yaml:"ranged"`
	Sentinel EnemySpec   `yaml:"sentinel"`
	Boss     BossSpec    `yaml:"boss"`
	Loot     []LootEntry `yaml:"loot"`
}

// LoadGameSpec reads and decodes the embedded archetype tuning file
// (or its on-disk override when watching is enabled).
func LoadGameSpec() (*GameSpec, error) {
	data, err := Load("archetypes.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load archetypes.yaml: %w", err)
	}
	var spec GameSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal archetypes.yaml: %w", err)
	}
	return &spec, nil
}
