// internal/defs/types.go
package defs

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Cost     int            `json:"cost"`
	Damage   int            `json:"damage"`
	Range    float64        `json:"range"`     // pixels
	FireRate float64        `json:"fire_rate"` // shots per second
	Levels   []UpgradeLevel `json:"levels"`    // per-level upgrade schedule, index 0 = upgrade to level 2
}

// UpgradeLevel describes one step of a tower's upgrade schedule.
type UpgradeLevel struct {
	Cost     int     `json:"cost"`
	Damage   int     `json:"damage"`
	Range    float64 `json:"range"`
	FireRate float64 `json:"fire_rate"`
}

// MaxLevel returns the highest level the tower can reach (level 1 plus one
// per schedule entry).
func (d TowerDefinition) MaxLevel() int {
	return 1 + len(d.Levels)
}

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Health int     `json:"health"`
	Speed  float64 `json:"speed"` // pixels per second
	Armor  int     `json:"armor"`
	Reward int     `json:"reward"`
}

// WaveDefinition describes the composition of one wave.
type WaveDefinition struct {
	Entries        []SpawnEntry `json:"entries"`
	SpawnIntervalS float64      `json:"spawn_interval_s"` // seconds between spawns
	Reward         int          `json:"reward"`           // wave-completion credit bonus
	ResearchPoints int          `json:"research_points"`  // persistent currency bonus
	HealthScale    float64      `json:"health_scale"`     // multiplier applied to enemy base health
}

// SpawnEntry is one weighted slot in a wave's composition.
type SpawnEntry struct {
	EnemyID string `json:"enemy_id"`
	Count   int    `json:"count"`
	Weight  int    `json:"weight"` // weighted-random pick among entries
}

// TotalCount returns the number of enemies the wave spawns.
func (d WaveDefinition) TotalCount() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Count
	}
	return total
}
