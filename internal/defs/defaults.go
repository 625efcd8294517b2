// internal/defs/defaults.go
package defs

// DefaultLibrary returns the compiled-in content tables. They double as the
// reference balance for tests.
func DefaultLibrary() *Library {
	return &Library{
		Towers: map[string]TowerDefinition{
			"TOWER_GUN": {
				ID: "TOWER_GUN", Name: "Gun Turret",
				Cost: 50, Damage: 10, Range: 96, FireRate: 2.0,
				Levels: []UpgradeLevel{
					{Cost: 40, Damage: 16, Range: 104, FireRate: 2.2},
					{Cost: 80, Damage: 25, Range: 112, FireRate: 2.5},
				},
			},
			"TOWER_CANNON": {
				ID: "TOWER_CANNON", Name: "Cannon",
				Cost: 90, Damage: 30, Range: 120, FireRate: 0.8,
				Levels: []UpgradeLevel{
					{Cost: 70, Damage: 48, Range: 128, FireRate: 0.9},
					{Cost: 140, Damage: 75, Range: 136, FireRate: 1.0},
				},
			},
			"TOWER_FROST": {
				ID: "TOWER_FROST", Name: "Frost Spire",
				Cost: 70, Damage: 4, Range: 88, FireRate: 1.2,
				Levels: []UpgradeLevel{
					{Cost: 60, Damage: 6, Range: 96, FireRate: 1.4},
				},
			},
			"TOWER_STORM": {
				ID: "TOWER_STORM", Name: "Storm Caller",
				Cost: 120, Damage: 8, Range: 140, FireRate: 0.5,
				Levels: []UpgradeLevel{
					{Cost: 100, Damage: 12, Range: 150, FireRate: 0.6},
				},
			},
		},
		Enemies: map[string]EnemyDefinition{
			"ENEMY_GRUNT":  {ID: "ENEMY_GRUNT", Name: "Grunt", Health: 40, Speed: 60, Armor: 0, Reward: 8},
			"ENEMY_RUNNER": {ID: "ENEMY_RUNNER", Name: "Runner", Health: 25, Speed: 110, Armor: 0, Reward: 10},
			"ENEMY_BRUTE":  {ID: "ENEMY_BRUTE", Name: "Brute", Health: 140, Speed: 40, Armor: 4, Reward: 20},
			"ENEMY_SHELL":  {ID: "ENEMY_SHELL", Name: "Shellback", Health: 90, Speed: 50, Armor: 8, Reward: 18},
			"ENEMY_BOSS":   {ID: "ENEMY_BOSS", Name: "Warlord", Health: 900, Speed: 30, Armor: 10, Reward: 150},
		},
		Waves: map[int]WaveDefinition{
			1: {
				Entries:        []SpawnEntry{{EnemyID: "ENEMY_GRUNT", Count: 6, Weight: 1}},
				SpawnIntervalS: 1.0, Reward: 25, ResearchPoints: 1, HealthScale: 1.0,
			},
			2: {
				Entries:        []SpawnEntry{{EnemyID: "ENEMY_GRUNT", Count: 8, Weight: 3}, {EnemyID: "ENEMY_RUNNER", Count: 3, Weight: 1}},
				SpawnIntervalS: 0.9, Reward: 30, ResearchPoints: 1, HealthScale: 1.0,
			},
			3: {
				Entries:        []SpawnEntry{{EnemyID: "ENEMY_RUNNER", Count: 10, Weight: 1}},
				SpawnIntervalS: 0.6, Reward: 35, ResearchPoints: 1, HealthScale: 1.0,
			},
			4: {
				Entries:        []SpawnEntry{{EnemyID: "ENEMY_BRUTE", Count: 6, Weight: 2}, {EnemyID: "ENEMY_GRUNT", Count: 6, Weight: 1}},
				SpawnIntervalS: 1.1, Reward: 45, ResearchPoints: 2, HealthScale: 1.0,
			},
			5: {
				Entries:        []SpawnEntry{{EnemyID: "ENEMY_SHELL", Count: 8, Weight: 1}},
				SpawnIntervalS: 0.9, Reward: 50, ResearchPoints: 2, HealthScale: 1.0,
			},
			6: {
				Entries:        []SpawnEntry{{EnemyID: "ENEMY_SHELL", Count: 8, Weight: 1}, {EnemyID: "ENEMY_RUNNER", Count: 8, Weight: 1}},
				SpawnIntervalS: 0.7, Reward: 60, ResearchPoints: 2, HealthScale: 1.1,
			},
			7: {
				Entries:        []SpawnEntry{{EnemyID: "ENEMY_BOSS", Count: 1, Weight: 1}, {EnemyID: "ENEMY_BRUTE", Count: 8, Weight: 4}},
				SpawnIntervalS: 1.2, Reward: 100, ResearchPoints: 5, HealthScale: 1.2,
			},
		},
	}
}
