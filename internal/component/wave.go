// internal/component/wave.go
package component

// Wave holds the spawn schedule state for the wave in progress.
type Wave struct {
	Number         int
	EnemiesToSpawn int
	SpawnTimer     float64
	SpawnInterval  float64
	Reward         int // wave-completion credit bonus
	ResearchPoints int // persistent currency bonus
	HealthScale    float64
}
