// internal/engine/wave.go
package engine

import (
	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/internal/defs"
	"github.com/LupusDei/space-towers-sub001/internal/utils"
	"github.com/LupusDei/space-towers-sub001/pkg/logger"
)

// SpawnFunc is invoked when the schedule says to spawn. It returns false
// when the enemy could not be created (unknown definition, no path); the
// controller then skips that slot rather than stalling the wave.
type SpawnFunc func(enemyID string, healthScale float64) bool

// WaveController is the timed, budgeted spawn scheduler. It owns when
// enemies appear; whether the wave is *done* (spawning complete and zero
// enemies alive) is the Engine's conjunction to evaluate every tick, because
// only the Engine sees the enemy table.
type WaveController struct {
	lib     *defs.Library
	prng    *utils.PRNG
	onSpawn SpawnFunc

	wave      *component.Wave
	remaining []int // per-entry counts still to spawn, parallel to def entries
	entries   []defs.SpawnEntry
	complete  bool
}

// NewWaveController wires the controller to its content library, random
// stream and spawn callback.
func NewWaveController(lib *defs.Library, prng *utils.PRNG, onSpawn SpawnFunc) *WaveController {
	return &WaveController{lib: lib, prng: prng, onSpawn: onSpawn, complete: true}
}

// SetLibrary swaps the content library. Takes effect on the next StartWave.
func (w *WaveController) SetLibrary(lib *defs.Library) {
	w.lib = lib
}

// StartWave arms the schedule for waveNumber.
func (w *WaveController) StartWave(waveNumber int) {
	def := w.lib.Wave(waveNumber)
	if def.TotalCount() == 0 {
		logger.Log.WithField("wave", waveNumber).Warn("wave definition is empty")
	}

	scale := def.HealthScale
	if scale <= 0 {
		scale = 1.0
	}
	w.wave = &component.Wave{
		Number:         waveNumber,
		EnemiesToSpawn: def.TotalCount(),
		SpawnTimer:     def.SpawnIntervalS, // first enemy spawns on the first tick
		SpawnInterval:  def.SpawnIntervalS,
		Reward:         def.Reward,
		ResearchPoints: def.ResearchPoints,
		HealthScale:    scale,
	}
	w.entries = def.Entries
	w.remaining = make([]int, len(def.Entries))
	for i, e := range def.Entries {
		w.remaining[i] = e.Count
	}
	w.complete = w.wave.EnemiesToSpawn == 0
}

// Update advances the spawn timer by dt and spawns when it elapses.
func (w *WaveController) Update(dt float64) {
	if w.complete || w.wave == nil {
		return
	}

	w.wave.SpawnTimer += dt
	for w.wave.SpawnTimer >= w.wave.SpawnInterval && w.wave.EnemiesToSpawn > 0 {
		w.wave.SpawnTimer -= w.wave.SpawnInterval
		w.spawnOne()
	}
	if w.wave.EnemiesToSpawn == 0 {
		w.complete = true
	}
}

func (w *WaveController) spawnOne() {
	idx := w.pickEntry()
	if idx < 0 {
		w.wave.EnemiesToSpawn = 0
		return
	}
	w.remaining[idx]--
	w.wave.EnemiesToSpawn--
	if !w.onSpawn(w.entries[idx].EnemyID, w.wave.HealthScale) {
		logger.Log.WithField("enemy", w.entries[idx].EnemyID).Warn("spawn rejected")
	}
}

// pickEntry does a weighted choice among entries with remaining spawns.
func (w *WaveController) pickEntry() int {
	weights := make([]int, len(w.entries))
	any := false
	for i, e := range w.entries {
		if w.remaining[i] > 0 {
			weight := e.Weight
			if weight <= 0 {
				weight = 1
			}
			weights[i] = weight
			any = true
		}
	}
	if !any {
		return -1
	}
	return w.prng.ChooseWeighted(weights)
}

// SpawningComplete reports whether the schedule has emitted every enemy.
func (w *WaveController) SpawningComplete() bool {
	return w.complete
}

// Reward returns the wave-completion credit bonus.
func (w *WaveController) Reward() int {
	if w.wave == nil {
		return 0
	}
	return w.wave.Reward
}

// ResearchPoints returns the wave's persistent-currency bonus.
func (w *WaveController) ResearchPoints() int {
	if w.wave == nil {
		return 0
	}
	return w.wave.ResearchPoints
}

// Number returns the armed wave number, 0 when idle.
func (w *WaveController) Number() int {
	if w.wave == nil {
		return 0
	}
	return w.wave.Number
}

// CompleteWave clears the schedule after the Engine confirms the wave is
// done.
func (w *WaveController) CompleteWave() {
	w.wave = nil
	w.entries = nil
	w.remaining = nil
	w.complete = true
}

// Reset drops all schedule state, used on game restart.
func (w *WaveController) Reset() {
	w.CompleteWave()
}
