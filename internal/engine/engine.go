// internal/engine/engine.go
package engine

import (
	"github.com/google/uuid"

	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/internal/config"
	"github.com/LupusDei/space-towers-sub001/internal/defs"
	"github.com/LupusDei/space-towers-sub001/internal/event"
	"github.com/LupusDei/space-towers-sub001/internal/spatial"
	"github.com/LupusDei/space-towers-sub001/internal/utils"
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/logger"
	"github.com/LupusDei/space-towers-sub001/pkg/pool"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// Engine is the aggregate root of the simulation. It owns the grid, the
// entity tables, the economy and the clock; every mutation funnels through
// its public operations, all of which run on the single goroutine that
// drives Frame. Consumers read memoized snapshots instead of live state.
type Engine struct {
	cfg        config.Settings
	lib        *defs.Library
	pendingLib *defs.Library // applied between waves, never mid-combat
	dispatcher *event.Dispatcher
	prng       *utils.PRNG

	world  *grid.Grid
	spawn  grid.Coord
	exit   grid.Coord
	path   []grid.Coord
	center func(grid.Coord) (float64, float64)

	towers      *slotmap.Map[component.Tower]
	enemies     *slotmap.Map[*component.Enemy]
	projectiles *slotmap.Map[*component.Projectile]
	storms      *slotmap.Map[component.Storm]

	enemyPool  *pool.Pool[component.Enemy]
	projPool   *pool.Pool[component.Projectile]
	spatialIdx *spatial.Index

	phases  *PhaseMachine
	waveCtl *WaveController
	clock   *SimulationClock

	runID           string
	wave            int
	lives           int
	credits         int
	score           int
	researchPoints  int // persists across restarts
	gameTime        float64
	speedMultiplier float64

	placedThisRound map[slotmap.Handle]struct{}
	allowedTowers   map[string]struct{} // nil means every definition is allowed
	selected        slotmap.Handle

	version        uint64
	cachedSnapshot *Snapshot
	cachedVersion  uint64

	alongPathCache []slotmap.Handle
	alongPathDirty bool
}

// NewEngine wires an engine from its dependencies. provider may be nil for a
// monotonic wall clock; seed 0 means time-seeded randomness.
func NewEngine(cfg config.Settings, lib *defs.Library, dispatcher *event.Dispatcher, provider TimeProvider, seed int64) *Engine {
	if dispatcher == nil {
		dispatcher = event.NewDispatcher()
	}
	e := &Engine{
		cfg:        cfg,
		lib:        lib,
		dispatcher: dispatcher,
		prng:       utils.NewPRNG(seed),

		towers:      slotmap.New[component.Tower](),
		enemies:     slotmap.New[*component.Enemy](),
		projectiles: slotmap.New[*component.Projectile](),
		storms:      slotmap.New[component.Storm](),

		enemyPool:  pool.New(func() *component.Enemy { return &component.Enemy{} }),
		projPool:   pool.New(func() *component.Projectile { return &component.Projectile{} }),
		spatialIdx: spatial.NewIndex(cfg.Spatial.BucketSize),

		phases:          NewPhaseMachine(),
		speedMultiplier: 1.0,
		placedThisRound: make(map[slotmap.Handle]struct{}),
		alongPathDirty:  true,
	}
	e.center = func(c grid.Coord) (float64, float64) {
		size := cfg.Grid.CellSize
		return (float64(c.X) + 0.5) * size, (float64(c.Y) + 0.5) * size
	}
	e.waveCtl = NewWaveController(lib, e.prng, e.spawnEnemy)
	e.clock = NewSimulationClock(cfg.Clock.Timestep(), cfg.Clock.MaxFrameTime(), provider)
	e.resetWorld()
	return e
}

// Subscribe registers an event listener on the engine's dispatcher.
func (e *Engine) Subscribe(l event.Listener) {
	e.dispatcher.Subscribe(l)
}

// RunID identifies the current game run, regenerated on StartGame.
func (e *Engine) RunID() string {
	return e.runID
}

// Phase returns the active game phase.
func (e *Engine) Phase() Phase {
	return e.phases.Current()
}

// resetWorld rebuilds the grid and empties every entity table. Research
// points survive, everything else starts over.
func (e *Engine) resetWorld() {
	e.world = grid.New(e.cfg.Grid.Width, e.cfg.Grid.Height)
	e.spawn = grid.Coord{X: e.cfg.Grid.SpawnX, Y: e.cfg.Grid.SpawnY}
	e.exit = grid.Coord{X: e.cfg.Grid.ExitX, Y: e.cfg.Grid.ExitY}
	e.world.SetCell(e.spawn, grid.Spawn)
	e.world.SetCell(e.exit, grid.Exit)

	e.enemies.Range(func(_ slotmap.Handle, en **component.Enemy) bool {
		e.enemyPool.Release(*en)
		return true
	})
	e.projectiles.Range(func(_ slotmap.Handle, p **component.Projectile) bool {
		e.projPool.Release(*p)
		return true
	})
	e.towers.Clear()
	e.enemies.Clear()
	e.projectiles.Clear()
	e.storms.Clear()
	e.spatialIdx.Clear()
	e.waveCtl.Reset()

	e.wave = 1
	e.lives = e.cfg.Economy.StartingLives
	e.credits = e.cfg.Economy.StartingCredits
	e.score = 0
	e.gameTime = 0
	e.selected = slotmap.Nil
	clear(e.placedThisRound)
	e.recomputePath()
	e.mutated()
}

// StartGame begins a fresh run from MENU, DEFEAT or VICTORY.
func (e *Engine) StartGame() bool {
	if !e.phases.StartGame() {
		return false
	}
	e.runID = uuid.NewString()
	e.resetWorld()
	e.clock.Start()
	logger.Log.WithField("run", e.runID).Info("game started")
	return true
}

// StartWave arms the current wave's spawn schedule and enters COMBAT. The
// refund-eligibility set is cleared: towers placed before this point now
// refund at the reduced fraction.
func (e *Engine) StartWave() bool {
	if e.phases.Current() != PhasePlanning {
		return false
	}
	e.recomputePath()
	if len(e.path) == 0 {
		logger.Log.Warn("cannot start wave, no spawn-to-exit path")
		return false
	}
	if !e.phases.StartWave() {
		return false
	}
	clear(e.placedThisRound)
	e.waveCtl.StartWave(e.wave)
	e.mutated()
	e.dispatcher.Dispatch(event.WaveStarted{Number: e.wave})
	logger.Log.WithField("wave", e.wave).Info("wave started")
	return true
}

// Pause suspends PLANNING or COMBAT.
func (e *Engine) Pause() bool {
	if !e.phases.Pause() {
		return false
	}
	e.mutated()
	return true
}

// Resume restores the phase active when Pause was called.
func (e *Engine) Resume() bool {
	if !e.phases.Resume() {
		return false
	}
	e.mutated()
	return true
}

// Victory ends the run as won and stops the clock.
func (e *Engine) Victory() bool {
	if !e.phases.Victory() {
		return false
	}
	e.clock.Stop()
	e.mutated()
	e.dispatcher.Dispatch(event.GameOver{Victory: true, Wave: e.wave, Score: e.score})
	return true
}

// Defeat ends the run as lost and stops the clock.
func (e *Engine) Defeat() bool {
	if !e.phases.Defeat() {
		return false
	}
	e.clock.Stop()
	e.mutated()
	e.dispatcher.Dispatch(event.GameOver{Victory: false, Wave: e.wave, Score: e.score})
	return true
}

// SetSpeedMultiplier scales simulation time inside Update. The clock cadence
// is unchanged; a x2 game runs twice as much simulation per tick.
func (e *Engine) SetSpeedMultiplier(m float64) {
	if m <= 0 {
		return
	}
	e.speedMultiplier = m
}

// SpeedMultiplier returns the current time scale.
func (e *Engine) SpeedMultiplier() float64 {
	return e.speedMultiplier
}

// SetAllowedTowers restricts placement to the given definition IDs. An empty
// set lifts the restriction.
func (e *Engine) SetAllowedTowers(ids []string) {
	if len(ids) == 0 {
		e.allowedTowers = nil
		return
	}
	e.allowedTowers = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		e.allowedTowers[id] = struct{}{}
	}
}

// SwapLibrary replaces the content library. Mid-combat swaps are deferred to
// the end of the wave so a running spawn schedule never changes under itself.
func (e *Engine) SwapLibrary(lib *defs.Library) {
	if lib == nil {
		return
	}
	if e.phases.Current() == PhaseCombat {
		e.pendingLib = lib
		return
	}
	e.applyLibrary(lib)
}

func (e *Engine) applyLibrary(lib *defs.Library) {
	e.lib = lib
	e.waveCtl.SetLibrary(lib)
	logger.Log.Info("definition library swapped")
}

// Frame drives the simulation from a host video frame, reading elapsed time
// from the clock's provider. Returns the number of ticks executed.
func (e *Engine) Frame() int {
	return e.clock.Frame(e.phases.Current() == PhasePaused, e.Update)
}

// Advance is Frame with an explicit delta, used by deterministic drivers.
func (e *Engine) Advance(frameDelta float64) int {
	return e.clock.Advance(frameDelta, e.phases.Current() == PhasePaused, e.Update)
}

// Update runs one simulation tick. dt is the fixed timestep in seconds,
// scaled here by the speed multiplier.
func (e *Engine) Update(dt float64) {
	dt *= e.speedMultiplier
	e.gameTime += dt

	if e.phases.Current() != PhaseCombat {
		return
	}

	e.waveCtl.Update(dt)
	e.updateEnemies(dt)
	e.updateProjectiles(dt)
	e.updateStorms(dt)
	e.checkWaveEnd()
}

// spawnEnemy is the WaveController's callback. Returns false when the enemy
// definition is unknown or no path exists.
func (e *Engine) spawnEnemy(enemyID string, healthScale float64) bool {
	def, ok := e.lib.Enemies[enemyID]
	if !ok {
		logger.Log.WithField("enemy", enemyID).Error("unknown enemy definition")
		return false
	}
	if len(e.path) == 0 {
		return false
	}

	x, y := e.center(e.path[0])
	health := int(float64(def.Health) * healthScale)
	if health < 1 {
		health = 1
	}

	// Pooled instance, every field rewritten.
	en := e.enemyPool.Acquire()
	en.DefID = def.ID
	en.Health = health
	en.MaxHealth = health
	en.Speed = def.Speed
	en.Armor = def.Armor
	en.Reward = def.Reward
	en.PathIndex = 1
	en.X, en.Y = x, y
	en.SlowFactor = 1.0
	en.SlowEndTime = 0

	h := e.enemies.Insert(en)
	e.spatialIdx.Insert(h, x, y)
	e.alongPathDirty = true
	e.mutated()
	return true
}

// checkWaveEnd detects the spawning-complete-and-field-clear conjunction,
// pays out, and returns to PLANNING.
func (e *Engine) checkWaveEnd() {
	if !e.waveCtl.SpawningComplete() || e.enemies.Len() > 0 {
		return
	}
	if !e.phases.EndWave() {
		return
	}

	number := e.waveCtl.Number()
	reward := e.waveCtl.Reward()
	research := e.waveCtl.ResearchPoints()
	e.credits += reward
	e.researchPoints += research
	e.wave++
	e.waveCtl.CompleteWave()

	if e.pendingLib != nil {
		e.applyLibrary(e.pendingLib)
		e.pendingLib = nil
	}

	e.mutated()
	e.dispatcher.Dispatch(event.WaveEnded{Number: number, Reward: reward, ResearchPoints: research})
	logger.Log.WithField("wave", number).Info("wave cleared")
}

// recomputePath rebuilds the spawn-to-exit route from scratch. Topology
// changes never patch the path incrementally.
func (e *Engine) recomputePath() {
	e.path = grid.FindPath(e.world, e.spawn, e.exit, nil)
	e.alongPathDirty = true
}

// releaseEnemy removes an enemy from every table it lives in and returns the
// instance to the pool.
func (e *Engine) releaseEnemy(h slotmap.Handle) {
	en, ok := e.enemies.Remove(h)
	if !ok {
		return
	}
	e.spatialIdx.Remove(h)
	e.enemyPool.Release(en)
	e.alongPathDirty = true
	e.mutated()
}

// mutated bumps the version counter so the next Snapshot call rebuilds.
func (e *Engine) mutated() {
	e.version++
}
