package engine

import (
	"testing"

	"github.com/LupusDei/space-towers-sub001/internal/config"
	"github.com/LupusDei/space-towers-sub001/internal/defs"
	"github.com/LupusDei/space-towers-sub001/internal/event"
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// recorder captures every dispatched event for assertions.
type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
}

func newTestEngine(t *testing.T) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	d := event.NewDispatcher()
	d.Subscribe(rec)
	e := NewEngine(config.Default(), defs.DefaultLibrary(), d, nil, 7)
	if !e.StartGame() {
		t.Fatal("StartGame from MENU failed")
	}
	return e, rec
}

// offPath is an empty cell that never sits on the default spawn-exit row.
var offPath = grid.Coord{X: 5, Y: 3}

func TestPlaceTowerDeductsCostAndMarksCell(t *testing.T) {
	e, rec := newTestEngine(t)
	before := e.GameState().Credits

	h := e.PlaceTower("TOWER_GUN", offPath)
	if h == slotmap.Nil {
		t.Fatal("placement failed")
	}
	if got := e.GameState().Credits; got != before-50 {
		t.Fatalf("credits = %d, want %d", got, before-50)
	}
	if e.CellAt(offPath) != grid.Tower {
		t.Fatalf("cell state = %v, want TOWER", e.CellAt(offPath))
	}
	if th, ok := e.TowerAt(offPath); !ok || th != h {
		t.Fatal("TowerAt did not find the placed tower")
	}

	var placed bool
	for _, ev := range rec.events {
		if p, ok := ev.(event.TowerPlaced); ok && p.ID == h {
			placed = true
		}
	}
	if !placed {
		t.Fatal("no TowerPlaced event dispatched")
	}
}

func TestPlaceTowerRejections(t *testing.T) {
	e, _ := newTestEngine(t)

	if e.PlaceTower("TOWER_NOPE", offPath) != slotmap.Nil {
		t.Fatal("unknown definition accepted")
	}
	if e.PlaceTower("TOWER_GUN", grid.Coord{X: -1, Y: 0}) != slotmap.Nil {
		t.Fatal("out-of-bounds cell accepted")
	}
	if e.PlaceTower("TOWER_GUN", grid.Coord{X: 0, Y: 7}) != slotmap.Nil {
		t.Fatal("placement on spawn accepted")
	}

	// Occupied cell.
	if e.PlaceTower("TOWER_GUN", offPath) == slotmap.Nil {
		t.Fatal("initial placement failed")
	}
	if e.PlaceTower("TOWER_GUN", offPath) != slotmap.Nil {
		t.Fatal("occupied cell accepted")
	}

	// Insufficient credits.
	e.AddCredits(-e.GameState().Credits)
	if e.PlaceTower("TOWER_GUN", grid.Coord{X: 6, Y: 3}) != slotmap.Nil {
		t.Fatal("placement accepted with zero credits")
	}
}

func TestPlaceTowerRespectsAllowedSet(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetAllowedTowers([]string{"TOWER_CANNON"})

	if e.PlaceTower("TOWER_GUN", offPath) != slotmap.Nil {
		t.Fatal("disallowed definition accepted")
	}
	if e.PlaceTower("TOWER_CANNON", offPath) == slotmap.Nil {
		t.Fatal("allowed definition rejected")
	}

	// Empty set lifts the restriction.
	e.SetAllowedTowers(nil)
	if e.PlaceTower("TOWER_GUN", grid.Coord{X: 6, Y: 3}) == slotmap.Nil {
		t.Fatal("placement rejected after restriction lifted")
	}
}

func TestPlaceTowerNeverSeversPath(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Width = 4
	cfg.Grid.Height = 1
	cfg.Grid.SpawnY, cfg.Grid.ExitY = 0, 0
	cfg.Grid.SpawnX, cfg.Grid.ExitX = 0, 3
	e := NewEngine(cfg, defs.DefaultLibrary(), nil, nil, 1)
	e.StartGame()

	// The single corridor: any tower on it severs spawn from exit.
	if e.PlaceTower("TOWER_GUN", grid.Coord{X: 1, Y: 0}) != slotmap.Nil {
		t.Fatal("path-severing placement accepted")
	}
	if len(e.Path()) != 4 {
		t.Fatalf("path length = %d, want 4", len(e.Path()))
	}
}

func TestSellRefundFractions(t *testing.T) {
	e, _ := newTestEngine(t)

	sameRound := e.PlaceTower("TOWER_CANNON", offPath) // cost 90
	if got := e.SellTower(sameRound); got != 90 {
		t.Fatalf("same-round refund = %d, want 90", got)
	}

	// A tower placed before a wave runs refunds at the reduced fraction.
	older := e.PlaceTower("TOWER_CANNON", offPath)
	runWaveToCompletion(t, e)
	if got := e.SellTower(older); got != 63 { // floor(90 * 0.7)
		t.Fatalf("later refund = %d, want 63", got)
	}

	if got := e.SellTower(older); got != 0 {
		t.Fatalf("double sell refunded %d, want 0", got)
	}
}

func TestSellRefundIncludesUpgradeInvestment(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddCredits(1000)

	h := e.PlaceTower("TOWER_GUN", offPath) // cost 50
	if e.UpgradeTower(h) != 40 {
		t.Fatal("first upgrade failed")
	}
	if got := e.SellTower(h); got != 90 { // full refund of 50+40
		t.Fatalf("refund = %d, want 90", got)
	}
}

func TestUpgradeTower(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddCredits(1000)

	h := e.PlaceTower("TOWER_GUN", offPath)
	if cost := e.UpgradeTower(h); cost != 40 {
		t.Fatalf("upgrade cost = %d, want 40", cost)
	}
	tw, _ := e.Tower(h)
	if tw.Level != 2 || tw.Damage != 16 {
		t.Fatalf("after upgrade: level %d damage %d, want 2/16", tw.Level, tw.Damage)
	}

	if cost := e.UpgradeTower(h); cost != 80 {
		t.Fatalf("second upgrade cost = %d, want 80", cost)
	}
	if cost := e.UpgradeTower(h); cost != 0 {
		t.Fatalf("upgrade past max level spent %d, want 0", cost)
	}
}

func TestEffectiveDamageFloorsAtOne(t *testing.T) {
	e, _ := newTestEngine(t)
	h := spawnTestEnemy(t, e, "ENEMY_SHELL") // armor 8

	e.applyDamage(h, 3, false, slotmap.Nil)
	en, _ := e.Enemy(h)
	if got := en.MaxHealth - en.Health; got != 1 {
		t.Fatalf("effective damage = %d, want 1", got)
	}

	e.applyDamage(h, 3, true, slotmap.Nil) // piercing ignores armor
	en, _ = e.Enemy(h)
	if got := en.MaxHealth - en.Health; got != 4 {
		t.Fatalf("cumulative damage = %d, want 4", got)
	}
}

func TestKillPaysRewardAndAttributes(t *testing.T) {
	e, rec := newTestEngine(t)
	tower := e.PlaceTower("TOWER_GUN", offPath)
	h := spawnTestEnemy(t, e, "ENEMY_GRUNT") // health 40, reward 8

	credits := e.GameState().Credits
	e.applyDamage(h, 1000, true, tower)

	if _, ok := e.Enemy(h); ok {
		t.Fatal("killed enemy still live")
	}
	st := e.GameState()
	if st.Credits != credits+8 || st.Score != 8 {
		t.Fatalf("credits/score = %d/%d, want %d/8", st.Credits, st.Score, credits+8)
	}
	tw, _ := e.Tower(tower)
	if tw.Kills != 1 {
		t.Fatalf("tower kills = %d, want 1", tw.Kills)
	}

	var killed bool
	for _, ev := range rec.events {
		if k, ok := ev.(event.EnemyKilled); ok && k.ID == h && k.Reward == 8 {
			killed = true
		}
	}
	if !killed {
		t.Fatal("no EnemyKilled event dispatched")
	}
}

func TestSlowLongerExpiryWins(t *testing.T) {
	e, _ := newTestEngine(t)
	h := spawnTestEnemy(t, e, "ENEMY_GRUNT")

	if !e.ApplySlow(h, 0.5, 2000) {
		t.Fatal("initial slow rejected")
	}
	if e.ApplySlow(h, 0.2, 500) {
		t.Fatal("shorter slow replaced a longer one")
	}
	if !e.ApplySlow(h, 0.8, 5000) {
		t.Fatal("longer slow rejected")
	}
	en, _ := e.Enemy(h)
	if en.SlowFactor != 0.8 {
		t.Fatalf("slow factor = %v, want 0.8", en.SlowFactor)
	}
}

func TestEscapeCostsLifeAndDefeatAtZero(t *testing.T) {
	cfg := config.Default()
	cfg.Economy.StartingLives = 1
	e := NewEngine(cfg, defs.DefaultLibrary(), nil, nil, 1)
	e.StartGame()

	h := spawnTestEnemy(t, e, "ENEMY_GRUNT")
	en := e.enemyPtr(h)
	en.PathIndex = len(e.Path()) // already past the last waypoint
	e.updateEnemies(1.0 / 60.0)

	if _, ok := e.Enemy(h); ok {
		t.Fatal("escaped enemy still live")
	}
	if e.Phase() != PhaseDefeat {
		t.Fatalf("phase = %v, want DEFEAT after last life", e.Phase())
	}
	if e.clock.Running() {
		t.Fatal("clock still running after defeat")
	}
}

func TestWaveCompletionPaysOutAndReturnsToPlanning(t *testing.T) {
	e, rec := newTestEngine(t)
	credits := e.GameState().Credits

	runWaveToCompletion(t, e)

	st := e.GameState()
	if st.Phase != PhasePlanning {
		t.Fatalf("phase = %v, want PLANNING", st.Phase)
	}
	if st.Wave != 2 {
		t.Fatalf("wave = %d, want 2", st.Wave)
	}
	// Wave 1: 6 grunts at 8 credits each, plus the 25-credit wave bonus.
	want := credits + 6*8 + 25
	if st.Credits != want {
		t.Fatalf("credits = %d, want %d", st.Credits, want)
	}
	if st.ResearchPoints != 1 {
		t.Fatalf("research points = %d, want 1", st.ResearchPoints)
	}

	var ended bool
	for _, ev := range rec.events {
		if w, ok := ev.(event.WaveEnded); ok && w.Number == 1 {
			ended = true
		}
	}
	if !ended {
		t.Fatal("no WaveEnded event dispatched")
	}
}

func TestResearchPointsSurviveRestart(t *testing.T) {
	e, _ := newTestEngine(t)
	runWaveToCompletion(t, e)
	if e.GameState().ResearchPoints != 1 {
		t.Fatal("no research points after wave 1")
	}

	e.Defeat()
	e.StartGame()
	st := e.GameState()
	if st.ResearchPoints != 1 {
		t.Fatalf("research points after restart = %d, want 1", st.ResearchPoints)
	}
	if st.Wave != 1 || st.Score != 0 {
		t.Fatal("restart did not reset wave and score")
	}
}

func TestPauseGatesSimulationAndResumeRestoresPhase(t *testing.T) {
	e, _ := newTestEngine(t)
	if !e.StartWave() {
		t.Fatal("StartWave failed")
	}
	if !e.Pause() {
		t.Fatal("Pause failed")
	}

	before := e.GameState().Time
	if ticks := e.Advance(1.0); ticks != 0 {
		t.Fatalf("paused advance executed %d ticks, want 0", ticks)
	}
	if e.GameState().Time != before {
		t.Fatal("simulation time advanced while paused")
	}

	if !e.Resume() {
		t.Fatal("Resume failed")
	}
	if e.Phase() != PhaseCombat {
		t.Fatalf("phase after resume = %v, want COMBAT", e.Phase())
	}
}

func TestSpeedMultiplierScalesSimTime(t *testing.T) {
	e, _ := newTestEngine(t)
	e.SetSpeedMultiplier(4)
	e.Update(0.25)
	if got := e.GameState().Time; got != 1.0 {
		t.Fatalf("sim time = %v, want 1.0", got)
	}

	e.SetSpeedMultiplier(-1) // rejected
	if e.SpeedMultiplier() != 4 {
		t.Fatal("invalid multiplier accepted")
	}
}

func TestStartWaveClearsRefundEligibility(t *testing.T) {
	e, _ := newTestEngine(t)
	h := e.PlaceTower("TOWER_GUN", offPath)

	runWaveToCompletion(t, e)

	if got := e.SellTower(h); got != 35 { // floor(50 * 0.7)
		t.Fatalf("refund after wave = %d, want 35", got)
	}
}

func TestMidCombatLibrarySwapDefersToWaveEnd(t *testing.T) {
	e, _ := newTestEngine(t)
	if !e.StartWave() {
		t.Fatal("StartWave failed")
	}

	replacement := defs.DefaultLibrary()
	replacement.Towers["TOWER_RAIL"] = defs.TowerDefinition{
		ID: "TOWER_RAIL", Cost: 10, Damage: 99, Range: 200, FireRate: 1,
	}
	e.SwapLibrary(replacement)
	if _, ok := e.lib.Towers["TOWER_RAIL"]; ok {
		t.Fatal("library swapped mid-combat")
	}

	drainWave(t, e)
	if _, ok := e.lib.Towers["TOWER_RAIL"]; !ok {
		t.Fatal("pending library not applied at wave end")
	}
}

// spawnTestEnemy injects one enemy through the wave controller's callback.
func spawnTestEnemy(t *testing.T, e *Engine, defID string) slotmap.Handle {
	t.Helper()
	if !e.spawnEnemy(defID, 1.0) {
		t.Fatalf("spawnEnemy(%q) failed", defID)
	}
	hs := e.Enemies()
	return hs[len(hs)-1]
}

// runWaveToCompletion starts the pending wave and ticks until it clears,
// killing everything on the field each tick.
func runWaveToCompletion(t *testing.T, e *Engine) {
	t.Helper()
	if !e.StartWave() {
		t.Fatal("StartWave failed")
	}
	drainWave(t, e)
}

func drainWave(t *testing.T, e *Engine) {
	t.Helper()
	const dt = 1.0 / 60.0
	for i := 0; i < 100000; i++ {
		for _, h := range e.Enemies() {
			e.applyDamage(h, 100000, true, slotmap.Nil)
		}
		if e.Phase() == PhasePlanning {
			return
		}
		e.Update(dt)
	}
	t.Fatal("wave never completed")
}
