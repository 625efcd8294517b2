// internal/engine/snapshot.go
package engine

import (
	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// TowerView is a value copy of one tower for external consumers.
type TowerView struct {
	ID          slotmap.Handle
	DefID       string
	Cell        grid.Coord
	Level       int
	Damage      int
	Range       float64
	FireRate    float64
	Kills       int
	TotalDamage int
	Invested    int
}

// EnemyView is a value copy of one enemy.
type EnemyView struct {
	ID        slotmap.Handle
	DefID     string
	Health    int
	MaxHealth int
	X, Y      float64
	PathIndex int
	Slowed    bool
}

// ProjectileView is a value copy of one shot in flight.
type ProjectileView struct {
	ID     slotmap.Handle
	X, Y   float64
	VX, VY float64
}

// StormView is a value copy of one area hazard.
type StormView struct {
	ID        slotmap.Handle
	X, Y      float64
	Radius    float64
	Remaining float64 // seconds until expiry
}

// GameState is the scalar half of a snapshot.
type GameState struct {
	RunID           string
	Phase           Phase
	Wave            int
	Lives           int
	Credits         int
	Score           int
	ResearchPoints  int
	Time            float64
	SpeedMultiplier float64
	SelectedTower   slotmap.Handle
}

// Snapshot is a read-only view of the whole simulation. Every slice holds
// value copies, so consumers can keep a snapshot across ticks without ever
// observing a half-applied mutation.
type Snapshot struct {
	Version     uint64
	State       GameState
	Towers      []TowerView
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Storms      []StormView
	Path        []grid.Coord
}

// Snapshot returns the current view, memoized against the version counter:
// with no intervening mutation, repeated calls return the identical object.
func (e *Engine) Snapshot() *Snapshot {
	if e.cachedSnapshot != nil && e.cachedVersion == e.version {
		return e.cachedSnapshot
	}

	snap := &Snapshot{
		Version: e.version,
		State: GameState{
			RunID:           e.runID,
			Phase:           e.phases.Current(),
			Wave:            e.wave,
			Lives:           e.lives,
			Credits:         e.credits,
			Score:           e.score,
			ResearchPoints:  e.researchPoints,
			Time:            e.gameTime,
			SpeedMultiplier: e.speedMultiplier,
			SelectedTower:   e.selected,
		},
		Towers:      make([]TowerView, 0, e.towers.Len()),
		Enemies:     make([]EnemyView, 0, e.enemies.Len()),
		Projectiles: make([]ProjectileView, 0, e.projectiles.Len()),
		Storms:      make([]StormView, 0, e.storms.Len()),
		Path:        append([]grid.Coord(nil), e.path...),
	}

	e.towers.Range(func(h slotmap.Handle, tw *component.Tower) bool {
		snap.Towers = append(snap.Towers, TowerView{
			ID:          h,
			DefID:       tw.DefID,
			Cell:        tw.Cell,
			Level:       tw.Level,
			Damage:      tw.Damage,
			Range:       tw.Range,
			FireRate:    tw.FireRate,
			Kills:       tw.Kills,
			TotalDamage: tw.TotalDamage,
			Invested:    tw.Invested,
		})
		return true
	})
	e.enemies.Range(func(h slotmap.Handle, enp **component.Enemy) bool {
		en := *enp
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:        h,
			DefID:     en.DefID,
			Health:    en.Health,
			MaxHealth: en.MaxHealth,
			X:         en.X,
			Y:         en.Y,
			PathIndex: en.PathIndex,
			Slowed:    en.EffectiveSpeed(e.gameTime) < en.Speed,
		})
		return true
	})
	e.projectiles.Range(func(h slotmap.Handle, pp **component.Projectile) bool {
		p := *pp
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID: h, X: p.X, Y: p.Y, VX: p.VX, VY: p.VY,
		})
		return true
	})
	e.storms.Range(func(h slotmap.Handle, s *component.Storm) bool {
		remaining := s.Duration - (e.gameTime - s.StartTime)
		if remaining < 0 {
			remaining = 0
		}
		snap.Storms = append(snap.Storms, StormView{
			ID: h, X: s.X, Y: s.Y, Radius: s.Radius, Remaining: remaining,
		})
		return true
	})

	e.cachedSnapshot = snap
	e.cachedVersion = e.version
	return snap
}
