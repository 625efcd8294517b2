// internal/engine/query.go
package engine

import (
	"math"
	"sort"

	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// Query is the read-only surface handed to the targeting collaborator.
// Entity pointers returned here stay owned by the engine; callers read, the
// Commands surface mutates.
type Query interface {
	Towers() []slotmap.Handle
	Enemies() []slotmap.Handle
	Projectiles() []slotmap.Handle
	Tower(h slotmap.Handle) (component.Tower, bool)
	Enemy(h slotmap.Handle) (component.Enemy, bool)
	EnemiesInRange(x, y, radius float64) []slotmap.Handle
	EnemiesAlongPath() []slotmap.Handle
	Path() []grid.Coord
	CellAt(c grid.Coord) grid.CellState
	TowerAt(c grid.Coord) (slotmap.Handle, bool)
	GameState() GameState
}

var _ Query = (*Engine)(nil)

// Towers returns the handles of all live towers.
func (e *Engine) Towers() []slotmap.Handle {
	return e.towers.Handles()
}

// Enemies returns the handles of all live enemies.
func (e *Engine) Enemies() []slotmap.Handle {
	return e.enemies.Handles()
}

// Projectiles returns the handles of all shots in flight.
func (e *Engine) Projectiles() []slotmap.Handle {
	return e.projectiles.Handles()
}

// Tower looks up a tower by handle.
func (e *Engine) Tower(h slotmap.Handle) (component.Tower, bool) {
	return e.towers.Get(h)
}

// Enemy looks up an enemy by handle, returned by value.
func (e *Engine) Enemy(h slotmap.Handle) (component.Enemy, bool) {
	en, ok := e.enemies.Get(h)
	if !ok {
		return component.Enemy{}, false
	}
	return *en, true
}

// EnemiesInRange returns every enemy within radius pixels of (x, y).
func (e *Engine) EnemiesInRange(x, y, radius float64) []slotmap.Handle {
	return e.spatialIdx.Query(x, y, radius)
}

// EnemiesAlongPath returns all enemies ordered by descending path progress,
// the ones closest to escaping first. The ordering is cached and rebuilt
// only after an enemy spawns, dies, or advances a waypoint.
func (e *Engine) EnemiesAlongPath() []slotmap.Handle {
	if !e.alongPathDirty {
		return e.alongPathCache
	}

	type ranked struct {
		h        slotmap.Handle
		progress float64
	}
	list := make([]ranked, 0, e.enemies.Len())
	e.enemies.Range(func(h slotmap.Handle, enp **component.Enemy) bool {
		list = append(list, ranked{h: h, progress: e.pathProgress(*enp)})
		return true
	})
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].progress > list[j].progress
	})

	e.alongPathCache = make([]slotmap.Handle, len(list))
	for i, r := range list {
		e.alongPathCache[i] = r.h
	}
	e.alongPathDirty = false
	return e.alongPathCache
}

// pathProgress scores how far along the route an enemy is: whole waypoints
// passed, plus the covered fraction of the segment in flight.
func (e *Engine) pathProgress(en *component.Enemy) float64 {
	progress := float64(en.PathIndex)
	if en.PathIndex < len(e.path) {
		tx, ty := e.center(e.path[en.PathIndex])
		dist := math.Hypot(tx-en.X, ty-en.Y)
		progress -= dist / e.cfg.Grid.CellSize
	}
	return progress
}

// Path returns the current spawn-to-exit route. The slice is owned by the
// engine; callers must not modify it.
func (e *Engine) Path() []grid.Coord {
	return e.path
}

// CellAt returns the grid state at c, Blocked out of bounds.
func (e *Engine) CellAt(c grid.Coord) grid.CellState {
	return e.world.Cell(c)
}

// TowerAt finds the tower occupying cell c.
func (e *Engine) TowerAt(c grid.Coord) (slotmap.Handle, bool) {
	var found slotmap.Handle
	ok := false
	e.towers.Range(func(h slotmap.Handle, tw *component.Tower) bool {
		if tw.Cell == c {
			found, ok = h, true
			return false
		}
		return true
	})
	return found, ok
}

// GameState returns the scalar game state.
func (e *Engine) GameState() GameState {
	return GameState{
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
	}
}
