// internal/engine/towers.go
package engine

import (
	"math"

	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/internal/event"
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/logger"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// PlaceTower builds a tower of the given definition at cell. Fails silently
// with slotmap.Nil unless the phase is PLANNING, the definition exists and
// is allowed, the cell is a free square, placing there keeps spawn and exit
// connected, and credits cover the cost.
func (e *Engine) PlaceTower(defID string, cell grid.Coord) slotmap.Handle {
	if e.phases.Current() != PhasePlanning {
		return slotmap.Nil
	}
	def, ok := e.lib.Towers[defID]
	if !ok {
		return slotmap.Nil
	}
	if e.allowedTowers != nil {
		if _, allowed := e.allowedTowers[defID]; !allowed {
			return slotmap.Nil
		}
	}
	if !e.world.CanPlaceTower(cell) {
		return slotmap.Nil
	}
	if grid.WouldBlockPath(e.world, cell, &e.spawn, &e.exit) {
		return slotmap.Nil
	}
	if e.credits < def.Cost {
		return slotmap.Nil
	}

	e.credits -= def.Cost
	e.world.SetCell(cell, grid.Tower)
	h := e.towers.Insert(component.Tower{
		DefID:    def.ID,
		Cell:     cell,
		Level:    1,
		Damage:   def.Damage,
		Range:    def.Range,
		FireRate: def.FireRate,
		Invested: def.Cost,
	})
	e.placedThisRound[h] = struct{}{}
	e.recomputePath()
	e.mutated()
	e.dispatcher.Dispatch(event.TowerPlaced{ID: h, DefID: def.ID, Cell: cell})
	logger.Log.WithField("tower", def.ID).Debug("tower placed")
	return h
}

// SellTower removes a tower and credits the refund, returning the amount.
// Towers placed in the current planning round refund in full, older ones at
// the reduced fraction. Returns 0 for an unknown id or outside PLANNING.
func (e *Engine) SellTower(h slotmap.Handle) int {
	if e.phases.Current() != PhasePlanning {
		return 0
	}
	tw, ok := e.towers.Get(h)
	if !ok {
		return 0
	}

	fraction := e.cfg.Economy.RefundLater
	if _, sameRound := e.placedThisRound[h]; sameRound {
		fraction = e.cfg.Economy.RefundSameRound
	}
	refund := int(math.Floor(float64(tw.Invested) * fraction))

	e.towers.Remove(h)
	delete(e.placedThisRound, h)
	if e.selected == h {
		e.selected = slotmap.Nil
	}
	e.world.SetCell(tw.Cell, grid.Empty)
	e.credits += refund
	e.recomputePath()
	e.mutated()
	e.dispatcher.Dispatch(event.TowerSold{ID: h, Cell: tw.Cell, Refund: refund})
	return refund
}

// UpgradeTower advances a tower one level, returning the credits spent.
// Returns 0 outside PLANNING, for an unknown id, at max level, or when
// credits fall short of the level-indexed cost.
func (e *Engine) UpgradeTower(h slotmap.Handle) int {
	if e.phases.Current() != PhasePlanning {
		return 0
	}
	tw := e.towers.Ptr(h)
	if tw == nil {
		return 0
	}
	def, ok := e.lib.Towers[tw.DefID]
	if !ok {
		return 0
	}
	if tw.Level >= def.MaxLevel() {
		return 0
	}

	next := def.Levels[tw.Level-1] // upgrade from level N uses schedule entry N-1
	if e.credits < next.Cost {
		return 0
	}

	e.credits -= next.Cost
	tw.Level++
	tw.Damage = next.Damage
	tw.Range = next.Range
	tw.FireRate = next.FireRate
	tw.Invested += next.Cost
	e.mutated()
	e.dispatcher.Dispatch(event.TowerUpgraded{ID: h, Level: tw.Level, Cost: next.Cost})
	return next.Cost
}

// SelectTower marks a tower as the UI selection.
func (e *Engine) SelectTower(h slotmap.Handle) bool {
	if !e.towers.Has(h) {
		return false
	}
	e.selected = h
	e.mutated()
	return true
}

// SelectedTower returns the selected tower handle, slotmap.Nil when none.
func (e *Engine) SelectedTower() slotmap.Handle {
	return e.selected
}

// ClearSelection drops the UI selection.
func (e *Engine) ClearSelection() {
	if e.selected == slotmap.Nil {
		return
	}
	e.selected = slotmap.Nil
	e.mutated()
}
