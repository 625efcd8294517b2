// internal/engine/movement.go
package engine

import (
	"math"

	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/internal/event"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// updateEnemies advances every enemy along the live path. Movement always
// reads the engine's current path, not a path captured at spawn time; path
// topology can only change in PLANNING, so a wave in flight never sees the
// route shift under it.
func (e *Engine) updateEnemies(dt float64) {
	arrival := e.cfg.Grid.CellSize / 2

	var escaped []slotmap.Handle
	e.enemies.Range(func(h slotmap.Handle, enp **component.Enemy) bool {
		en := *enp
		if en.PathIndex >= len(e.path) {
			escaped = append(escaped, h)
			return true
		}

		tx, ty := e.center(e.path[en.PathIndex])
		dx := tx - en.X
		dy := ty - en.Y
		dist := math.Hypot(dx, dy)
		step := en.EffectiveSpeed(e.gameTime) * dt

		if dist <= step || dist < arrival {
			// Snap to the waypoint so error never accumulates.
			en.X, en.Y = tx, ty
			en.PathIndex++
			e.alongPathDirty = true
			if en.PathIndex >= len(e.path) {
				escaped = append(escaped, h)
				return true
			}
		} else {
			en.X += dx / dist * step
			en.Y += dy / dist * step
		}
		e.spatialIdx.Update(h, en.X, en.Y)
		return true
	})

	for _, h := range escaped {
		e.escapeEnemy(h)
	}
	if len(escaped) > 0 {
		e.mutated()
	}
}

// escapeEnemy handles an enemy reaching the exit: one life gone, no reward.
func (e *Engine) escapeEnemy(h slotmap.Handle) {
	en, ok := e.enemies.Get(h)
	if !ok {
		return
	}
	defID := en.DefID
	e.releaseEnemy(h)

	e.lives--
	e.dispatcher.Dispatch(event.EnemyEscaped{ID: h, DefID: defID})
	if e.lives <= 0 {
		e.Defeat()
	}
}
