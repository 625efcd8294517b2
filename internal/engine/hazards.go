// internal/engine/hazards.go
package engine

import (
	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// updateStorms ticks every area hazard: each simulation step, every enemy
// inside the radius takes the storm's per-tick damage, attributed to the
// storm's source tower. Expired storms are removed.
func (e *Engine) updateStorms(dt float64) {
	var expired []slotmap.Handle

	e.storms.Range(func(h slotmap.Handle, s *component.Storm) bool {
		if s.Expired(e.gameTime) {
			expired = append(expired, h)
			return true
		}
		for _, eh := range e.spatialIdx.Query(s.X, s.Y, s.Radius) {
			e.applyStormDamage(eh, s.DPS*dt, s.SourceID)
		}
		return true
	})

	for _, h := range expired {
		e.storms.Remove(h)
	}
	if len(expired) > 0 {
		e.mutated()
	}
}

// applyStormDamage converts a fractional per-tick amount into effective
// damage after armor, floored at 1 so armored enemies still burn down.
func (e *Engine) applyStormDamage(h slotmap.Handle, amount float64, source slotmap.Handle) {
	en := e.enemyPtr(h)
	if en == nil {
		return
	}
	eff := int(amount) - en.Armor
	if eff < 1 {
		eff = 1
	}
	e.dealDamage(h, en, eff, source)
}
