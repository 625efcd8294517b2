// internal/engine/damage.go
package engine

import (
	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/internal/event"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// applyDamage hits an enemy with a flat amount. Armor subtracts unless the
// shot is piercing; effective damage never drops below 1, so time-to-kill is
// finite for any armor value.
func (e *Engine) applyDamage(h slotmap.Handle, damage int, piercing bool, source slotmap.Handle) {
	en := e.enemyPtr(h)
	if en == nil {
		return
	}
	eff := damage
	if !piercing {
		eff -= en.Armor
	}
	if eff < 1 {
		eff = 1
	}
	e.dealDamage(h, en, eff, source)
}

// dealDamage applies already-resolved effective damage, attributes it to the
// source tower, and handles the kill.
func (e *Engine) dealDamage(h slotmap.Handle, en *component.Enemy, eff int, source slotmap.Handle) {
	en.Health -= eff
	if tw := e.towers.Ptr(source); tw != nil {
		tw.TotalDamage += eff
	}
	e.mutated()

	if en.Health > 0 {
		return
	}
	e.killEnemy(h, en, source)
}

// killEnemy pays out the bounty, updates attribution and score, and releases
// the instance. The death position rides on the event for the renderer.
func (e *Engine) killEnemy(h slotmap.Handle, en *component.Enemy, source slotmap.Handle) {
	killed := event.EnemyKilled{
		ID:     h,
		DefID:  en.DefID,
		X:      en.X,
		Y:      en.Y,
		Reward: en.Reward,
	}
	e.credits += en.Reward
	e.score += en.Reward
	if tw := e.towers.Ptr(source); tw != nil {
		tw.Kills++
	}
	e.releaseEnemy(h)
	e.dispatcher.Dispatch(killed)
}
