// internal/engine/projectiles.go
package engine

import (
	"math"

	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// hitDistance is the arrival threshold in pixels for a projectile that has
// not closed the gap within a single step.
const hitDistance = 10.0

// updateProjectiles homes every shot toward its target's current position.
// A projectile whose target died mid-flight is discarded.
func (e *Engine) updateProjectiles(dt float64) {
	var remove []slotmap.Handle

	e.projectiles.Range(func(h slotmap.Handle, pp **component.Projectile) bool {
		p := *pp
		target := e.enemyPtr(p.TargetID)
		if target == nil {
			remove = append(remove, h)
			return true
		}

		dx := target.X - p.X
		dy := target.Y - p.Y
		dist := math.Hypot(dx, dy)
		step := p.Speed * dt

		if dist <= step || dist < hitDistance {
			e.resolveHit(p, target.X, target.Y)
			remove = append(remove, h)
			return true
		}

		p.VX = dx / dist * p.Speed
		p.VY = dy / dist * p.Speed
		p.X += p.VX * dt
		p.Y += p.VY * dt
		return true
	})

	for _, h := range remove {
		e.releaseProjectile(h)
	}
	if len(remove) > 0 {
		e.mutated()
	}
}

// resolveHit applies the projectile's damage at impact: the tracked target
// alone, or every enemy inside the splash radius.
func (e *Engine) resolveHit(p *component.Projectile, ix, iy float64) {
	if p.AoERadius <= 0 {
		e.applyDamage(p.TargetID, p.Damage, p.Piercing, p.SourceID)
		return
	}
	for _, h := range e.spatialIdx.Query(ix, iy, p.AoERadius) {
		e.applyDamage(h, p.Damage, p.Piercing, p.SourceID)
	}
}

func (e *Engine) releaseProjectile(h slotmap.Handle) {
	p, ok := e.projectiles.Remove(h)
	if !ok {
		return
	}
	e.projPool.Release(p)
}

func (e *Engine) enemyPtr(h slotmap.Handle) *component.Enemy {
	en, ok := e.enemies.Get(h)
	if !ok {
		return nil
	}
	return en
}
