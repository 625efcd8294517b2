// internal/engine/command.go
package engine

import (
	"github.com/LupusDei/space-towers-sub001/internal/component"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// Commands is the only sanctioned way for the targeting collaborator to
// mutate simulation state. Everything else goes through the engine's own
// public operations.
type Commands interface {
	AddProjectile(source, target slotmap.Handle, damage int, speed float64, piercing bool, aoeRadius float64) slotmap.Handle
	RemoveEnemy(h slotmap.Handle) bool
	AddCredits(amount int)
	Time() float64
	ApplySlow(h slotmap.Handle, multiplier float64, durationMs float64) bool
	AddStorm(x, y, radius, duration, dps float64, source slotmap.Handle) slotmap.Handle
}

var _ Commands = (*Engine)(nil)

// AddProjectile launches a shot from the source tower at the target enemy.
// The projectile spawns at the tower's cell center and homes from there.
// Returns slotmap.Nil when either endpoint is unknown.
func (e *Engine) AddProjectile(source, target slotmap.Handle, damage int, speed float64, piercing bool, aoeRadius float64) slotmap.Handle {
	tw := e.towers.Ptr(source)
	if tw == nil || !e.enemies.Has(target) {
		return slotmap.Nil
	}
	x, y := e.center(tw.Cell)

	// Pooled instance, every field rewritten.
	p := e.projPool.Acquire()
	p.SourceID = source
	p.TargetID = target
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	p.Damage = damage
	p.Speed = speed
	p.Piercing = piercing
	p.AoERadius = aoeRadius

	tw.LastFired = e.gameTime
	h := e.projectiles.Insert(p)
	e.mutated()
	return h
}

// RemoveEnemy despawns an enemy without reward or life loss, used for
// scripted removals. Returns false for a stale handle.
func (e *Engine) RemoveEnemy(h slotmap.Handle) bool {
	if !e.enemies.Has(h) {
		return false
	}
	e.releaseEnemy(h)
	return true
}

// AddCredits grants (or with a negative amount, takes) currency.
func (e *Engine) AddCredits(amount int) {
	e.credits += amount
	if e.credits < 0 {
		e.credits = 0
	}
	e.mutated()
}

// Time returns the simulation time in seconds.
func (e *Engine) Time() float64 {
	return e.gameTime
}

// ApplySlow debuffs an enemy's speed. Slows do not stack: the new slow is
// applied only when its expiry outlasts the current one, and a shorter
// refresh leaves the existing debuff untouched.
func (e *Engine) ApplySlow(h slotmap.Handle, multiplier float64, durationMs float64) bool {
	en := e.enemyPtr(h)
	if en == nil || multiplier <= 0 || multiplier >= 1 {
		return false
	}
	expiry := e.gameTime + durationMs/1000.0
	if expiry <= en.SlowEndTime {
		return false
	}
	en.SlowFactor = multiplier
	en.SlowEndTime = expiry
	e.mutated()
	return true
}

// AddStorm plants an area hazard that ticks damage until its duration
// elapses.
func (e *Engine) AddStorm(x, y, radius, duration, dps float64, source slotmap.Handle) slotmap.Handle {
	if radius <= 0 || duration <= 0 {
		return slotmap.Nil
	}
	h := e.storms.Insert(component.Storm{
		SourceID:  source,
		X:         x,
		Y:         y,
		Radius:    radius,
		StartTime: e.gameTime,
		Duration:  duration,
		DPS:       dps,
	})
	e.mutated()
	return h
}
