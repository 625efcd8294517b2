// internal/component/projectile.go
package component

import "github.com/LupusDei/space-towers-sub001/pkg/slotmap"

// Projectile is a shot in flight, homing toward its target's current
// position. Pooled; fully reinitialized on creation.
type Projectile struct {
	SourceID  slotmap.Handle // tower that fired, for kill/damage attribution
	TargetID  slotmap.Handle
	X, Y      float64
	VX, VY    float64 // last computed velocity, kept for renderers
	Damage    int
	Speed     float64 // pixels per second
	Piercing  bool    // ignores armor when true
	AoERadius float64 // splash radius in pixels, 0 = single target
}
