// internal/component/tower.go
package component

import (
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// Tower is a placed defensive structure. Mutated in place by upgrades;
// removed on sell.
type Tower struct {
	DefID     string     // ID from towers.json
	Cell      grid.Coord // grid square the tower occupies
	Level     int        // 1-based, capped by the definition's schedule
	Damage    int
	Range     float64 // pixels
	FireRate  float64 // shots per second
	LastFired float64 // game time of the last shot, seconds
	TargetID  slotmap.Handle

	// Invested tracks total credits spent (purchase plus upgrades), the
	// base for the sell refund.
	Invested int

	// Attribution stats, updated by projectile hits and hazard ticks.
	Kills       int
	TotalDamage int
}
