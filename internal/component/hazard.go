// internal/component/hazard.go
package component

import "github.com/LupusDei/space-towers-sub001/pkg/slotmap"

// Storm is an area hazard that damages every enemy inside its radius each
// simulation step until its duration elapses.
type Storm struct {
	SourceID  slotmap.Handle // tower credited with the damage
	X, Y      float64
	Radius    float64
	StartTime float64 // game time when the storm began
	Duration  float64 // seconds
	DPS       float64
}

// Expired reports whether the storm has run its course at the given time.
func (s *Storm) Expired(now float64) bool {
	return now-s.StartTime >= s.Duration
}
