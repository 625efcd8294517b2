// internal/component/enemy.go
package component

// Enemy is a pathing adversary. Instances come from a pool and keep stale
// field values between lives, so every field here is rewritten on spawn.
type Enemy struct {
	DefID     string // ID from enemies.json
	Health    int
	MaxHealth int
	Speed     float64 // base pixels per second
	Armor     int
	Reward    int

	// Движение по пути: index of the next waypoint in the engine's path.
	PathIndex int
	X, Y      float64 // pixel position

	// Slow debuff. Slows do not stack; the longer expiry wins.
	SlowFactor  float64 // speed multiplier while slowed (1.0 = none)
	SlowEndTime float64 // game time when the slow wears off
}

// EffectiveSpeed returns the current speed given the game time.
func (e *Enemy) EffectiveSpeed(now float64) float64 {
	if now < e.SlowEndTime && e.SlowFactor > 0 {
		return e.Speed * e.SlowFactor
	}
	return e.Speed
}
