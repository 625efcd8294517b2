// internal/event/types.go
package event

import (
	"github.com/LupusDei/space-towers-sub001/pkg/grid"
	"github.com/LupusDei/space-towers-sub001/pkg/slotmap"
)

// EnemyKilled fires when combat reduces an enemy to zero health. X/Y carry
// the death position for the rendering collaborator.
type EnemyKilled struct {
	ID     slotmap.Handle
	DefID  string
	X, Y   float64
	Reward int
}

// EnemyEscaped fires when an enemy reaches the exit.
type EnemyEscaped struct {
	ID    slotmap.Handle
	DefID string
}

// WaveStarted fires when a wave's spawn schedule begins.
type WaveStarted struct {
	Number int
}

// WaveEnded fires once spawning is complete and the last enemy is gone.
type WaveEnded struct {
	Number         int
	Reward         int
	ResearchPoints int
}

// TowerPlaced fires on successful placement.
type TowerPlaced struct {
	ID    slotmap.Handle
	DefID string
	Cell  grid.Coord
}

// TowerSold fires when a tower is sold.
type TowerSold struct {
	ID     slotmap.Handle
	Cell   grid.Coord
	Refund int
}

// TowerUpgraded fires when an upgrade is paid for.
type TowerUpgraded struct {
	ID    slotmap.Handle
	Level int
	Cost  int
}

// GameOver fires on the transition into VICTORY or DEFEAT.
type GameOver struct {
	Victory bool
	Wave    int
	Score   int
}

func (EnemyKilled) isEvent()   {}
func (EnemyEscaped) isEvent()  {}
func (WaveStarted) isEvent()   {}
func (WaveEnded) isEvent()     {}
func (TowerPlaced) isEvent()   {}
func (TowerSold) isEvent()     {}
func (TowerUpgraded) isEvent() {}
func (GameOver) isEvent()      {}
