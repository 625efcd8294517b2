// internal/engine/phase.go
package engine

// Phase is the coarse game state gating which operations are legal.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlanning
	PhaseCombat
	PhasePaused
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePlanning:
		return "PLANNING"
	case PhaseCombat:
		return "COMBAT"
	case PhasePaused:
		return "PAUSED"
	case PhaseVictory:
		return "VICTORY"
	case PhaseDefeat:
		return "DEFEAT"
	}
	return "UNKNOWN"
}

// PhaseMachine owns phase transitions. Every transition method returns false
// and changes nothing when called outside its precondition. The machine
// stores the phase that was active when Pause was entered, so Resume
// restores the actual prior phase instead of inferring it from world state.
type PhaseMachine struct {
	current Phase
	prior   Phase // phase active when the current pause began
}

// NewPhaseMachine starts in MENU.
func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{current: PhaseMenu}
}

// Current returns the active phase.
func (m *PhaseMachine) Current() Phase {
	return m.current
}

// StartGame moves to PLANNING from MENU, DEFEAT or VICTORY.
func (m *PhaseMachine) StartGame() bool {
	switch m.current {
	case PhaseMenu, PhaseDefeat, PhaseVictory:
		m.current = PhasePlanning
		return true
	}
	return false
}

// StartWave moves PLANNING to COMBAT.
func (m *PhaseMachine) StartWave() bool {
	if m.current != PhasePlanning {
		return false
	}
	m.current = PhaseCombat
	return true
}

// EndWave moves COMBAT back to PLANNING.
func (m *PhaseMachine) EndWave() bool {
	if m.current != PhaseCombat {
		return false
	}
	m.current = PhasePlanning
	return true
}

// Pause suspends PLANNING or COMBAT, remembering which.
func (m *PhaseMachine) Pause() bool {
	switch m.current {
	case PhasePlanning, PhaseCombat:
		m.prior = m.current
		m.current = PhasePaused
		return true
	}
	return false
}

// Resume restores the stored pre-pause phase.
func (m *PhaseMachine) Resume() bool {
	if m.current != PhasePaused {
		return false
	}
	m.current = m.prior
	return true
}

// Defeat forces DEFEAT from any phase.
func (m *PhaseMachine) Defeat() bool {
	if m.current == PhaseDefeat {
		return false
	}
	m.current = PhaseDefeat
	return true
}

// Victory forces VICTORY from any phase.
func (m *PhaseMachine) Victory() bool {
	if m.current == PhaseVictory {
		return false
	}
	m.current = PhaseVictory
	return true
}
