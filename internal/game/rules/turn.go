package rules

import (
	"fmt"
	"strings"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// Phase is the coarse game phase. The match stays in PhaseMain once started.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseMain
	PhaseEnded
)

var phaseNames = map[Phase]string{
	PhaseSetup: "SETUP",
	PhaseMain:  "MAIN",
	PhaseEnded: "ENDED",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// TurnManager tracks the turn owner, the round counter and the era.
type TurnManager struct {
	phase          Phase
	round          int // increments when the starting player's turn begins
	turnSeq        int // increments every turn
	era            int
	activePlayer   string
	startingPlayer string
}

// NewTurnManager creates a manager before the first turn has begun.
func NewTurnManager(startingPlayer string) *TurnManager {
	start := strings.TrimSpace(startingPlayer)
	return &TurnManager{
		phase:          PhaseSetup,
		era:            1,
		activePlayer:   start,
		startingPlayer: start,
	}
}

// Phase returns the current phase.
func (tm *TurnManager) Phase() Phase { return tm.phase }

// SetPhase moves to p.
func (tm *TurnManager) SetPhase(p Phase) { tm.phase = p }

// Round returns the global turn counter (one per pair of turns).
func (tm *TurnManager) Round() int { return tm.round }

// TurnSeq returns the 1-based count of turns begun so far.
func (tm *TurnManager) TurnSeq() int { return tm.turnSeq }

// Era returns the territory era.
func (tm *TurnManager) Era() int { return tm.era }

// ActivePlayer returns the turn owner.
func (tm *TurnManager) ActivePlayer() string { return tm.activePlayer }

// StartingPlayer returns the seat that took the first turn.
func (tm *TurnManager) StartingPlayer() string { return tm.startingPlayer }

// BeginTurn starts the active player's turn and reports whether a new round began.
func (tm *TurnManager) BeginTurn() bool {
	tm.turnSeq++
	if tm.activePlayer == tm.startingPlayer {
		tm.round++
		return true
	}
	return false
}

// PassTurn hands the turn to the opponent of the current owner.
func (tm *TurnManager) PassTurn() string {
	tm.activePlayer = zones.Opponent(tm.activePlayer)
	return tm.activePlayer
}

// AdvanceEra bumps the era counter.
func (tm *TurnManager) AdvanceEra() int {
	tm.era++
	return tm.era
}

// Clone copies the manager.
func (tm *TurnManager) Clone() *TurnManager {
	cp := *tm
	return &cp
}
