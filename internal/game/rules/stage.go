package rules

import (
	"fmt"
	"sort"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Stage is a per-player exclusive action window layered under the main phase.
type Stage int

const (
	// StageNone means ordinary turn-default play. It is never stored in a table.
	StageNone Stage = iota
	StageDeployment
	StageResponse
	StageBlocking
	StageWaiting
)

var stageNames = map[Stage]string{
	StageNone:       "NONE",
	StageDeployment: "DEPLOYMENT",
	StageResponse:   "RESPONSE",
	StageBlocking:   "BLOCKING",
	StageWaiting:    "WAITING",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STAGE_%d", int(s))
}

// StageTable maps players granted a window to their current stage.
// An empty table is turn-default play.
type StageTable struct {
	stages map[string]Stage
}

// NewStageTable creates an empty table.
func NewStageTable() *StageTable {
	return &StageTable{stages: make(map[string]Stage, 2)}
}

// Open grants holder the given window and parks waiter, replacing any prior assignment.
func (t *StageTable) Open(holder string, stage Stage, waiter string) {
	t.Clear()
	t.stages[holder] = stage
	if waiter != "" && waiter != holder {
		t.stages[waiter] = StageWaiting
	}
}

// OpenSolo grants holder the window without parking anyone.
func (t *StageTable) OpenSolo(holder string, stage Stage) {
	t.Open(holder, stage, "")
}

// Clear returns to turn-default play.
func (t *StageTable) Clear() {
	for id := range t.stages {
		delete(t.stages, id)
	}
}

// Of returns the player's stage, StageNone when unassigned.
func (t *StageTable) Of(playerID string) Stage {
	return t.stages[playerID]
}

// IsDefault reports whether no window is open.
func (t *StageTable) IsDefault() bool {
	return len(t.stages) == 0
}

// Holder returns the single player holding a non-waiting window.
func (t *StageTable) Holder() (string, Stage, bool) {
	for id, s := range t.stages {
		if s != StageWaiting {
			return id, s, true
		}
	}
	return "", StageNone, false
}

// Snapshot returns a copy of the assignments.
func (t *StageTable) Snapshot() map[string]Stage {
	out := make(map[string]Stage, len(t.stages))
	for id, s := range t.stages {
		out[id] = s
	}
	return out
}

// Players returns the assigned players, sorted.
func (t *StageTable) Players() []string {
	ids := make([]string, 0, len(t.stages))
	for id := range t.stages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate enforces exactly one active authority when any window is open.
func (t *StageTable) Validate() error {
	if len(t.stages) == 0 {
		return nil
	}
	holders := 0
	for id, s := range t.stages {
		switch s {
		case StageNone:
			return gameerr.Invariant("player %s stored with stage NONE", id)
		case StageWaiting:
		default:
			holders++
		}
	}
	if holders != 1 {
		return gameerr.Invariant("expected exactly one stage holder, found %d", holders)
	}
	return nil
}

// Clone copies the table.
func (t *StageTable) Clone() *StageTable {
	return &StageTable{stages: t.Snapshot()}
}
