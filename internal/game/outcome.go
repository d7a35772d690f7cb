package game

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// checkMatchEnd applies the end conditions in fixed order: life for seat 0
// then seat 1, then deck-out for seat 0 then seat 1. The first hit wins.
func checkMatchEnd(st *State) *Result {
	if st.Result != nil {
		return st.Result
	}
	for _, id := range zones.PlayerIDs {
		if st.Player(id).LifeCount() == 0 {
			return &Result{Winner: zones.Opponent(id), Loser: id, Reason: ReasonLife}
		}
	}
	for _, id := range zones.PlayerIDs {
		if len(st.Player(id).Deck) == 0 {
			return &Result{Winner: zones.Opponent(id), Loser: id, Reason: ReasonDeckout}
		}
	}
	return nil
}

// settle records a newly reached result on the state.
func (ap *applier) settle() {
	if ap.st.Result != nil {
		return
	}
	res := checkMatchEnd(ap.st)
	if res == nil {
		return
	}
	ap.st.Result = res
	ap.st.Turn.SetPhase(rules.PhaseEnded)
	ap.st.Stages.Clear()
	ap.st.Pending.Take()
	evt := rules.NewEvent(rules.EventMatchEnded, res.Winner, "", res.Loser)
	evt.Metadata["reason"] = res.Reason
	ap.emit(evt)
}

// validateState checks every structural invariant of a reachable state.
func validateState(st *State) error {
	if err := st.Board.Validate(); err != nil {
		return err
	}
	if got := len(st.Board.Instances()); got != st.Instances {
		return gameerr.Invariant("board holds %d instances, %d were created", got, st.Instances)
	}
	if err := st.Stages.Validate(); err != nil {
		return err
	}

	holder, stage, open := st.Stages.Holder()
	if !open && !st.Stages.IsDefault() {
		return gameerr.Invariant("stages assigned but nobody holds a window")
	}
	switch item := st.Pending.Peek().(type) {
	case nil:
		if stage == rules.StageResponse || stage == rules.StageBlocking {
			return gameerr.Invariant("%s window open with nothing pending", stage)
		}
	case *rules.PendingEffect:
		if stage != rules.StageResponse || holder != zones.Opponent(item.PlayerID) {
			return gameerr.Invariant("pending effect from %s without an opponent response window", item.PlayerID)
		}
	case *rules.PendingAttack:
		if stage != rules.StageResponse || holder != item.DefenderID() {
			return gameerr.Invariant("pending attack without a defender response window")
		}
	case *rules.CombatState:
		if stage != rules.StageBlocking || holder != item.DefenderID() {
			return gameerr.Invariant("combat without a defender blocking window")
		}
	}
	if stage == rules.StageDeployment && holder != st.ActivePlayer() {
		return gameerr.Invariant("deployment window held by %s off turn", holder)
	}
	if st.Result != nil && (!st.Stages.IsDefault() || !st.Pending.IsEmpty()) {
		return gameerr.Invariant("finished match still has an open window")
	}
	return nil
}
