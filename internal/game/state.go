// Package game implements the turn/priority state machine, the action
// dispatcher, and the multi-match engine built on top of them.
package game

import (
	"math/rand/v2"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// Win reasons.
const (
	ReasonLife    = "life"
	ReasonDeckout = "deckout"
)

// Result is the end-of-match record.
type Result struct {
	Winner string
	Loser  string
	Reason string
}

// State is the full authoritative state of one match. Values handed to
// callers are deep copies; mutating them has no effect on the match.
type State struct {
	MatchID string
	Board   *zones.Board
	Turn    *rules.TurnManager
	Stages  *rules.StageTable
	Pending *rules.PendingSlot
	Result  *Result
	// Seq counts accepted actions.
	Seq int
	// Instances is the number of card instances created at setup. It never changes.
	Instances int

	pcg *rand.PCG
	rng *rand.Rand
}

func newState(matchID string, seed uint64) *State {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &State{
		MatchID: matchID,
		Board:   zones.NewBoard(),
		Turn:    rules.NewTurnManager(zones.Player0),
		Stages:  rules.NewStageTable(),
		Pending: rules.NewPendingSlot(),
		pcg:     pcg,
		rng:     rand.New(pcg),
	}
}

// Clone deep-copies the state, including the position of the random stream.
func (s *State) Clone() *State {
	cp := &State{
		MatchID:   s.MatchID,
		Board:     s.Board.Clone(),
		Turn:      s.Turn.Clone(),
		Stages:    s.Stages.Clone(),
		Pending:   s.Pending.Clone(),
		Seq:       s.Seq,
		Instances: s.Instances,
	}
	if s.Result != nil {
		r := *s.Result
		cp.Result = &r
	}
	if s.pcg != nil {
		pcg := *s.pcg
		cp.pcg = &pcg
		cp.rng = rand.New(cp.pcg)
	}
	return cp
}

// Player returns a player's zones.
func (s *State) Player(id string) *zones.PlayerState {
	return s.Board.Player(id)
}

// ActivePlayer is the turn owner.
func (s *State) ActivePlayer() string {
	return s.Turn.ActivePlayer()
}

// Stage returns the player's current window.
func (s *State) Stage(playerID string) rules.Stage {
	return s.Stages.Of(playerID)
}

// Over reports whether the match has ended.
func (s *State) Over() bool {
	return s.Result != nil
}

// randomState returns the serialized random stream position.
func (s *State) randomState() []byte {
	if s.pcg == nil {
		return nil
	}
	b, err := s.pcg.MarshalBinary()
	if err != nil {
		return nil
	}
	return b
}
