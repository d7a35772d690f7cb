package game

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// Authority returns the player expected to act next: the holder of the open
// window, or the turn owner during turn-default play.
func (s *State) Authority() string {
	if holder, _, ok := s.Stages.Holder(); ok {
		return holder
	}
	return s.ActivePlayer()
}

// LegalActions lists every action the match would accept right now, in a
// stable order. Effect targets are only offered at occupied battle slots.
func (m *Match) LegalActions() []Action {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Action
	for _, a := range enumerate(m.state) {
		if _, _, err := m.apply(a); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// enumerate builds the candidate actions for the player with authority.
func enumerate(st *State) []Action {
	if st.Over() {
		return nil
	}
	id := st.Authority()
	p := st.Player(id)

	var targets []zones.Target
	for _, owner := range zones.PlayerIDs {
		for _, slot := range st.Player(owner).Units() {
			targets = append(targets, zones.PlayerSlotTarget(owner, slot))
		}
	}
	targeted := func(a Action) []Action {
		out := []Action{a}
		for _, t := range targets {
			out = append(out, a.WithTarget(t.SlotIndex(), t.PlayerID))
		}
		return out
	}

	var out []Action
	for i := range p.Hand {
		out = append(out, PlaceEnergy(id, i), SummonUnit(id, i))
		out = append(out, targeted(CastSpell(id, i))...)
		out = append(out, targeted(CastInstant(id, i))...)
	}
	for _, slot := range p.Units() {
		out = append(out, targeted(ActivateUnitEffect(id, slot))...)
		out = append(out, DeclareAttack(id, slot), DeclareBlock(id, slot))
	}
	for i := range p.Energy {
		out = append(out, ReturnEnergyToHand(id, i))
	}
	return append(out,
		PassResponse(id),
		SkipBlock(id),
		EndDeployment(id),
		EndTurn(id),
	)
}
