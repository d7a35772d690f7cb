package zones

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Board is every card zone in a match: both players plus the shared territory.
type Board struct {
	Players map[string]*PlayerState
	// ActiveTerritory is the revealed shared territory, nil before the first reveal.
	ActiveTerritory *CardInstance
	// RetiredTerritories holds territories replaced by a later reveal, oldest first.
	RetiredTerritories []*CardInstance
}

// NewBoard creates a board with two empty players.
func NewBoard() *Board {
	return &Board{
		Players: map[string]*PlayerState{
			Player0: NewPlayerState(Player0),
			Player1: NewPlayerState(Player1),
		},
	}
}

// Player returns the state for id or nil.
func (b *Board) Player(id string) *PlayerState {
	return b.Players[id]
}

// RevealTerritory pops the top of the owner's territory deck and makes it the
// active territory. The previous active territory, if any, is retired.
// It reports whether a card was revealed and whether it replaced another.
func (b *Board) RevealTerritory(ownerID string) (revealed *CardInstance, replaced bool) {
	p := b.Players[ownerID]
	if p == nil || len(p.TerritoryDeck) == 0 {
		return nil, false
	}
	card := p.TerritoryDeck[0]
	p.TerritoryDeck = p.TerritoryDeck[1:]
	card.FaceDown = false
	if b.ActiveTerritory != nil {
		b.RetiredTerritories = append(b.RetiredTerritories, b.ActiveTerritory)
		replaced = true
	}
	b.ActiveTerritory = card
	return card, replaced
}

// Instances returns every instance on the board.
func (b *Board) Instances() []*CardInstance {
	var out []*CardInstance
	for _, id := range PlayerIDs {
		if p := b.Players[id]; p != nil {
			out = append(out, p.Instances()...)
		}
	}
	if b.ActiveTerritory != nil {
		out = append(out, b.ActiveTerritory)
	}
	out = append(out, b.RetiredTerritories...)
	return out
}

// Validate checks the structural zone invariants: each instance appears once
// and every energy zone is within its cap.
func (b *Board) Validate() error {
	seen := make(map[string]string)
	check := func(zone string, cards []*CardInstance) error {
		for _, c := range cards {
			if c == nil {
				return gameerr.Invariant("nil card in %s", zone)
			}
			if prev, dup := seen[c.InstanceID]; dup {
				return gameerr.Invariant("instance %s appears in both %s and %s", c.InstanceID, prev, zone)
			}
			seen[c.InstanceID] = zone
		}
		return nil
	}

	for _, id := range PlayerIDs {
		p := b.Players[id]
		if p == nil {
			return gameerr.Invariant("player %s missing", id)
		}
		if len(p.Energy) > EnergyCap {
			return gameerr.Invariant("player %s energy zone holds %d cards", id, len(p.Energy))
		}
		zones := []struct {
			name  string
			cards []*CardInstance
		}{
			{"hand", p.Hand},
			{"deck", p.Deck},
			{"life", p.Life},
			{"energy", p.Energy},
			{"graveyard", p.Graveyard},
			{"territory deck", p.TerritoryDeck},
		}
		for _, z := range zones {
			if err := check(id+" "+z.name, z.cards); err != nil {
				return err
			}
		}
		for slot, c := range p.Battle {
			if c == nil {
				continue
			}
			if err := check(id+" battle", []*CardInstance{c}); err != nil {
				return err
			}
			if !c.IsUnit() {
				return gameerr.Invariant("non-unit %s in player %s battle slot %d", c, id, slot)
			}
		}
	}
	if b.ActiveTerritory != nil {
		if err := check("active territory", []*CardInstance{b.ActiveTerritory}); err != nil {
			return err
		}
	}
	return check("retired territories", b.RetiredTerritories)
}

// Clone deep-copies the board.
func (b *Board) Clone() *Board {
	cp := &Board{
		Players:            make(map[string]*PlayerState, len(b.Players)),
		ActiveTerritory:    b.ActiveTerritory.Clone(),
		RetiredTerritories: cloneCards(b.RetiredTerritories),
	}
	for id, p := range b.Players {
		cp.Players[id] = p.Clone()
	}
	return cp
}

// Unit returns the unit in playerID's slot, or nil.
func (b *Board) Unit(playerID string, slot int) *CardInstance {
	p := b.Players[playerID]
	if p == nil {
		return nil
	}
	return p.Unit(slot)
}
