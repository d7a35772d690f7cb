package game

import (
	"fmt"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Options are the tunable match rules.
type Options struct {
	StartingLife            int
	StartingHand            int
	TerritoryRevealTurns    int
	SecondPlayerEnergyBonus bool
}

// DefaultOptions returns the standard rules.
func DefaultOptions() Options {
	return Options{
		StartingLife:            6,
		StartingHand:            5,
		TerritoryRevealTurns:    3,
		SecondPlayerEnergyBonus: true,
	}
}

// Setup is the per-match input: one deck and one territory list per seat.
type Setup struct {
	Decks       [2][]string
	Territories [2][]string
}

// StarterSetup builds a setup from the builtin starter lists.
func StarterSetup() Setup {
	return Setup{
		Decks:       [2][]string{catalog.StarterDeck(), catalog.StarterDeck()},
		Territories: [2][]string{catalog.StarterTerritories(0), catalog.StarterTerritories(1)},
	}
}

// newMatchState creates instances for both seats, deals the opening zones and
// begins player 0's first turn. Unknown card ids abort setup.
func newMatchState(cat *catalog.Catalog, matchID string, seed uint64, setup Setup, opts Options) (*State, *rules.Recorder, error) {
	st := newState(matchID, seed)
	factory := zones.NewFactory(cat, matchID)

	for seat, id := range zones.PlayerIDs {
		p := st.Player(id)
		deck, err := factory.CreateAll(setup.Decks[seat], id)
		if err != nil {
			return nil, nil, fmt.Errorf("player %s deck: %w", id, err)
		}
		territories, err := factory.CreateAll(setup.Territories[seat], id)
		if err != nil {
			return nil, nil, fmt.Errorf("player %s territories: %w", id, err)
		}
		for _, t := range territories {
			if t.Type() != catalog.TypeTerritory {
				return nil, nil, gameerr.Newf(gameerr.CodeInvalidSetup, "player %s territory list holds %s (%s)", id, t.CardID(), t.Type())
			}
			t.FaceDown = true
		}
		for _, c := range deck {
			c.FaceDown = true
		}
		p.Deck = deck
		p.TerritoryDeck = territories
	}
	st.Instances = int(factory.Issued())

	rec := &rules.Recorder{}
	for _, id := range zones.PlayerIDs {
		p := st.Player(id)
		zones.Shuffle(p.Deck, st.rng)
		rec.Emit(rules.NewEvent(rules.EventDeckShuffled, id, "", ""))
		dealLife(p, opts.StartingLife)
		p.DrawN(opts.StartingHand)
		for _, c := range p.Hand {
			rec.Emit(rules.NewEvent(rules.EventCardDrawn, id, c.CardID(), c.InstanceID))
		}
	}
	if opts.SecondPlayerEnergyBonus {
		second := st.Player(zones.Opponent(st.Turn.StartingPlayer()))
		if card, ok := second.Draw(); ok {
			if _, err := second.TakeFromHand(len(second.Hand) - 1); err != nil {
				return nil, nil, err
			}
			if err := second.MoveToEnergy(card); err != nil {
				return nil, nil, err
			}
			rec.Emit(rules.NewEvent(rules.EventEnergyPlaced, second.ID, card.CardID(), card.InstanceID))
		}
	}

	st.Turn.SetPhase(rules.PhaseMain)
	rec.Emit(rules.NewEvent(rules.EventMatchStarted, st.Turn.StartingPlayer(), "", ""))
	return st, rec, nil
}

// dealLife moves the top n deck cards into the life zone face-down, keeping their order.
func dealLife(p *zones.PlayerState, n int) {
	if n > len(p.Deck) {
		n = len(p.Deck)
	}
	cut := len(p.Deck) - n
	life := make([]*zones.CardInstance, n)
	copy(life, p.Deck[cut:])
	for _, c := range life {
		c.FaceDown = true
	}
	p.Deck = p.Deck[:cut]
	p.Life = life
}
