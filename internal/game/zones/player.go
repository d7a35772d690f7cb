package zones

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

const (
	// BattleSlots is the fixed number of battle-zone slots per player.
	BattleSlots = 5
	// EnergyCap is the maximum energy zone length.
	EnergyCap = 5
)

// Player identifiers. Seat 0 always starts.
const (
	Player0 = "0"
	Player1 = "1"
)

// PlayerIDs lists both seats in check order.
var PlayerIDs = [2]string{Player0, Player1}

// Opponent returns the other seat.
func Opponent(playerID string) string {
	if playerID == Player0 {
		return Player1
	}
	return Player0
}

// ValidPlayer reports whether id names a seat.
func ValidPlayer(id string) bool {
	return id == Player0 || id == Player1
}

// PlayerState is one player's zones. The top of Deck and Life is the end of the slice.
type PlayerState struct {
	ID            string
	Hand          []*CardInstance
	Deck          []*CardInstance
	Life          []*CardInstance
	Energy        []*CardInstance
	Battle        [BattleSlots]*CardInstance
	Graveyard     []*CardInstance
	TerritoryDeck []*CardInstance
	EnergyPlaced  bool
}

// NewPlayerState creates an empty player.
func NewPlayerState(id string) *PlayerState {
	return &PlayerState{ID: id}
}

// LifeCount is the number of cards in the life zone.
func (p *PlayerState) LifeCount() int { return len(p.Life) }

// Draw moves the top deck card into the hand face-up. It reports false on an empty deck.
func (p *PlayerState) Draw() (*CardInstance, bool) {
	card, ok := popTop(&p.Deck)
	if !ok {
		return nil, false
	}
	card.FaceDown = false
	p.Hand = append(p.Hand, card)
	return card, true
}

// DrawN draws up to n cards and returns how many moved.
func (p *PlayerState) DrawN(n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if _, ok := p.Draw(); !ok {
			break
		}
		drawn++
	}
	return drawn
}

// Mill moves up to n cards from the deck top to the graveyard face-up.
func (p *PlayerState) Mill(n int) int {
	moved := 0
	for i := 0; i < n; i++ {
		card, ok := popTop(&p.Deck)
		if !ok {
			break
		}
		card.FaceDown = false
		p.Graveyard = append(p.Graveyard, card)
		moved++
	}
	return moved
}

// Heal moves up to n cards from the deck top to the life zone face-down.
func (p *PlayerState) Heal(n int) int {
	moved := 0
	for i := 0; i < n; i++ {
		card, ok := popTop(&p.Deck)
		if !ok {
			break
		}
		card.FaceDown = true
		p.Life = append(p.Life, card)
		moved++
	}
	return moved
}

// DealDamage moves life cards to the hand face-up, one at a time.
// Damage beyond the remaining life has no effect. It returns the cards moved.
func (p *PlayerState) DealDamage(amount int) int {
	taken := 0
	for i := 0; i < amount; i++ {
		card, ok := popTop(&p.Life)
		if !ok {
			break
		}
		card.FaceDown = false
		p.Hand = append(p.Hand, card)
		taken++
	}
	return taken
}

// TakeFromHand removes and returns the card at index i.
func (p *PlayerState) TakeFromHand(i int) (*CardInstance, error) {
	return takeAt(&p.Hand, i, "hand")
}

// TakeFromEnergy removes and returns the energy card at index i.
func (p *PlayerState) TakeFromEnergy(i int) (*CardInstance, error) {
	return takeAt(&p.Energy, i, "energy zone")
}

// TakeFromDeck removes and returns the deck card at index i.
func (p *PlayerState) TakeFromDeck(i int) (*CardInstance, error) {
	return takeAt(&p.Deck, i, "deck")
}

// TakeFromGraveyard removes and returns the graveyard card at index i.
func (p *PlayerState) TakeFromGraveyard(i int) (*CardInstance, error) {
	return takeAt(&p.Graveyard, i, "graveyard")
}

// Unit returns the unit in slot, or nil for an empty or out-of-range slot.
func (p *PlayerState) Unit(slot int) *CardInstance {
	if slot < 0 || slot >= BattleSlots {
		return nil
	}
	return p.Battle[slot]
}

// TakeFromBattle empties slot and returns its unit.
func (p *PlayerState) TakeFromBattle(slot int) (*CardInstance, error) {
	if slot < 0 || slot >= BattleSlots {
		return nil, gameerr.Illegal(gameerr.CodeInvalidIndex, "battle slot %d out of range", slot)
	}
	card := p.Battle[slot]
	if card == nil {
		return nil, gameerr.Illegal(gameerr.CodeEmptySlot, "battle slot %d is empty", slot)
	}
	p.Battle[slot] = nil
	return card, nil
}

// MoveToGraveyard places card on top of the graveyard face-up.
func (p *PlayerState) MoveToGraveyard(card *CardInstance) {
	card.FaceDown = false
	p.Graveyard = append(p.Graveyard, card)
}

// MoveToHand places card in the hand face-up.
func (p *PlayerState) MoveToHand(card *CardInstance) {
	card.FaceDown = false
	p.Hand = append(p.Hand, card)
}

// MoveToEnergy appends card to the energy zone untapped. It rejects when the zone is full.
func (p *PlayerState) MoveToEnergy(card *CardInstance) error {
	if len(p.Energy) >= EnergyCap {
		return gameerr.Illegal(gameerr.CodeEnergyZoneFull, "energy zone already holds %d cards", EnergyCap)
	}
	card.FaceDown = false
	card.Tapped = false
	p.Energy = append(p.Energy, card)
	return nil
}

// MoveToBattleSlot places card in slot. It rejects an occupied or invalid slot.
func (p *PlayerState) MoveToBattleSlot(card *CardInstance, slot int) error {
	if slot < 0 || slot >= BattleSlots {
		return gameerr.Illegal(gameerr.CodeInvalidIndex, "battle slot %d out of range", slot)
	}
	if p.Battle[slot] != nil {
		return gameerr.Illegal(gameerr.CodeSlotOccupied, "battle slot %d is occupied", slot)
	}
	card.FaceDown = false
	p.Battle[slot] = card
	return nil
}

// FirstEmptySlot returns the lowest empty battle slot, or -1.
func (p *PlayerState) FirstEmptySlot() int {
	for i, c := range p.Battle {
		if c == nil {
			return i
		}
	}
	return -1
}

// Units returns the occupied slot indexes in order.
func (p *PlayerState) Units() []int {
	var slots []int
	for i, c := range p.Battle {
		if c != nil {
			slots = append(slots, i)
		}
	}
	return slots
}

// HasUntappedUnit reports whether any battle-zone unit is untapped.
func (p *PlayerState) HasUntappedUnit() bool {
	for _, c := range p.Battle {
		if c != nil && !c.Tapped {
			return true
		}
	}
	return false
}

// Instances returns every card the player holds, in zone order.
func (p *PlayerState) Instances() []*CardInstance {
	out := make([]*CardInstance, 0, len(p.Hand)+len(p.Deck)+len(p.Life)+len(p.Energy)+len(p.Graveyard)+len(p.TerritoryDeck)+BattleSlots)
	out = append(out, p.Hand...)
	out = append(out, p.Deck...)
	out = append(out, p.Life...)
	out = append(out, p.Energy...)
	for _, c := range p.Battle {
		if c != nil {
			out = append(out, c)
		}
	}
	out = append(out, p.Graveyard...)
	out = append(out, p.TerritoryDeck...)
	return out
}

// Clone deep-copies the player and every instance it holds.
func (p *PlayerState) Clone() *PlayerState {
	cp := &PlayerState{
		ID:            p.ID,
		Hand:          cloneCards(p.Hand),
		Deck:          cloneCards(p.Deck),
		Life:          cloneCards(p.Life),
		Energy:        cloneCards(p.Energy),
		Graveyard:     cloneCards(p.Graveyard),
		TerritoryDeck: cloneCards(p.TerritoryDeck),
		EnergyPlaced:  p.EnergyPlaced,
	}
	for i, c := range p.Battle {
		cp.Battle[i] = c.Clone()
	}
	return cp
}

func popTop(zone *[]*CardInstance) (*CardInstance, bool) {
	n := len(*zone)
	if n == 0 {
		return nil, false
	}
	card := (*zone)[n-1]
	(*zone)[n-1] = nil
	*zone = (*zone)[:n-1]
	return card, true
}

func takeAt(zone *[]*CardInstance, i int, name string) (*CardInstance, error) {
	if i < 0 || i >= len(*zone) {
		return nil, gameerr.Illegal(gameerr.CodeInvalidIndex, "%s index %d out of range (len %d)", name, i, len(*zone))
	}
	card := (*zone)[i]
	*zone = append((*zone)[:i], (*zone)[i+1:]...)
	return card, nil
}

func cloneCards(in []*CardInstance) []*CardInstance {
	if in == nil {
		return nil
	}
	out := make([]*CardInstance, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}
