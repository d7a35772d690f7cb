package watchers

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
)

// Registry keys of the standard watchers.
const (
	KeySpellsCast     = "SpellsCastWatcher"
	KeyUnitsDestroyed = "UnitsDestroyedWatcher"
	KeyLifeLost       = "LifeLostWatcher"
	KeyCardsDrawn     = "CardsDrawnWatcher"
	KeyAttacks        = "AttacksWatcher"
	KeyTurnAttacks    = "TurnAttacksWatcher"
)

func eventAmount(e rules.Event) int {
	return e.Amount
}

// NewSpellsCastWatcher counts spells and instants cast by each player.
func NewSpellsCastWatcher() *rules.CountingWatcher {
	return rules.NewCountingWatcher(KeySpellsCast, rules.WatcherScopeMatch, nil,
		rules.EventSpellCast, rules.EventInstantCast)
}

// NewUnitsDestroyedWatcher counts units each player lost to the graveyard.
func NewUnitsDestroyedWatcher() *rules.CountingWatcher {
	return rules.NewCountingWatcher(KeyUnitsDestroyed, rules.WatcherScopeMatch, nil,
		rules.EventUnitDestroyed)
}

// NewLifeLostWatcher sums the life cards each player has lost.
func NewLifeLostWatcher() *rules.CountingWatcher {
	return rules.NewCountingWatcher(KeyLifeLost, rules.WatcherScopeMatch, eventAmount,
		rules.EventDamageDealt)
}

// NewCardsDrawnWatcher counts cards drawn, including the opening hand.
func NewCardsDrawnWatcher() *rules.CountingWatcher {
	return rules.NewCountingWatcher(KeyCardsDrawn, rules.WatcherScopeMatch, nil,
		rules.EventCardDrawn)
}

// NewAttacksWatcher counts declared attacks over the match.
func NewAttacksWatcher() *rules.CountingWatcher {
	return rules.NewCountingWatcher(KeyAttacks, rules.WatcherScopeMatch, nil,
		rules.EventAttackDeclared)
}

// NewTurnAttacksWatcher counts attacks declared during the current turn.
func NewTurnAttacksWatcher() *rules.CountingWatcher {
	return rules.NewCountingWatcher(KeyTurnAttacks, rules.WatcherScopeTurn, nil,
		rules.EventAttackDeclared)
}

// NewStandardRegistry returns a registry holding every watcher above.
func NewStandardRegistry() *rules.WatcherRegistry {
	wr := rules.NewWatcherRegistry()
	wr.AddWatcher(NewSpellsCastWatcher())
	wr.AddWatcher(NewUnitsDestroyedWatcher())
	wr.AddWatcher(NewLifeLostWatcher())
	wr.AddWatcher(NewCardsDrawnWatcher())
	wr.AddWatcher(NewAttacksWatcher())
	wr.AddWatcher(NewTurnAttacksWatcher())
	return wr
}
