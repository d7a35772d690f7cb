package catalog

import (
	_ "embed"
	"sync"
)

//go:embed data/cards.json
var builtinJSON []byte

var (
	builtinOnce sync.Once
	builtin     *Catalog
)

// Builtin returns the catalog shipped with the engine.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c, err := Parse(builtinJSON, FormatJSON)
		if err != nil {
			panic("catalog: builtin cards: " + err.Error())
		}
		builtin = c
	})
	return builtin
}

// StarterDeck returns a 40-card list drawn from the builtin catalog.
// Every unit and spell appears twice.
func StarterDeck() []string {
	ids := []string{
		"u001", "u002", "u003", "u004", "u005", "u006", "u007", "u008", "u009", "u010",
		"s001", "s002", "s003", "s004", "s005", "s006",
		"i001", "i002", "i003", "i004",
	}
	deck := make([]string, 0, 2*len(ids))
	for i := 0; i < 2; i++ {
		deck = append(deck, ids...)
	}
	return deck
}

// StarterTerritories returns a three-card territory list for the given seat.
func StarterTerritories(seat int) []string {
	if seat%2 == 0 {
		return []string{"t003", "t001", "t004"}
	}
	return []string{"t002", "t005", "t004"}
}
