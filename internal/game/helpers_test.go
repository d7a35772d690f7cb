package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

func enter(action catalog.EffectAction, target catalog.TargetSpec, amount int) catalog.EffectDefinition {
	return catalog.EffectDefinition{Action: action, Target: target, Amount: amount, Trigger: catalog.TriggerEnter}
}

// testCatalog holds free cards so tests never depend on energy unless they ask for it.
var testCatalog = catalog.MustNew([]catalog.CardDefinition{
	{ID: "filler", Name: "Filler", Type: catalog.TypeUnit, Cost: 9, BasePower: 100},
	{ID: "atk3", Name: "Striker", Type: catalog.TypeUnit, BasePower: 3000},
	{ID: "blk2", Name: "Wall", Type: catalog.TypeUnit, BasePower: 2000},
	{ID: "big5", Name: "Colossus", Type: catalog.TypeUnit, BasePower: 5000},
	{ID: "rush1", Name: "Runner", Type: catalog.TypeUnit, BasePower: 1000, Keywords: []catalog.Keyword{catalog.KeywordRush}},
	{ID: "pricey", Name: "Pricey", Type: catalog.TypeUnit, Cost: 3, BasePower: 1000},
	{ID: "sniper", Name: "Sniper", Type: catalog.TypeUnit, BasePower: 1500, Effects: []catalog.EffectDefinition{
		{Action: catalog.ActionActivate, Target: catalog.TargetNone, Trigger: catalog.TriggerActivate},
		{Action: catalog.ActionDestroyUnit, Target: catalog.TargetEnemyUnit, Trigger: catalog.TriggerActivate},
	}},
	{ID: "herald", Name: "Herald", Type: catalog.TypeUnit, BasePower: 1000, Effects: []catalog.EffectDefinition{
		enter(catalog.ActionDraw, catalog.TargetSelf, 1),
	}},
	{ID: "study", Name: "Study", Type: catalog.TypeSpell, Effects: []catalog.EffectDefinition{
		enter(catalog.ActionDraw, catalog.TargetSelf, 1),
	}},
	{ID: "smite", Name: "Smite", Type: catalog.TypeSpell, Effects: []catalog.EffectDefinition{
		enter(catalog.ActionDestroyUnit, catalog.TargetEnemyUnit, 0),
	}},
	{ID: "blank", Name: "Blank", Type: catalog.TypeSpell},
	{ID: "pump", Name: "Pump", Type: catalog.TypeSpellInstant, Effects: []catalog.EffectDefinition{
		enter(catalog.ActionBuffUnitBP, catalog.TargetAllyUnit, 2000),
	}},
	{ID: "hush", Name: "Hush", Type: catalog.TypeSpellInstant, Effects: []catalog.EffectDefinition{
		enter(catalog.ActionSilenceUnit, catalog.TargetEnemyUnit, 0),
	}},
	{ID: "recall", Name: "Recall", Type: catalog.TypeSpellInstant, Effects: []catalog.EffectDefinition{
		enter(catalog.ActionBounceUnit, catalog.TargetAnyUnit, 0),
	}},
	{ID: "plain", Name: "Plain", Type: catalog.TypeTerritory},
	{ID: "t001", Name: "Library", Type: catalog.TypeTerritory},
	{ID: "t004", Name: "Volcano", Type: catalog.TypeTerritory},
})

func repeat(id string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = id
	}
	return out
}

// fillerSetup gives both seats 20 unplayable units and one plain territory.
func fillerSetup() Setup {
	return Setup{
		Decks:       [2][]string{repeat("filler", 20), repeat("filler", 20)},
		Territories: [2][]string{{"plain"}, {"plain"}},
	}
}

// table is a match plus a factory for placing extra cards on it.
type table struct {
	t     *testing.T
	m     *Match
	forge *zones.Factory
}

func newTable(t *testing.T, setup Setup, seed uint64) *table {
	t.Helper()
	m, err := NewMatch(zaptest.NewLogger(t), testCatalog, "test-match", seed, setup, DefaultOptions())
	require.NoError(t, err)
	return &table{t: t, m: m, forge: zones.NewFactory(testCatalog, "forge")}
}

// state exposes the live state. Mutating it bypasses the dispatcher.
func (tb *table) state() *State {
	return tb.m.state
}

func (tb *table) player(id string) *zones.PlayerState {
	return tb.m.state.Player(id)
}

func (tb *table) create(owner, cardID string) *zones.CardInstance {
	tb.t.Helper()
	c, err := tb.forge.CreateInstance(cardID, owner)
	require.NoError(tb.t, err)
	tb.m.state.Instances++
	return c
}

// hand adds a card to the owner's hand and returns its index.
func (tb *table) hand(owner, cardID string) int {
	p := tb.player(owner)
	p.MoveToHand(tb.create(owner, cardID))
	return len(p.Hand) - 1
}

// field puts a ready unit into a battle slot.
func (tb *table) field(owner, cardID string, slot int) *zones.CardInstance {
	tb.t.Helper()
	c := tb.create(owner, cardID)
	c.CanAttack = true
	require.NoError(tb.t, tb.player(owner).MoveToBattleSlot(c, slot))
	return c
}

func (tb *table) energy(owner string, n int) {
	tb.t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(tb.t, tb.player(owner).MoveToEnergy(tb.create(owner, "filler")))
	}
}

// bury moves all but keep life cards to the graveyard.
func (tb *table) bury(owner string, keep int) {
	p := tb.player(owner)
	for len(p.Life) > keep {
		c := p.Life[0]
		p.Life = p.Life[1:]
		c.FaceDown = false
		p.MoveToGraveyard(c)
	}
}

func (tb *table) apply(a Action) *State {
	tb.t.Helper()
	st, err := tb.m.Apply(a)
	require.NoError(tb.t, err, "%s", a)
	return st
}

func (tb *table) reject(a Action, code gameerr.Code) {
	tb.t.Helper()
	before := Checksum(tb.m.state)
	_, err := tb.m.Apply(a)
	require.Error(tb.t, err, "%s should be rejected", a)
	require.Equal(tb.t, code, gameerr.CodeOf(err), "%s: %v", a, err)
	require.True(tb.t, gameerr.IsIllegalAction(err), "%s: %v", a, err)
	require.Equal(tb.t, before, Checksum(tb.m.state), "%s changed state", a)
}

// finishTurn closes the owner's deployment window if open and ends the turn.
func (tb *table) finishTurn() *State {
	tb.t.Helper()
	owner := tb.m.state.ActivePlayer()
	if tb.m.state.Stage(owner) == rules.StageDeployment {
		tb.apply(EndDeployment(owner))
	}
	return tb.apply(EndTurn(owner))
}

func eventTypes(events []rules.Event) []rules.EventType {
	out := make([]rules.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
