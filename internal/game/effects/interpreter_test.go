package effects

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

type harness struct {
	t       *testing.T
	board   *zones.Board
	factory *zones.Factory
	rec     *rules.Recorder
	ctx     *Context
	in      *Interpreter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		board:   zones.NewBoard(),
		factory: zones.NewFactory(catalog.Builtin(), "fx"),
		rec:     &rules.Recorder{},
		in:      NewInterpreter(zaptest.NewLogger(t)),
	}
	h.ctx = &Context{
		Board:   h.board,
		TurnSeq: 3,
		RNG:     rand.New(rand.NewPCG(1, 2)),
		Emit:    h.rec.Emit,
	}
	return h
}

func (h *harness) card(id, owner string) *zones.CardInstance {
	h.t.Helper()
	c, err := h.factory.CreateInstance(id, owner)
	require.NoError(h.t, err)
	return c
}

func (h *harness) unit(id, owner string, slot int) *zones.CardInstance {
	h.t.Helper()
	c := h.card(id, owner)
	require.NoError(h.t, h.board.Player(owner).MoveToBattleSlot(c, slot))
	return c
}

func (h *harness) deck(owner string, ids ...string) {
	h.t.Helper()
	p := h.board.Player(owner)
	for _, id := range ids {
		c := h.card(id, owner)
		c.FaceDown = true
		p.Deck = append(p.Deck, c)
	}
}

func (h *harness) resolve(actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	return h.in.Resolve(h.ctx, actor, eff, target)
}

func (h *harness) hasEvent(t rules.EventType) bool {
	for _, evt := range h.rec.Events() {
		if evt.Type == t {
			return true
		}
	}
	return false
}

func TestEveryActionHasHandler(t *testing.T) {
	in := NewInterpreter(nil)
	for _, action := range catalog.EffectActions() {
		assert.True(t, in.Handles(action), "missing handler for %s", action)
	}
	assert.False(t, in.Handles("TELEPORT"))
}

func TestUnknownActionFizzles(t *testing.T) {
	h := newHarness(t)
	out := h.resolve(zones.Player0, catalog.EffectDefinition{Action: "TELEPORT"}, zones.NoTarget)
	assert.False(t, out.Applied)
	assert.Equal(t, "unknown action", out.Reason)
}

func TestDestroyUnit(t *testing.T) {
	h := newHarness(t)
	u := h.unit("u002", zones.Player1, 0)
	eff := catalog.EffectDefinition{Action: catalog.ActionDestroyUnit, Target: catalog.TargetEnemyUnit}

	out := h.resolve(zones.Player0, eff, zones.SlotTarget(0))
	require.True(t, out.Applied)
	p1 := h.board.Player(zones.Player1)
	assert.Nil(t, p1.Battle[0])
	assert.Equal(t, []*zones.CardInstance{u}, p1.Graveyard)
	assert.True(t, h.hasEvent(rules.EventUnitDestroyed))
}

func TestDestroyEmptySlotFizzles(t *testing.T) {
	h := newHarness(t)
	eff := catalog.EffectDefinition{Action: catalog.ActionDestroyUnit, Target: catalog.TargetEnemyUnit}

	before := h.board.Clone()
	out := h.resolve(zones.Player0, eff, zones.SlotTarget(2))
	assert.False(t, out.Applied)
	assert.Equal(t, before, h.board)
	assert.True(t, h.hasEvent(rules.EventEffectFizzled))

	out = h.resolve(zones.Player0, eff, zones.NoTarget)
	assert.False(t, out.Applied)
}

func TestAnyUnitHonoursOwnerOverride(t *testing.T) {
	h := newHarness(t)
	own := h.unit("u001", zones.Player0, 1)
	eff := catalog.EffectDefinition{Action: catalog.ActionBounceUnit, Target: catalog.TargetAnyUnit}

	out := h.resolve(zones.Player0, eff, zones.PlayerSlotTarget(zones.Player0, 1))
	require.True(t, out.Applied)
	p0 := h.board.Player(zones.Player0)
	assert.Nil(t, p0.Battle[1])
	require.Len(t, p0.Hand, 1)
	assert.Same(t, own, p0.Hand[0])
	assert.False(t, own.CanAttack)
}

func TestSilenceMarksTurn(t *testing.T) {
	h := newHarness(t)
	u := h.unit("u006", zones.Player1, 3)
	eff := catalog.EffectDefinition{Action: catalog.ActionSilenceUnit, Target: catalog.TargetEnemyUnit}

	require.True(t, h.resolve(zones.Player0, eff, zones.SlotTarget(3)).Applied)
	assert.True(t, u.IsSilencedDuring(3))
	assert.False(t, u.IsSilencedDuring(4))
}

func TestMoveUnitToEnergy(t *testing.T) {
	h := newHarness(t)
	u := h.unit("u005", zones.Player1, 0)
	u.Tapped = true
	eff := catalog.EffectDefinition{Action: catalog.ActionMoveUnitToEnergy, Target: catalog.TargetEnemyUnit, Amount: 1}

	require.True(t, h.resolve(zones.Player0, eff, zones.SlotTarget(0)).Applied)
	p1 := h.board.Player(zones.Player1)
	require.Len(t, p1.Energy, 1)
	assert.Same(t, u, p1.Energy[0])
	assert.False(t, u.Tapped)
	assert.False(t, u.CanAttack)
}

func TestMoveUnitToFullEnergyDestroysAndDraws(t *testing.T) {
	h := newHarness(t)
	p1 := h.board.Player(zones.Player1)
	for i := 0; i < zones.EnergyCap; i++ {
		require.NoError(t, p1.MoveToEnergy(h.card("s002", zones.Player1)))
	}
	u := h.unit("u005", zones.Player1, 0)
	h.deck(zones.Player0, "u001", "u002")
	eff := catalog.EffectDefinition{Action: catalog.ActionMoveUnitToEnergy, Target: catalog.TargetEnemyUnit, Amount: 1}

	require.True(t, h.resolve(zones.Player0, eff, zones.SlotTarget(0)).Applied)
	assert.Len(t, p1.Energy, zones.EnergyCap)
	assert.Equal(t, []*zones.CardInstance{u}, p1.Graveyard)
	p0 := h.board.Player(zones.Player0)
	require.Len(t, p0.Hand, 1)
	assert.Equal(t, "u002", p0.Hand[0].CardID())
	require.NoError(t, h.board.Validate())
}

func TestBuffUnit(t *testing.T) {
	h := newHarness(t)
	u := h.unit("u001", zones.Player0, 0)
	eff := catalog.EffectDefinition{Action: catalog.ActionBuffUnitBP, Target: catalog.TargetAllyUnit, Amount: 2000}

	require.True(t, h.resolve(zones.Player0, eff, zones.SlotTarget(0)).Applied)
	assert.Equal(t, 3000, u.CurrentPower)
	assert.Equal(t, 1000, u.Definition.BasePower)
}

func TestBuffSelfWithoutSlotPumpsBoard(t *testing.T) {
	h := newHarness(t)
	a := h.unit("u001", zones.Player0, 0)
	b := h.unit("u002", zones.Player0, 4)
	enemy := h.unit("u002", zones.Player1, 0)
	eff := catalog.EffectDefinition{Action: catalog.ActionBuffUnitBP, Target: catalog.TargetSelf, Amount: 500}

	require.True(t, h.resolve(zones.Player0, eff, zones.NoTarget).Applied)
	assert.Equal(t, 1500, a.CurrentPower)
	assert.Equal(t, 2500, b.CurrentPower)
	assert.Equal(t, 2000, enemy.CurrentPower)
}

func TestUntapDefaultsToActor(t *testing.T) {
	h := newHarness(t)
	own := h.unit("u002", zones.Player0, 2)
	own.Tapped = true
	foe := h.unit("u002", zones.Player1, 2)
	foe.Tapped = true
	eff := catalog.EffectDefinition{Action: catalog.ActionUntapUnit, Target: catalog.TargetAllyUnit}

	require.True(t, h.resolve(zones.Player0, eff, zones.SlotTarget(2)).Applied)
	assert.False(t, own.Tapped)
	assert.True(t, foe.Tapped)

	require.True(t, h.resolve(zones.Player0, eff, zones.PlayerSlotTarget(zones.Player1, 2)).Applied)
	assert.False(t, foe.Tapped)
}

func TestDrawWithKeywordCondition(t *testing.T) {
	h := newHarness(t)
	h.deck(zones.Player0, "u001", "u002", "u003")
	eff := catalog.EffectDefinition{
		Action: catalog.ActionDraw,
		Amount: 1,
		Filter: &catalog.Filter{Keyword: catalog.KeywordGuard},
	}

	out := h.resolve(zones.Player0, eff, zones.NoTarget)
	assert.False(t, out.Applied)
	p0 := h.board.Player(zones.Player0)
	assert.Empty(t, p0.Hand)

	h.unit("u002", zones.Player0, 0)
	require.True(t, h.resolve(zones.Player0, eff, zones.NoTarget).Applied)
	require.Len(t, p0.Hand, 1)
	assert.Equal(t, "u003", p0.Hand[0].CardID())
}

func TestDamageAndHealPlayer(t *testing.T) {
	h := newHarness(t)
	p1 := h.board.Player(zones.Player1)
	for i := 0; i < 2; i++ {
		c := h.card("u001", zones.Player1)
		c.FaceDown = true
		p1.Life = append(p1.Life, c)
	}

	dmg := catalog.EffectDefinition{Action: catalog.ActionDamagePlayer, Target: catalog.TargetOpponent, Amount: 1}
	require.True(t, h.resolve(zones.Player0, dmg, zones.NoTarget).Applied)
	assert.Equal(t, 1, p1.LifeCount())
	require.Len(t, p1.Hand, 1)
	assert.False(t, p1.Hand[0].FaceDown)

	h.deck(zones.Player1, "u004")
	heal := catalog.EffectDefinition{Action: catalog.ActionHealPlayer, Amount: 1}
	require.True(t, h.resolve(zones.Player1, heal, zones.NoTarget).Applied)
	assert.Equal(t, 2, p1.LifeCount())
	assert.True(t, p1.Life[1].FaceDown)
	assert.Empty(t, p1.Deck)
}

func TestMillAndReturnGraveUnits(t *testing.T) {
	h := newHarness(t)
	h.deck(zones.Player0, "u001", "s001", "u002")
	mill := catalog.EffectDefinition{Action: catalog.ActionMill, Target: catalog.TargetSelf, Amount: 2}

	require.True(t, h.resolve(zones.Player0, mill, zones.NoTarget).Applied)
	p0 := h.board.Player(zones.Player0)
	require.Len(t, p0.Graveyard, 2)
	assert.Len(t, p0.Deck, 1)

	ret := catalog.EffectDefinition{Action: catalog.ActionReturnGraveUnits, Amount: 1}
	require.True(t, h.resolve(zones.Player0, ret, zones.NoTarget).Applied)
	require.Len(t, p0.Hand, 1)
	assert.Equal(t, "u002", p0.Hand[0].CardID())
	require.Len(t, p0.Graveyard, 1)
	assert.Equal(t, "s001", p0.Graveyard[0].CardID())

	assert.False(t, h.resolve(zones.Player0, ret, zones.NoTarget).Applied)
}

func TestConditionalDestroy(t *testing.T) {
	h := newHarness(t)
	target := h.unit("u004", zones.Player1, 1)
	eff := catalog.EffectDefinition{
		Action:    catalog.ActionConditionalDestroy,
		Target:    catalog.TargetEnemyUnit,
		Condition: "OPPONENT_GRAVE_UNITS_BELOW",
		Threshold: 4,
	}

	p1 := h.board.Player(zones.Player1)
	p1.MoveToGraveyard(h.card("u010", zones.Player1))
	assert.False(t, h.resolve(zones.Player0, eff, zones.SlotTarget(1)).Applied)
	assert.Same(t, target, p1.Battle[1])

	p1.Graveyard = []*zones.CardInstance{h.card("u001", zones.Player1)}
	require.True(t, h.resolve(zones.Player0, eff, zones.SlotTarget(1)).Applied)
	assert.Nil(t, p1.Battle[1])
}

func TestSummonFromEnergy(t *testing.T) {
	h := newHarness(t)
	p0 := h.board.Player(zones.Player0)
	spell := h.card("s002", zones.Player0)
	unit := h.card("u002", zones.Player0)
	require.NoError(t, p0.MoveToEnergy(spell))
	require.NoError(t, p0.MoveToEnergy(unit))
	h.unit("u001", zones.Player0, 0)
	eff := catalog.EffectDefinition{Action: catalog.ActionSummonFromEnergy, Amount: 1000, GrantRush: true}

	require.True(t, h.resolve(zones.Player0, eff, zones.NoTarget).Applied)
	assert.Same(t, unit, p0.Battle[1])
	assert.Equal(t, 3000, unit.CurrentPower)
	assert.True(t, unit.CanAttack)
	assert.False(t, unit.Tapped)
	assert.True(t, unit.HasKeyword(catalog.KeywordRush))
	assert.Equal(t, []*zones.CardInstance{spell}, p0.Energy)

	// An explicit index pointing at a non-unit fizzles.
	out := h.resolve(zones.Player0, eff, zones.SlotTarget(0))
	assert.False(t, out.Applied)
}

func TestSummonFromDeck(t *testing.T) {
	h := newHarness(t)
	h.deck(zones.Player0, "u002", "u001", "s001")
	eff := catalog.EffectDefinition{
		Action:  catalog.ActionSummonFromDeck,
		Filter:  &catalog.Filter{Type: catalog.TypeUnit, Keyword: catalog.KeywordRush},
		Shuffle: true,
	}

	require.True(t, h.resolve(zones.Player0, eff, zones.NoTarget).Applied)
	p0 := h.board.Player(zones.Player0)
	require.NotNil(t, p0.Battle[0])
	assert.Equal(t, "u001", p0.Battle[0].CardID())
	assert.True(t, p0.Battle[0].CanAttack)
	assert.Len(t, p0.Deck, 2)
	assert.True(t, h.hasEvent(rules.EventDeckShuffled))

	out := h.resolve(zones.Player0, catalog.EffectDefinition{Action: catalog.ActionSummonFromDeck}, zones.NoTarget)
	assert.False(t, out.Applied)
	assert.Equal(t, "no filter", out.Reason)
}

func TestSearchDeck(t *testing.T) {
	h := newHarness(t)
	h.deck(zones.Player0, "u005", "u002", "s001")
	maxCost := 2
	eff := catalog.EffectDefinition{
		Action: catalog.ActionSearchDeck,
		Filter: &catalog.Filter{Type: catalog.TypeUnit, MaxCost: &maxCost},
	}

	require.True(t, h.resolve(zones.Player0, eff, zones.NoTarget).Applied)
	p0 := h.board.Player(zones.Player0)
	require.Len(t, p0.Hand, 1)
	assert.Equal(t, "u002", p0.Hand[0].CardID())
	assert.False(t, p0.Hand[0].FaceDown)

	assert.False(t, h.resolve(zones.Player0, eff, zones.NoTarget).Applied)
	assert.False(t, h.resolve(zones.Player0, catalog.EffectDefinition{Action: catalog.ActionSearchDeck}, zones.NoTarget).Applied)
}

func TestSearchDeckShuffleIsUniform(t *testing.T) {
	const trials = 3000
	rng := rand.New(rand.NewPCG(7, 11))
	in := NewInterpreter(nil)
	factory := zones.NewFactory(catalog.Builtin(), "uni")
	maxCost := 3
	eff := catalog.EffectDefinition{
		Action:  catalog.ActionSearchDeck,
		Shuffle: true,
		Filter:  &catalog.Filter{Type: catalog.TypeUnit, MaxCost: &maxCost},
	}

	var counts [3]int
	for i := 0; i < trials; i++ {
		board := zones.NewBoard()
		p0 := board.Player(zones.Player0)
		for _, id := range []string{"u005", "s001", "u004", "s002"} {
			c, err := factory.CreateInstance(id, zones.Player0)
			require.NoError(t, err)
			p0.Deck = append(p0.Deck, c)
		}
		ctx := &Context{Board: board, TurnSeq: 1, RNG: rng}

		require.True(t, in.Resolve(ctx, zones.Player0, eff, zones.NoTarget).Applied)
		require.Len(t, p0.Hand, 1)
		require.Equal(t, "u004", p0.Hand[0].CardID())
		require.Len(t, p0.Deck, 3)
		for pos, c := range p0.Deck {
			if c.CardID() == "u005" {
				counts[pos]++
			}
		}
	}
	for pos, n := range counts {
		assert.InDelta(t, trials/3, n, 150, "position %d", pos)
	}
}

func TestResolveAllKeepsOrder(t *testing.T) {
	h := newHarness(t)
	h.deck(zones.Player0, "u001", "u002")
	effs := []catalog.EffectDefinition{
		{Action: catalog.ActionDraw, Amount: 1},
		{Action: catalog.ActionActivate},
		{Action: catalog.ActionDestroyUnit, Target: catalog.TargetEnemyUnit},
	}

	outs := h.in.ResolveAll(h.ctx, zones.Player0, effs, zones.SlotTarget(0))
	require.Len(t, outs, 3)
	assert.True(t, outs[0].Applied)
	assert.True(t, outs[1].Applied)
	assert.False(t, outs[2].Applied)
	assert.Equal(t, catalog.ActionDestroyUnit, outs[2].Action)
}

// No effect ever corrupts the zone invariants, whatever the target.
func TestEffectsPreserveBoardInvariants(t *testing.T) {
	for _, action := range catalog.EffectActions() {
		t.Run(string(action), func(t *testing.T) {
			h := newHarness(t)
			h.deck(zones.Player0, "u001", "u002", "u007", "s001")
			h.deck(zones.Player1, "u003", "u004")
			h.unit("u002", zones.Player0, 0)
			h.unit("u005", zones.Player1, 0)
			require.NoError(t, h.board.Player(zones.Player0).MoveToEnergy(h.card("u009", zones.Player0)))

			eff := catalog.EffectDefinition{
				Action: action,
				Amount: 1,
				Target: catalog.TargetEnemyUnit,
				Filter: &catalog.Filter{Type: catalog.TypeUnit},
			}
			for _, target := range []zones.Target{zones.NoTarget, zones.SlotTarget(0), zones.SlotTarget(4), zones.SlotTarget(-1)} {
				h.resolve(zones.Player0, eff, target)
				require.NoError(t, h.board.Validate())
			}
		})
	}
}
