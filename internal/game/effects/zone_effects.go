package effects

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// resolveDraw draws Amount cards. A keyword filter makes the draw conditional
// on the actor controlling a unit with that keyword.
func resolveDraw(ctx *Context, actor string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	if eff.Filter != nil && eff.Filter.Keyword != "" && !controlsKeyword(ctx.Board.Player(actor), eff.Filter.Keyword) {
		return fizzled(eff.Action, "no unit with "+string(eff.Filter.Keyword))
	}
	if drawCards(ctx, actor, eff.Amount) == 0 {
		return fizzled(eff.Action, "deck empty")
	}
	return applied(eff.Action)
}

func controlsKeyword(p *zones.PlayerState, kw catalog.Keyword) bool {
	for _, c := range p.Battle {
		if c != nil && c.HasKeyword(kw) {
			return true
		}
	}
	return false
}

func drawCards(ctx *Context, playerID string, n int) int {
	p := ctx.Board.Player(playerID)
	drawn := 0
	for i := 0; i < n; i++ {
		card, ok := p.Draw()
		if !ok {
			break
		}
		drawn++
		ctx.emit(rules.NewEvent(rules.EventCardDrawn, playerID, card.CardID(), card.InstanceID))
	}
	return drawn
}

func resolveDamagePlayer(ctx *Context, actor string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	victim := zones.Opponent(actor)
	if eff.Target == catalog.TargetSelf {
		victim = actor
	}
	taken := ctx.Board.Player(victim).DealDamage(eff.Amount)
	if taken == 0 {
		return fizzled(eff.Action, "no life left")
	}
	evt := rules.NewEventWithAmount(rules.EventDamageDealt, victim, "", "", taken)
	evt.Metadata["actor"] = actor
	ctx.emit(evt)
	return applied(eff.Action)
}

func resolveHealPlayer(ctx *Context, actor string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	healed := ctx.Board.Player(actor).Heal(eff.Amount)
	if healed == 0 {
		return fizzled(eff.Action, "deck empty")
	}
	ctx.emit(rules.NewEventWithAmount(rules.EventLifeHealed, actor, "", "", healed))
	return applied(eff.Action)
}

// resolveMill mills the actor's own deck unless the effect names the opponent.
func resolveMill(ctx *Context, actor string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	victim := actor
	if eff.Target == catalog.TargetOpponent {
		victim = zones.Opponent(actor)
	}
	moved := ctx.Board.Player(victim).Mill(eff.Amount)
	if moved == 0 {
		return fizzled(eff.Action, "deck empty")
	}
	ctx.emit(rules.NewEventWithAmount(rules.EventCardsMilled, victim, "", "", moved))
	return applied(eff.Action)
}

// resolveReturnGraveUnits returns up to Amount units from the top of the
// actor's graveyard to the hand.
func resolveReturnGraveUnits(ctx *Context, actor string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	p := ctx.Board.Player(actor)
	returned := 0
	for i := len(p.Graveyard) - 1; i >= 0 && returned < eff.Amount; i-- {
		if !p.Graveyard[i].IsUnit() {
			continue
		}
		card, err := p.TakeFromGraveyard(i)
		if err != nil {
			break
		}
		card.Tapped = false
		card.CanAttack = false
		p.MoveToHand(card)
		returned++
		ctx.emit(rules.NewEvent(rules.EventGraveReturned, actor, card.CardID(), card.InstanceID))
	}
	if returned == 0 {
		return fizzled(eff.Action, "no units in graveyard")
	}
	return applied(eff.Action)
}

// resolveSummonFromDeck puts the first matching unit from the deck into the
// first empty slot. The deck is shuffled afterwards when requested, even if
// nothing matched.
func resolveSummonFromDeck(ctx *Context, actor string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	p := ctx.Board.Player(actor)
	slot := p.FirstEmptySlot()
	if slot < 0 {
		return fizzled(eff.Action, "battle zone full")
	}
	if eff.Filter == nil {
		return fizzled(eff.Action, "no filter")
	}
	idx := findInDeck(p, eff.Filter, true)
	defer shuffleIf(ctx, actor, eff.Shuffle)
	if idx < 0 {
		return fizzled(eff.Action, "no matching unit in deck")
	}

	unit, err := p.TakeFromDeck(idx)
	if err != nil {
		return fizzled(eff.Action, err.Error())
	}
	unit.Tapped = false
	unit.CanAttack = unit.HasKeyword(catalog.KeywordRush)
	if err := p.MoveToBattleSlot(unit, slot); err != nil {
		return fizzled(eff.Action, err.Error())
	}
	evt := unitEvent(rules.EventUnitSummoned, actor, unit, slot)
	evt.Metadata["from"] = "deck"
	ctx.emit(evt)
	return applied(eff.Action)
}

// resolveSearchDeck moves the first matching card from the deck to the hand.
func resolveSearchDeck(ctx *Context, actor string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	if eff.Filter == nil {
		return fizzled(eff.Action, "no filter")
	}
	p := ctx.Board.Player(actor)
	idx := findInDeck(p, eff.Filter, false)
	defer shuffleIf(ctx, actor, eff.Shuffle)
	if idx < 0 {
		return fizzled(eff.Action, "no matching card in deck")
	}
	card, err := p.TakeFromDeck(idx)
	if err != nil {
		return fizzled(eff.Action, err.Error())
	}
	p.MoveToHand(card)
	ctx.emit(rules.NewEvent(rules.EventDeckSearched, actor, card.CardID(), card.InstanceID))
	return applied(eff.Action)
}

func findInDeck(p *zones.PlayerState, f *catalog.Filter, unitsOnly bool) int {
	for i, c := range p.Deck {
		if unitsOnly && !c.IsUnit() {
			continue
		}
		if c.Matches(f) {
			return i
		}
	}
	return -1
}

func shuffleIf(ctx *Context, playerID string, shuffle bool) {
	if !shuffle || ctx.RNG == nil {
		return
	}
	zones.Shuffle(ctx.Board.Player(playerID).Deck, ctx.RNG)
	ctx.emit(rules.NewEvent(rules.EventDeckShuffled, playerID, "", ""))
}
