package game

import (
	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// handCard returns the hand card at idx without removing it.
func handCard(p *zones.PlayerState, idx int) (*zones.CardInstance, error) {
	if idx < 0 || idx >= len(p.Hand) {
		return nil, gameerr.Illegal(gameerr.CodeInvalidIndex, "hand index %d out of range (len %d)", idx, len(p.Hand))
	}
	return p.Hand[idx], nil
}

// affordable checks the energy requirement. Energy is counted, never spent.
func affordable(p *zones.PlayerState, card *zones.CardInstance) error {
	if len(p.Energy) < card.Cost() {
		return gameerr.Illegal(gameerr.CodeInsufficientEnergy, "%s costs %d, only %d energy", card.Name(), card.Cost(), len(p.Energy))
	}
	return nil
}

func (ap *applier) placeEnergy(a Action) error {
	p := ap.st.Player(a.PlayerID)
	if p.EnergyPlaced {
		return gameerr.Illegal(gameerr.CodeEnergyAlreadyPlaced, "energy already placed this turn")
	}
	if len(p.Energy) >= zones.EnergyCap {
		return gameerr.Illegal(gameerr.CodeEnergyZoneFull, "energy zone already holds %d cards", zones.EnergyCap)
	}
	card, err := p.TakeFromHand(a.Index)
	if err != nil {
		return err
	}
	if err := p.MoveToEnergy(card); err != nil {
		return err
	}
	card.CanAttack = false
	p.EnergyPlaced = true
	ap.emit(rules.NewEvent(rules.EventEnergyPlaced, a.PlayerID, card.CardID(), card.InstanceID))
	return nil
}

// summonUnit puts a unit into the first empty slot. ENTER effects resolve at
// once with no response window.
func (ap *applier) summonUnit(a Action) error {
	p := ap.st.Player(a.PlayerID)
	card, err := handCard(p, a.Index)
	if err != nil {
		return err
	}
	if !card.IsUnit() {
		return gameerr.Illegal(gameerr.CodeWrongCardType, "%s is a %s, not a unit", card.Name(), card.Type())
	}
	if err := affordable(p, card); err != nil {
		return err
	}
	slot := p.FirstEmptySlot()
	if slot < 0 {
		return gameerr.Illegal(gameerr.CodeNoEmptySlot, "battle zone is full")
	}

	if _, err := p.TakeFromHand(a.Index); err != nil {
		return err
	}
	rush := card.HasKeyword(catalog.KeywordRush)
	card.Tapped = !rush
	card.CanAttack = rush
	if err := p.MoveToBattleSlot(card, slot); err != nil {
		return err
	}
	evt := rules.NewEvent(rules.EventUnitSummoned, a.PlayerID, card.CardID(), card.InstanceID)
	evt.Slot = slot
	ap.emit(evt)

	ap.interp.ResolveAll(ap.effectContext(), a.PlayerID, card.Definition.EffectsFor(catalog.TriggerEnter), zones.NoTarget)
	return nil
}

// castSpell sends the spell to the graveyard and opens a response window for
// its effects, even when it has none.
func (ap *applier) castSpell(a Action) error {
	p := ap.st.Player(a.PlayerID)
	card, err := handCard(p, a.Index)
	if err != nil {
		return err
	}
	if !card.Type().IsSpell() {
		return gameerr.Illegal(gameerr.CodeWrongCardType, "%s is a %s, not a spell", card.Name(), card.Type())
	}
	if err := affordable(p, card); err != nil {
		return err
	}
	if !ap.st.Pending.IsEmpty() {
		return gameerr.Illegal(gameerr.CodeActionPending, "a %s is already pending", ap.st.Pending.Peek().Kind())
	}
	if _, err := p.TakeFromHand(a.Index); err != nil {
		return err
	}
	p.MoveToGraveyard(card)
	ap.emit(rules.NewEvent(rules.EventSpellCast, a.PlayerID, card.CardID(), card.InstanceID))
	return ap.recordEffect(rules.SourceSpell, a, card, card.Definition.EffectsFor(catalog.TriggerEnter))
}

// castInstant answers an open window by resolving at once, leaving whatever
// is pending untouched. Cast by the turn owner with nothing pending it
// behaves like a spell and opens a window of its own.
func (ap *applier) castInstant(a Action) error {
	p := ap.st.Player(a.PlayerID)
	card, err := handCard(p, a.Index)
	if err != nil {
		return err
	}
	if card.Type() != catalog.TypeSpellInstant {
		return gameerr.Illegal(gameerr.CodeWrongCardType, "%s is a %s, not an instant", card.Name(), card.Type())
	}
	if err := affordable(p, card); err != nil {
		return err
	}
	if _, err := p.TakeFromHand(a.Index); err != nil {
		return err
	}
	p.MoveToGraveyard(card)
	evt := rules.NewEvent(rules.EventInstantCast, a.PlayerID, card.CardID(), card.InstanceID)

	effs := card.Definition.EffectsFor(catalog.TriggerEnter)
	if !ap.st.Pending.IsEmpty() {
		evt.Metadata["chained_to"] = string(ap.st.Pending.Peek().Kind())
		ap.emit(evt)
		ap.interp.ResolveAll(ap.effectContext(), a.PlayerID, effs, a.Target())
		return nil
	}
	ap.emit(evt)
	return ap.recordEffect(rules.SourceSpell, a, card, effs)
}

// activateUnitEffect taps the unit and records its ACTIVATE effects.
func (ap *applier) activateUnitEffect(a Action) error {
	p := ap.st.Player(a.PlayerID)
	unit := p.Unit(a.Index)
	if unit == nil {
		if a.Index < 0 || a.Index >= zones.BattleSlots {
			return gameerr.Illegal(gameerr.CodeInvalidIndex, "battle slot %d out of range", a.Index)
		}
		return gameerr.Illegal(gameerr.CodeEmptySlot, "battle slot %d is empty", a.Index)
	}
	if unit.Tapped {
		return gameerr.Illegal(gameerr.CodeUnitTapped, "%s is tapped", unit.Name())
	}
	if !unit.Definition.HasActivateEffect() {
		return gameerr.Illegal(gameerr.CodeNoActivateEffect, "%s has no activated effect", unit.Name())
	}
	if unit.IsSilencedDuring(ap.st.Turn.TurnSeq()) {
		return gameerr.Illegal(gameerr.CodeUnitSilenced, "%s is silenced this turn", unit.Name())
	}
	if !ap.st.Pending.IsEmpty() {
		return gameerr.Illegal(gameerr.CodeActionPending, "a %s is already pending", ap.st.Pending.Peek().Kind())
	}

	unit.Tapped = true
	evt := rules.NewEvent(rules.EventUnitActivated, a.PlayerID, unit.CardID(), unit.InstanceID)
	evt.Slot = a.Index
	ap.emit(evt)
	return ap.recordEffect(rules.SourceUnitEffect, a, unit, unit.Definition.EffectsFor(catalog.TriggerActivate))
}

// recordEffect stores a pending effect and hands the opponent the response window.
func (ap *applier) recordEffect(source rules.EffectSource, a Action, card *zones.CardInstance, effs []catalog.EffectDefinition) error {
	pending := &rules.PendingEffect{
		Source:     source,
		PlayerID:   a.PlayerID,
		InstanceID: card.InstanceID,
		CardID:     card.CardID(),
		CardName:   card.Name(),
		Effects:    effs,
		Target:     a.Target(),
	}
	if err := ap.st.Pending.Set(pending); err != nil {
		return err
	}
	evt := rules.NewEvent(rules.EventPendingOpened, a.PlayerID, card.CardID(), card.InstanceID)
	evt.Metadata["kind"] = string(rules.PendingKindEffect)
	evt.Metadata["source"] = string(source)
	ap.emit(evt)
	ap.openWindow(a.PlayerID, rules.StageResponse)
	return nil
}

// passResponse closes the window. With nothing pending it only returns to
// turn-default play.
func (ap *applier) passResponse(a Action) error {
	ap.emit(rules.NewEvent(rules.EventResponsePassed, a.PlayerID, "", ""))

	switch item := ap.st.Pending.Peek().(type) {
	case *rules.PendingEffect:
		ap.st.Pending.Take()
		ap.logger.Debug("resolving pending effect",
			zap.String("match_id", ap.st.MatchID),
			zap.String("player_id", item.PlayerID),
			zap.String("card_id", item.CardID),
			zap.Int("effects", len(item.Effects)),
		)
		ap.interp.ResolveAll(ap.effectContext(), item.PlayerID, item.Effects, item.Target)
		ap.emit(rules.NewEvent(rules.EventPendingResolved, item.PlayerID, item.CardID, item.InstanceID))
		ap.clearStages()
		return nil
	case *rules.PendingAttack:
		ap.st.Pending.Take()
		return ap.resolveAttack(item.AttackRef)
	case *rules.CombatState:
		return gameerr.Invariant("response window open during combat")
	}
	ap.clearStages()
	return nil
}

// returnEnergyToHand moves one energy card back to the hand during deployment.
func (ap *applier) returnEnergyToHand(a Action) error {
	p := ap.st.Player(a.PlayerID)
	card, err := p.TakeFromEnergy(a.Index)
	if err != nil {
		return err
	}
	card.Tapped = false
	p.MoveToHand(card)
	ap.emit(rules.NewEvent(rules.EventEnergyReturned, a.PlayerID, card.CardID(), card.InstanceID))
	return nil
}

func (ap *applier) endDeployment(a Action) error {
	ap.st.Stages.Clear()
	ap.emit(rules.NewEvent(rules.EventDeploymentEnded, a.PlayerID, "", ""))
	return nil
}
