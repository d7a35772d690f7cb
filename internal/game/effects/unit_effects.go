package effects

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

func resolveDestroyUnit(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	owner := unitOwner(actor, eff, target, zones.Opponent(actor))
	if !destroyTarget(ctx, actor, owner, target) {
		return fizzled(eff.Action, "no unit in target slot")
	}
	return applied(eff.Action)
}

// destroyTarget moves the targeted unit to its owner's graveyard.
func destroyTarget(ctx *Context, actor, owner string, target zones.Target) bool {
	p, slot, unit := targetUnit(ctx, owner, target)
	if unit == nil {
		return false
	}
	if _, err := p.TakeFromBattle(slot); err != nil {
		return false
	}
	p.MoveToGraveyard(unit)
	ctx.emit(unitEvent(rules.EventUnitDestroyed, actor, unit, slot))
	return true
}

func resolveSilenceUnit(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	owner := unitOwner(actor, eff, target, zones.Opponent(actor))
	_, slot, unit := targetUnit(ctx, owner, target)
	if unit == nil {
		return fizzled(eff.Action, "no unit in target slot")
	}
	unit.SilencedTurn = ctx.TurnSeq
	ctx.emit(unitEvent(rules.EventUnitSilenced, actor, unit, slot))
	return applied(eff.Action)
}

// resolveMoveUnitToEnergy parks the target in its owner's energy zone. When
// that zone is full the unit is destroyed and the actor draws Amount instead.
func resolveMoveUnitToEnergy(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	owner := unitOwner(actor, eff, target, zones.Opponent(actor))
	p, slot, unit := targetUnit(ctx, owner, target)
	if unit == nil {
		return fizzled(eff.Action, "no unit in target slot")
	}
	if _, err := p.TakeFromBattle(slot); err != nil {
		return fizzled(eff.Action, err.Error())
	}
	unit.CanAttack = false
	if err := p.MoveToEnergy(unit); err == nil {
		ctx.emit(unitEvent(rules.EventUnitToEnergy, actor, unit, slot))
		return applied(eff.Action)
	}

	p.MoveToGraveyard(unit)
	ctx.emit(unitEvent(rules.EventUnitDestroyed, actor, unit, slot))
	if eff.Amount > 0 {
		drawCards(ctx, actor, eff.Amount)
	}
	return applied(eff.Action)
}

func resolveBounceUnit(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	owner := unitOwner(actor, eff, target, zones.Opponent(actor))
	p, slot, unit := targetUnit(ctx, owner, target)
	if unit == nil {
		return fizzled(eff.Action, "no unit in target slot")
	}
	if _, err := p.TakeFromBattle(slot); err != nil {
		return fizzled(eff.Action, err.Error())
	}
	unit.Tapped = false
	unit.CanAttack = false
	p.MoveToHand(unit)
	ctx.emit(unitEvent(rules.EventUnitBounced, actor, unit, slot))
	return applied(eff.Action)
}

// resolveBuffUnit raises power by Amount. Without a slot a SELF buff pumps
// every unit the actor controls.
func resolveBuffUnit(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	if !target.HasSlot() {
		if eff.Target != catalog.TargetSelf {
			return fizzled(eff.Action, "no target slot")
		}
		p := ctx.Board.Player(actor)
		slots := p.Units()
		if len(slots) == 0 {
			return fizzled(eff.Action, "no units to buff")
		}
		for _, slot := range slots {
			buff(ctx, actor, p.Battle[slot], slot, eff.Amount)
		}
		return applied(eff.Action)
	}

	owner := unitOwner(actor, eff, target, actor)
	_, slot, unit := targetUnit(ctx, owner, target)
	if unit == nil {
		return fizzled(eff.Action, "no unit in target slot")
	}
	buff(ctx, actor, unit, slot, eff.Amount)
	return applied(eff.Action)
}

func buff(ctx *Context, actor string, unit *zones.CardInstance, slot, amount int) {
	unit.CurrentPower += amount
	evt := unitEvent(rules.EventUnitBuffed, actor, unit, slot)
	evt.Amount = amount
	ctx.emit(evt)
}

func resolveUntapUnit(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	owner := actor
	if target.PlayerID != "" && zones.ValidPlayer(target.PlayerID) {
		owner = target.PlayerID
	}
	_, slot, unit := targetUnit(ctx, owner, target)
	if unit == nil {
		return fizzled(eff.Action, "no unit in target slot")
	}
	unit.Tapped = false
	ctx.emit(unitEvent(rules.EventUnitUntapped, actor, unit, slot))
	return applied(eff.Action)
}

// resolveConditionalDestroy destroys the target only while the opponent's
// graveyard holds no unit costing Threshold or more.
func resolveConditionalDestroy(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	opp := ctx.Board.Player(zones.Opponent(actor))
	for _, c := range opp.Graveyard {
		if c.IsUnit() && c.Cost() >= eff.Threshold {
			return fizzled(eff.Action, "condition not met")
		}
	}
	owner := unitOwner(actor, eff, target, zones.Opponent(actor))
	if !destroyTarget(ctx, actor, owner, target) {
		return fizzled(eff.Action, "no unit in target slot")
	}
	return applied(eff.Action)
}

// resolveSummonFromEnergy brings a unit from the actor's energy zone into
// the first empty slot, untapped and buffed by Amount.
func resolveSummonFromEnergy(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	p := ctx.Board.Player(actor)
	slot := p.FirstEmptySlot()
	if slot < 0 {
		return fizzled(eff.Action, "battle zone full")
	}

	idx := -1
	if target.HasSlot() {
		i := target.SlotIndex()
		if i >= 0 && i < len(p.Energy) && p.Energy[i].IsUnit() {
			idx = i
		}
	} else {
		for i, c := range p.Energy {
			if c.IsUnit() {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return fizzled(eff.Action, "no unit in energy zone")
	}

	unit, err := p.TakeFromEnergy(idx)
	if err != nil {
		return fizzled(eff.Action, err.Error())
	}
	unit.CurrentPower += eff.Amount
	unit.Tapped = false
	if eff.GrantRush {
		unit.GrantKeyword(catalog.KeywordRush)
	}
	unit.CanAttack = unit.HasKeyword(catalog.KeywordRush)
	if err := p.MoveToBattleSlot(unit, slot); err != nil {
		return fizzled(eff.Action, err.Error())
	}
	evt := unitEvent(rules.EventUnitSummoned, actor, unit, slot)
	evt.Metadata["from"] = "energy"
	ctx.emit(evt)
	return applied(eff.Action)
}

func resolveActivateMarker(_ *Context, _ string, eff catalog.EffectDefinition, _ zones.Target) Outcome {
	return applied(eff.Action)
}
