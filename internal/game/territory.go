package game

import (
	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// territoryDamage is the power removed by the Volcanic Rift reveal.
const territoryDamage = 2000

type territoryTrigger func(ap *applier, owner string, card *zones.CardInstance)

// territoryTriggers maps territory ids to their reveal effects. Ids without
// an entry have no trigger.
var territoryTriggers = map[string]territoryTrigger{
	"t001": revealDraw,
	"t002": revealReturnGraveUnit,
	"t004": revealScorchEnemy,
}

// revealTerritory flips the owner's next territory into the shared zone.
func (ap *applier) revealTerritory(owner string) {
	card, replaced := ap.st.Board.RevealTerritory(owner)
	if card == nil {
		return
	}
	if replaced {
		era := ap.st.Turn.AdvanceEra()
		ap.emit(rules.NewEventWithAmount(rules.EventEraAdvanced, owner, card.CardID(), card.InstanceID, era))
	}
	ap.emit(rules.NewEvent(rules.EventTerritoryRevealed, owner, card.CardID(), card.InstanceID))

	if trigger, ok := territoryTriggers[card.CardID()]; ok {
		trigger(ap, owner, card)
	}
}

func revealDraw(ap *applier, owner string, card *zones.CardInstance) {
	ap.interp.Resolve(ap.effectContext(), owner, catalog.EffectDefinition{
		Action: catalog.ActionDraw,
		Amount: 1,
		Target: catalog.TargetSelf,
	}, zones.NoTarget)
}

// revealReturnGraveUnit returns a random unit from the owner's graveyard.
func revealReturnGraveUnit(ap *applier, owner string, card *zones.CardInstance) {
	p := ap.st.Player(owner)
	var candidates []int
	for i, c := range p.Graveyard {
		if c.IsUnit() {
			candidates = append(candidates, i)
		}
	}
	idx := zones.Pick(candidates, ap.st.rng)
	if idx < 0 {
		return
	}
	unit, err := p.TakeFromGraveyard(idx)
	if err != nil {
		return
	}
	unit.Tapped = false
	unit.CanAttack = false
	p.MoveToHand(unit)
	ap.emit(rules.NewEvent(rules.EventGraveReturned, owner, unit.CardID(), unit.InstanceID))
}

// revealScorchEnemy damages a random opposing unit, destroying it at zero power.
func revealScorchEnemy(ap *applier, owner string, card *zones.CardInstance) {
	opp := ap.st.Player(zones.Opponent(owner))
	slot := zones.Pick(opp.Units(), ap.st.rng)
	if slot < 0 {
		return
	}
	unit := opp.Battle[slot]
	unit.CurrentPower -= territoryDamage
	evt := rules.NewEventWithAmount(rules.EventUnitDamaged, opp.ID, card.CardID(), unit.InstanceID, territoryDamage)
	evt.Slot = slot
	ap.emit(evt)
	if unit.CurrentPower > 0 {
		return
	}
	if _, err := opp.TakeFromBattle(slot); err != nil {
		return
	}
	opp.MoveToGraveyard(unit)
	destroyed := rules.NewEvent(rules.EventUnitDestroyed, opp.ID, unit.CardID(), unit.InstanceID)
	destroyed.Slot = slot
	destroyed.Metadata["cause"] = "territory"
	ap.emit(destroyed)
}
