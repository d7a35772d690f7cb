// Package catalog holds the immutable card definitions the engine loads by identifier.
package catalog

import "strings"

// CardType is the rules type of a card.
type CardType string

const (
	TypeUnit         CardType = "UNIT"
	TypeSpell        CardType = "SPELL"
	TypeSpellInstant CardType = "SPELL_INSTANT"
	TypeTerritory    CardType = "TERRITORY"
)

// Valid reports whether t is one of the known card types.
func (t CardType) Valid() bool {
	switch t {
	case TypeUnit, TypeSpell, TypeSpellInstant, TypeTerritory:
		return true
	}
	return false
}

// IsSpell is true for both sorcery-speed and instant spells.
func (t CardType) IsSpell() bool {
	return t == TypeSpell || t == TypeSpellInstant
}

// Keyword is a printed or granted card keyword.
type Keyword string

const (
	KeywordRush  Keyword = "RUSH"
	KeywordGuard Keyword = "GUARD"
	KeywordFlash Keyword = "FLASH"
)

// EffectAction is the tagged kind of an effect descriptor.
type EffectAction string

const (
	ActionDraw               EffectAction = "DRAW"
	ActionDamagePlayer       EffectAction = "DAMAGE_PLAYER"
	ActionHealPlayer         EffectAction = "HEAL_PLAYER"
	ActionDestroyUnit        EffectAction = "DESTROY_UNIT"
	ActionSilenceUnit        EffectAction = "SILENCE_UNIT"
	ActionMoveUnitToEnergy   EffectAction = "MOVE_UNIT_TO_ENERGY"
	ActionBounceUnit         EffectAction = "BOUNCE_UNIT"
	ActionBuffUnitBP         EffectAction = "BUFF_UNIT_BP"
	ActionUntapUnit          EffectAction = "UNTAP_UNIT"
	ActionMill               EffectAction = "MILL"
	ActionReturnGraveUnits   EffectAction = "RETURN_GRAVE_UNITS"
	ActionConditionalDestroy EffectAction = "CONDITIONAL_DESTROY"
	ActionSummonFromEnergy   EffectAction = "SUMMON_FROM_ENERGY"
	ActionSummonFromDeck     EffectAction = "SUMMON_FROM_DECK"
	ActionSearchDeck         EffectAction = "SEARCH_DECK"
	ActionActivate           EffectAction = "ACTIVATE"

	// Legacy aliases accepted in raw catalog records and normalised on load.
	ActionDamageEnemy EffectAction = "DAMAGE_ENEMY"
	ActionBuffAtk     EffectAction = "BUFF_ATK"
)

var effectActions = []EffectAction{
	ActionDraw,
	ActionDamagePlayer,
	ActionHealPlayer,
	ActionDestroyUnit,
	ActionSilenceUnit,
	ActionMoveUnitToEnergy,
	ActionBounceUnit,
	ActionBuffUnitBP,
	ActionUntapUnit,
	ActionMill,
	ActionReturnGraveUnits,
	ActionConditionalDestroy,
	ActionSummonFromEnergy,
	ActionSummonFromDeck,
	ActionSearchDeck,
	ActionActivate,
}

// EffectActions returns every canonical effect kind.
func EffectActions() []EffectAction {
	out := make([]EffectAction, len(effectActions))
	copy(out, effectActions)
	return out
}

// Valid reports whether a is a canonical effect kind.
func (a EffectAction) Valid() bool {
	for _, known := range effectActions {
		if a == known {
			return true
		}
	}
	return false
}

// TargetSpec declares who or what an effect is aimed at.
type TargetSpec string

const (
	TargetNone      TargetSpec = "NONE"
	TargetSelf      TargetSpec = "SELF"
	TargetOpponent  TargetSpec = "OPPONENT"
	TargetAllyUnit  TargetSpec = "ALLY_UNIT"
	TargetEnemyUnit TargetSpec = "ENEMY_UNIT"
	TargetAnyUnit   TargetSpec = "ANY_UNIT"
)

// Valid reports whether t is a known target specifier.
func (t TargetSpec) Valid() bool {
	switch t {
	case TargetNone, TargetSelf, TargetOpponent, TargetAllyUnit, TargetEnemyUnit, TargetAnyUnit:
		return true
	}
	return false
}

// Trigger says when an effect on a unit fires.
type Trigger string

const (
	TriggerEnter    Trigger = "ENTER"
	TriggerActivate Trigger = "ACTIVATE"
)

// Valid reports whether t is a known trigger.
func (t Trigger) Valid() bool {
	return t == TriggerEnter || t == TriggerActivate
}

// Filter narrows a deck or board scan. All set fields are AND-combined.
type Filter struct {
	Type         CardType
	ID           string
	NameIncludes string
	Keyword      Keyword
	Cost         *int
	MaxCost      *int
}

// Matches reports whether a card with the given definition and effective
// keyword set satisfies every set field of the filter.
func (f *Filter) Matches(def *CardDefinition, keywords []Keyword) bool {
	if f == nil || def == nil {
		return false
	}
	if f.ID != "" && def.ID != f.ID {
		return false
	}
	if f.Type != "" && def.Type != f.Type {
		return false
	}
	if f.Keyword != "" && !containsKeyword(keywords, f.Keyword) {
		return false
	}
	if f.NameIncludes != "" && !strings.Contains(strings.ToLower(def.Name), strings.ToLower(f.NameIncludes)) {
		return false
	}
	if f.Cost != nil && def.Cost != *f.Cost {
		return false
	}
	if f.MaxCost != nil && def.Cost > *f.MaxCost {
		return false
	}
	return true
}

// EffectDefinition is one declarative entry of a card's effect list.
type EffectDefinition struct {
	Action    EffectAction
	Amount    int
	Target    TargetSpec
	Trigger   Trigger
	Filter    *Filter
	Shuffle   bool
	Condition string
	Threshold int
	GrantRush bool
}

// CardDefinition is the immutable catalog record for a card. It is shared by
// pointer across every instance with the same identifier and must not be mutated.
type CardDefinition struct {
	ID          string
	Name        string
	Type        CardType
	Cost        int
	BasePower   int
	Keywords    []Keyword
	Description string
	Image       string
	Effects     []EffectDefinition
}

// HasPower reports whether the card carries a base power value.
func (d *CardDefinition) HasPower() bool {
	return d.Type == TypeUnit
}

// HasKeyword reports whether the printed keyword set contains k.
func (d *CardDefinition) HasKeyword(k Keyword) bool {
	return containsKeyword(d.Keywords, k)
}

// EffectsFor returns the effects fired by the given trigger, skipping ACTIVATE markers.
func (d *CardDefinition) EffectsFor(trigger Trigger) []EffectDefinition {
	out := make([]EffectDefinition, 0, len(d.Effects))
	for _, eff := range d.Effects {
		if eff.Action == ActionActivate {
			continue
		}
		if eff.Trigger == trigger {
			out = append(out, eff)
		}
	}
	return out
}

// HasActivateEffect reports whether the card has an ACTIVATE-tagged effect.
func (d *CardDefinition) HasActivateEffect() bool {
	for _, eff := range d.Effects {
		if eff.Action == ActionActivate || eff.Trigger == TriggerActivate {
			return true
		}
	}
	return false
}

func containsKeyword(keywords []Keyword, k Keyword) bool {
	for _, kw := range keywords {
		if kw == k {
			return true
		}
	}
	return false
}
