package game

import (
	"fmt"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// ActionType names one entry of the closed action set.
type ActionType string

const (
	ActionPlaceEnergy        ActionType = "PLACE_ENERGY"
	ActionSummonUnit         ActionType = "SUMMON_UNIT"
	ActionCastSpell          ActionType = "CAST_SPELL"
	ActionCastInstant        ActionType = "CAST_INSTANT"
	ActionActivateUnitEffect ActionType = "ACTIVATE_UNIT_EFFECT"
	ActionDeclareAttack      ActionType = "DECLARE_ATTACK"
	ActionPassResponse       ActionType = "PASS_RESPONSE"
	ActionSkipBlock          ActionType = "SKIP_BLOCK"
	ActionDeclareBlock       ActionType = "DECLARE_BLOCK"
	ActionReturnEnergy       ActionType = "RETURN_ENERGY_TO_HAND"
	ActionEndDeployment      ActionType = "END_DEPLOYMENT"
	ActionEndTurn            ActionType = "END_TURN"
)

// Action is a request submitted by a player. Index is the hand, battle-slot
// or energy index the action operates on, depending on its type.
type Action struct {
	Type         ActionType
	PlayerID     string
	Index        int
	TargetSlot   *int
	TargetPlayer string
}

// Target returns the action's optional effect target.
func (a Action) Target() zones.Target {
	if a.TargetSlot == nil {
		return zones.Target{PlayerID: a.TargetPlayer}
	}
	slot := *a.TargetSlot
	return zones.Target{Slot: &slot, PlayerID: a.TargetPlayer}
}

// WithTarget returns a copy aimed at slot, owned by playerID when non-empty.
func (a Action) WithTarget(slot int, playerID string) Action {
	a.TargetSlot = &slot
	a.TargetPlayer = playerID
	return a
}

func (a Action) String() string {
	s := fmt.Sprintf("%s(player=%s index=%d", a.Type, a.PlayerID, a.Index)
	if a.TargetSlot != nil {
		s += fmt.Sprintf(" target_slot=%d", *a.TargetSlot)
	}
	if a.TargetPlayer != "" {
		s += " target_player=" + a.TargetPlayer
	}
	return s + ")"
}

func PlaceEnergy(playerID string, handIndex int) Action {
	return Action{Type: ActionPlaceEnergy, PlayerID: playerID, Index: handIndex}
}

func SummonUnit(playerID string, handIndex int) Action {
	return Action{Type: ActionSummonUnit, PlayerID: playerID, Index: handIndex}
}

func CastSpell(playerID string, handIndex int) Action {
	return Action{Type: ActionCastSpell, PlayerID: playerID, Index: handIndex}
}

func CastInstant(playerID string, handIndex int) Action {
	return Action{Type: ActionCastInstant, PlayerID: playerID, Index: handIndex}
}

func ActivateUnitEffect(playerID string, slot int) Action {
	return Action{Type: ActionActivateUnitEffect, PlayerID: playerID, Index: slot}
}

func DeclareAttack(playerID string, attackerSlot int) Action {
	return Action{Type: ActionDeclareAttack, PlayerID: playerID, Index: attackerSlot}
}

func PassResponse(playerID string) Action {
	return Action{Type: ActionPassResponse, PlayerID: playerID}
}

func SkipBlock(playerID string) Action {
	return Action{Type: ActionSkipBlock, PlayerID: playerID}
}

func DeclareBlock(playerID string, blockerSlot int) Action {
	return Action{Type: ActionDeclareBlock, PlayerID: playerID, Index: blockerSlot}
}

func ReturnEnergyToHand(playerID string, energyIndex int) Action {
	return Action{Type: ActionReturnEnergy, PlayerID: playerID, Index: energyIndex}
}

func EndDeployment(playerID string) Action {
	return Action{Type: ActionEndDeployment, PlayerID: playerID}
}

func EndTurn(playerID string) Action {
	return Action{Type: ActionEndTurn, PlayerID: playerID}
}
