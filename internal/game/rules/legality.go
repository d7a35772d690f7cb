package rules

import (
	"fmt"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// LegalityChecker validates that the units a pending item refers to are still in place.
type LegalityChecker struct {
	board BoardAccessor
}

// BoardAccessor provides the board lookups needed for legality checks.
type BoardAccessor interface {
	// Unit returns the unit in playerID's battle slot, or nil.
	Unit(playerID string, slot int) *zones.CardInstance
}

// LegalityResult represents the result of a legality check.
type LegalityResult struct {
	Legal   bool
	Reason  string
	Details map[string]string
}

// NewLegalityChecker creates a new legality checker.
func NewLegalityChecker(board BoardAccessor) *LegalityChecker {
	return &LegalityChecker{board: board}
}

// CheckAttacker reports whether the attacker named by ref still occupies its slot.
// A unit that left and a different unit that took the slot both make the attack illegal.
func (lc *LegalityChecker) CheckAttacker(ref AttackRef) LegalityResult {
	if lc == nil || lc.board == nil {
		return LegalityResult{Legal: true, Reason: "Legality checker not initialized"}
	}
	unit := lc.board.Unit(ref.AttackerPlayerID, ref.AttackerSlot)
	if unit == nil {
		return LegalityResult{
			Legal:  false,
			Reason: "Attacker left the battle zone",
			Details: map[string]string{
				"player_id": ref.AttackerPlayerID,
				"slot":      fmt.Sprintf("%d", ref.AttackerSlot),
			},
		}
	}
	if ref.AttackerInstanceID != "" && unit.InstanceID != ref.AttackerInstanceID {
		return LegalityResult{
			Legal:  false,
			Reason: "Attacker slot now holds a different unit",
			Details: map[string]string{
				"expected_instance": ref.AttackerInstanceID,
				"found_instance":    unit.InstanceID,
			},
		}
	}
	return LegalityResult{Legal: true, Reason: "Attacker present"}
}

// CheckAttackDeclaration validates a unit declaring an attack.
func (lc *LegalityChecker) CheckAttackDeclaration(playerID string, slot int) LegalityResult {
	unit := lc.board.Unit(playerID, slot)
	switch {
	case unit == nil:
		return LegalityResult{Legal: false, Reason: "No unit in slot"}
	case unit.Tapped:
		return LegalityResult{Legal: false, Reason: "Unit is tapped"}
	case !unit.CanAttack:
		return LegalityResult{Legal: false, Reason: "Unit cannot attack this turn"}
	}
	return LegalityResult{Legal: true, Reason: "Attack allowed"}
}

// CheckBlocker validates a defender's chosen blocker.
func (lc *LegalityChecker) CheckBlocker(defenderID string, slot int) LegalityResult {
	unit := lc.board.Unit(defenderID, slot)
	switch {
	case unit == nil:
		return LegalityResult{Legal: false, Reason: "No unit in blocker slot"}
	case unit.Tapped:
		return LegalityResult{Legal: false, Reason: "Blocker is tapped"}
	}
	return LegalityResult{Legal: true, Reason: "Block allowed"}
}
