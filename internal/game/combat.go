package game

import (
	"strconv"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// BlockDestroys is the combat law: a block destroys the blocker iff the
// attacker's power is at least the blocker's. The attacker never dies.
func BlockDestroys(attackerPower, blockerPower int) bool {
	return attackerPower >= blockerPower
}

func (ap *applier) declareAttack(a Action) error {
	legality := rules.NewLegalityChecker(ap.st.Board).CheckAttackDeclaration(a.PlayerID, a.Index)
	if !legality.Legal {
		return gameerr.WithMetadata(attackCode(ap.st.Player(a.PlayerID), a.Index), legality.Reason, legality.Details)
	}
	if !ap.st.Pending.IsEmpty() {
		return gameerr.Illegal(gameerr.CodeActionPending, "a %s is already pending", ap.st.Pending.Peek().Kind())
	}

	attacker := ap.st.Player(a.PlayerID).Battle[a.Index]
	attacker.Tapped = true
	ref := rules.AttackRef{
		AttackerPlayerID:   a.PlayerID,
		AttackerSlot:       a.Index,
		AttackerInstanceID: attacker.InstanceID,
	}
	if err := ap.st.Pending.Set(&rules.PendingAttack{AttackRef: ref}); err != nil {
		return err
	}
	evt := rules.NewEvent(rules.EventAttackDeclared, a.PlayerID, attacker.CardID(), attacker.InstanceID)
	evt.Slot = a.Index
	evt.Amount = attacker.CurrentPower
	ap.emit(evt)
	ap.openWindow(a.PlayerID, rules.StageResponse)
	return nil
}

// attackCode picks the reason code for a rejected attack declaration.
func attackCode(p *zones.PlayerState, slot int) gameerr.Code {
	unit := p.Unit(slot)
	switch {
	case slot < 0 || slot >= zones.BattleSlots:
		return gameerr.CodeInvalidIndex
	case unit == nil:
		return gameerr.CodeEmptySlot
	case unit.Tapped:
		return gameerr.CodeUnitTapped
	default:
		return gameerr.CodeUnitCannotAttack
	}
}

// resolveAttack runs once the response window for an attack closes. The
// defender gets a blocking window if it has an untapped unit; otherwise the
// hit lands directly.
func (ap *applier) resolveAttack(ref rules.AttackRef) error {
	if !ap.attackerPresent(ref) {
		return nil
	}
	defender := ref.DefenderID()
	if ap.st.Player(defender).HasUntappedUnit() {
		if err := ap.st.Pending.Set(&rules.CombatState{AttackRef: ref}); err != nil {
			return err
		}
		ap.openWindow(ref.AttackerPlayerID, rules.StageBlocking)
		return nil
	}
	ap.hitPlayer(ref, defender)
	ap.clearStages()
	return nil
}

// attackerPresent checks the attacker still holds its slot. A vanished
// attacker fizzles the attack and closes every window.
func (ap *applier) attackerPresent(ref rules.AttackRef) bool {
	legality := rules.NewLegalityChecker(ap.st.Board).CheckAttacker(ref)
	if legality.Legal {
		return true
	}
	evt := rules.NewEvent(rules.EventAttackFizzled, ref.AttackerPlayerID, "", ref.AttackerInstanceID)
	evt.Slot = ref.AttackerSlot
	evt.Metadata["reason"] = legality.Reason
	ap.emit(evt)
	ap.st.Pending.Take()
	ap.clearStages()
	return false
}

func (ap *applier) hitPlayer(ref rules.AttackRef, defender string) {
	taken := ap.st.Player(defender).DealDamage(1)
	evt := rules.NewEventWithAmount(rules.EventDamageDealt, defender, "", ref.AttackerInstanceID, taken)
	evt.Metadata["attacker_slot"] = strconv.Itoa(ref.AttackerSlot)
	ap.emit(evt)
}

func (ap *applier) combat() (*rules.CombatState, error) {
	c, ok := ap.st.Pending.Combat()
	if !ok {
		return nil, gameerr.Illegal(gameerr.CodeNoCombat, "no combat to block")
	}
	return c, nil
}

func (ap *applier) skipBlock(a Action) error {
	c, err := ap.combat()
	if err != nil {
		return err
	}
	if !ap.attackerPresent(c.AttackRef) {
		return nil
	}
	ap.st.Pending.Take()
	ap.emit(rules.NewEvent(rules.EventBlockSkipped, a.PlayerID, "", c.AttackerInstanceID))
	ap.hitPlayer(c.AttackRef, a.PlayerID)
	ap.clearStages()
	return nil
}

func (ap *applier) declareBlock(a Action) error {
	c, err := ap.combat()
	if err != nil {
		return err
	}
	legality := rules.NewLegalityChecker(ap.st.Board).CheckBlocker(a.PlayerID, a.Index)
	if !legality.Legal {
		code := gameerr.CodeEmptySlot
		if a.Index < 0 || a.Index >= zones.BattleSlots {
			code = gameerr.CodeInvalidIndex
		} else if u := ap.st.Player(a.PlayerID).Unit(a.Index); u != nil && u.Tapped {
			code = gameerr.CodeUnitTapped
		}
		return gameerr.WithMetadata(code, legality.Reason, legality.Details)
	}
	if !ap.attackerPresent(c.AttackRef) {
		return nil
	}
	ap.st.Pending.Take()

	defender := ap.st.Player(a.PlayerID)
	blocker := defender.Battle[a.Index]
	attacker := ap.st.Player(c.AttackerPlayerID).Battle[c.AttackerSlot]
	blocker.Tapped = true

	evt := rules.NewEvent(rules.EventBlockDeclared, a.PlayerID, blocker.CardID(), blocker.InstanceID)
	evt.Slot = a.Index
	evt.Metadata["attacker_power"] = strconv.Itoa(attacker.CurrentPower)
	evt.Metadata["blocker_power"] = strconv.Itoa(blocker.CurrentPower)
	ap.emit(evt)

	if BlockDestroys(attacker.CurrentPower, blocker.CurrentPower) {
		if _, err := defender.TakeFromBattle(a.Index); err != nil {
			return err
		}
		defender.MoveToGraveyard(blocker)
		destroyed := rules.NewEvent(rules.EventUnitDestroyed, a.PlayerID, blocker.CardID(), blocker.InstanceID)
		destroyed.Slot = a.Index
		destroyed.Metadata["cause"] = "combat"
		ap.emit(destroyed)
	}
	ap.clearStages()
	return nil
}
