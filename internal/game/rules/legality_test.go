package rules

import (
	"testing"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

func boardWithUnit(t *testing.T, owner string, slot int, cardID string) (*zones.Board, *zones.CardInstance) {
	t.Helper()
	f := zones.NewFactory(catalog.Builtin(), "lc")
	unit, err := f.CreateInstance(cardID, owner)
	if err != nil {
		t.Fatalf("create instance: %v", err)
	}
	b := zones.NewBoard()
	if err := b.Players[owner].MoveToBattleSlot(unit, slot); err != nil {
		t.Fatalf("place unit: %v", err)
	}
	return b, unit
}

func TestCheckAttacker(t *testing.T) {
	b, unit := boardWithUnit(t, "0", 1, "u004")
	lc := NewLegalityChecker(b)

	ref := AttackRef{AttackerPlayerID: "0", AttackerSlot: 1, AttackerInstanceID: unit.InstanceID}
	if res := lc.CheckAttacker(ref); !res.Legal {
		t.Fatalf("expected legal attacker, got %s", res.Reason)
	}

	b.Players["0"].Battle[1] = nil
	if res := lc.CheckAttacker(ref); res.Legal {
		t.Fatalf("expected vanished attacker to be illegal")
	}

	other := unit.Clone()
	other.InstanceID = "someone-else"
	b.Players["0"].Battle[1] = other
	res := lc.CheckAttacker(ref)
	if res.Legal || res.Details["found_instance"] != "someone-else" {
		t.Fatalf("expected replaced attacker to be illegal, got %+v", res)
	}
}

func TestCheckAttackDeclaration(t *testing.T) {
	b, unit := boardWithUnit(t, "0", 0, "u001")
	lc := NewLegalityChecker(b)

	if res := lc.CheckAttackDeclaration("0", 0); res.Legal {
		t.Fatalf("fresh unit without attack capability should not attack")
	}
	unit.CanAttack = true
	if res := lc.CheckAttackDeclaration("0", 0); !res.Legal {
		t.Fatalf("expected attack allowed, got %s", res.Reason)
	}
	unit.Tapped = true
	if res := lc.CheckAttackDeclaration("0", 0); res.Legal {
		t.Fatalf("tapped unit should not attack")
	}
	if res := lc.CheckAttackDeclaration("0", 4); res.Legal {
		t.Fatalf("empty slot should not attack")
	}
}

func TestCheckBlocker(t *testing.T) {
	b, unit := boardWithUnit(t, "1", 3, "u002")
	lc := NewLegalityChecker(b)

	if res := lc.CheckBlocker("1", 3); !res.Legal {
		t.Fatalf("expected untapped blocker to be legal")
	}
	unit.Tapped = true
	if res := lc.CheckBlocker("1", 3); res.Legal {
		t.Fatalf("tapped blocker should be illegal")
	}
	if res := lc.CheckBlocker("1", 9); res.Legal {
		t.Fatalf("out of range blocker should be illegal")
	}
}
