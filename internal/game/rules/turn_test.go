package rules

import "testing"

func TestTurnManagerRounds(t *testing.T) {
	tm := NewTurnManager("0")
	if tm.Phase() != PhaseSetup || tm.Round() != 0 || tm.Era() != 1 {
		t.Fatalf("unexpected initial state: %s round %d era %d", tm.Phase(), tm.Round(), tm.Era())
	}

	expected := []struct {
		active   string
		newRound bool
		round    int
	}{
		{"0", true, 1},
		{"1", false, 1},
		{"0", true, 2},
		{"1", false, 2},
	}

	for i, exp := range expected {
		if tm.ActivePlayer() != exp.active {
			t.Fatalf("turn %d: expected active %s, got %s", i, exp.active, tm.ActivePlayer())
		}
		if got := tm.BeginTurn(); got != exp.newRound {
			t.Fatalf("turn %d: expected newRound %v, got %v", i, exp.newRound, got)
		}
		if tm.Round() != exp.round {
			t.Fatalf("turn %d: expected round %d, got %d", i, exp.round, tm.Round())
		}
		if tm.TurnSeq() != i+1 {
			t.Fatalf("turn %d: expected turn seq %d, got %d", i, i+1, tm.TurnSeq())
		}
		tm.PassTurn()
	}
}

func TestTurnManagerCloneAndEra(t *testing.T) {
	tm := NewTurnManager("0")
	tm.SetPhase(PhaseMain)
	cp := tm.Clone()
	cp.AdvanceEra()
	cp.PassTurn()

	if tm.Era() != 1 || tm.ActivePlayer() != "0" {
		t.Fatalf("clone mutation leaked: era %d active %s", tm.Era(), tm.ActivePlayer())
	}
	if cp.Era() != 2 || cp.StartingPlayer() != "0" {
		t.Fatalf("unexpected clone state: era %d starting %s", cp.Era(), cp.StartingPlayer())
	}
	if PhaseMain.String() != "MAIN" {
		t.Fatalf("unexpected phase name %s", PhaseMain)
	}
}
