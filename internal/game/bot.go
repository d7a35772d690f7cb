package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// Bot is a fixed scripted driver for soak tests and the demo command, not an
// opponent: it takes the first action of a set priority order. It never
// passes during turn-default play, so a match it drives always advances.
type Bot struct {
	PlayerID string
}

// Choose picks one of the legal actions. It reports false when none belongs to the bot.
func (b Bot) Choose(st *State, legal []Action) (Action, bool) {
	byType := make(map[ActionType][]Action)
	for _, a := range legal {
		if a.PlayerID == b.PlayerID {
			byType[a.Type] = append(byType[a.Type], a)
		}
	}
	first := func(t ActionType) (Action, bool) {
		if as := byType[t]; len(as) > 0 {
			return as[0], true
		}
		return Action{}, false
	}

	switch st.Stage(b.PlayerID) {
	case rules.StageDeployment:
		return first(ActionEndDeployment)
	case rules.StageResponse:
		return first(ActionPassResponse)
	case rules.StageBlocking:
		if a, ok := b.chooseBlock(st, byType[ActionDeclareBlock]); ok {
			return a, true
		}
		return first(ActionSkipBlock)
	}

	if as := byType[ActionPlaceEnergy]; len(as) > 0 {
		return cheapest(st, as), true
	}
	if as := byType[ActionSummonUnit]; len(as) > 0 {
		return priciest(st, as), true
	}
	if a, ok := b.aimed(byType[ActionCastSpell]); ok {
		return a, true
	}
	if a, ok := b.aimed(byType[ActionActivateUnitEffect]); ok {
		return a, true
	}
	if a, ok := first(ActionDeclareAttack); ok {
		return a, true
	}
	return first(ActionEndTurn)
}

// chooseBlock picks a blocker that survives, or the strongest one when life is low.
func (b Bot) chooseBlock(st *State, blocks []Action) (Action, bool) {
	c, ok := st.Pending.Combat()
	if !ok || len(blocks) == 0 {
		return Action{}, false
	}
	attacker := st.Player(c.AttackerPlayerID).Battle[c.AttackerSlot]
	if attacker == nil {
		return Action{}, false
	}
	best, bestPower := Action{}, -1
	for _, a := range blocks {
		power := st.Player(b.PlayerID).Battle[a.Index].CurrentPower
		if !BlockDestroys(attacker.CurrentPower, power) {
			return a, true
		}
		if power > bestPower {
			best, bestPower = a, power
		}
	}
	if st.Player(b.PlayerID).LifeCount() <= 2 {
		return best, true
	}
	return Action{}, false
}

// aimed prefers a variant aimed at an opposing unit, then an untargeted one.
func (b Bot) aimed(as []Action) (Action, bool) {
	var plain *Action
	for i := range as {
		a := as[i]
		if a.TargetSlot != nil && a.TargetPlayer == zones.Opponent(b.PlayerID) {
			return a, true
		}
		if a.TargetSlot == nil && plain == nil {
			plain = &as[i]
		}
	}
	if plain != nil {
		return *plain, true
	}
	return Action{}, false
}

func cheapest(st *State, as []Action) Action {
	hand := st.Player(as[0].PlayerID).Hand
	best := as[0]
	for _, a := range as[1:] {
		if hand[a.Index].Cost() < hand[best.Index].Cost() {
			best = a
		}
	}
	return best
}

func priciest(st *State, as []Action) Action {
	hand := st.Player(as[0].PlayerID).Hand
	best := as[0]
	for _, a := range as[1:] {
		if hand[a.Index].Cost() > hand[best.Index].Cost() {
			best = a
		}
	}
	return best
}

// PlayOut drives both seats with scripted bots until the match ends or
// maxActions actions have been applied.
func PlayOut(logger *zap.Logger, m *Match, maxActions int) (*State, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bots := map[string]Bot{
		zones.Player0: {PlayerID: zones.Player0},
		zones.Player1: {PlayerID: zones.Player1},
	}
	st := m.Snapshot()
	for i := 0; i < maxActions && !st.Over(); i++ {
		actor := st.Authority()
		a, ok := bots[actor].Choose(st, m.LegalActions())
		if !ok {
			return st, fmt.Errorf("no legal action for player %s at seq %d", actor, st.Seq)
		}
		next, err := m.Apply(a)
		if err != nil {
			return st, fmt.Errorf("bot action %s: %w", a, err)
		}
		st = next
	}
	logger.Info("play-out finished",
		zap.String("match_id", st.MatchID),
		zap.Int("actions", st.Seq),
		zap.Bool("over", st.Over()),
	)
	return st, nil
}
