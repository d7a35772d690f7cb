package game

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
)

// beginTurn runs the turn-start sequence for the active player: round
// counter, territory reveal, energy flag reset, draw, deployment window.
func (ap *applier) beginTurn() {
	owner := ap.st.ActivePlayer()
	ap.st.Turn.BeginTurn()
	round := ap.st.Turn.Round()

	evt := rules.NewEvent(rules.EventTurnBegan, owner, "", "")
	evt.Amount = round
	evt.Metadata["turn_seq"] = strconv.Itoa(ap.st.Turn.TurnSeq())
	ap.emit(evt)

	if round <= ap.opts.TerritoryRevealTurns {
		ap.revealTerritory(owner)
	}

	p := ap.st.Player(owner)
	p.EnergyPlaced = false
	if card, ok := p.Draw(); ok {
		ap.emit(rules.NewEvent(rules.EventCardDrawn, owner, card.CardID(), card.InstanceID))
	}

	if len(p.Energy) > 0 {
		ap.st.Stages.OpenSolo(owner, rules.StageDeployment)
		stage := rules.NewEvent(rules.EventStageChanged, owner, "", "")
		stage.Metadata["stage"] = rules.StageDeployment.String()
		ap.emit(stage)
	}

	ap.logger.Debug("turn began",
		zap.String("match_id", ap.st.MatchID),
		zap.String("player_id", owner),
		zap.Int("round", round),
		zap.Int("turn_seq", ap.st.Turn.TurnSeq()),
	)
}

// endTurn untaps the owner's board, restores attack capability and passes the turn.
func (ap *applier) endTurn(a Action) error {
	p := ap.st.Player(a.PlayerID)
	for _, unit := range p.Battle {
		if unit == nil {
			continue
		}
		unit.Tapped = false
		unit.CanAttack = true
	}
	for _, card := range p.Energy {
		card.Tapped = false
	}
	ap.emit(rules.NewEvent(rules.EventTurnEnded, a.PlayerID, "", ""))

	ap.st.Turn.PassTurn()
	ap.beginTurn()
	return nil
}
