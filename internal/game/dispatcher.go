package game

import (
	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/effects"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// stageActions lists what the holder of each window may submit.
var stageActions = map[rules.Stage]map[ActionType]bool{
	rules.StageDeployment: {
		ActionReturnEnergy:  true,
		ActionEndDeployment: true,
	},
	rules.StageResponse: {
		ActionCastInstant:  true,
		ActionPassResponse: true,
	},
	rules.StageBlocking: {
		ActionCastInstant:  true,
		ActionDeclareBlock: true,
		ActionSkipBlock:    true,
	},
}

// defaultActions lists what the turn owner may submit while no window is open.
var defaultActions = map[ActionType]bool{
	ActionPlaceEnergy:        true,
	ActionSummonUnit:         true,
	ActionCastSpell:          true,
	ActionCastInstant:        true,
	ActionActivateUnitEffect: true,
	ActionDeclareAttack:      true,
	ActionPassResponse:       true,
	ActionEndTurn:            true,
}

// knownActions is every action in the closed set.
var knownActions = map[ActionType]bool{
	ActionPlaceEnergy:        true,
	ActionSummonUnit:         true,
	ActionCastSpell:          true,
	ActionCastInstant:        true,
	ActionActivateUnitEffect: true,
	ActionDeclareAttack:      true,
	ActionPassResponse:       true,
	ActionSkipBlock:          true,
	ActionDeclareBlock:       true,
	ActionReturnEnergy:       true,
	ActionEndDeployment:      true,
	ActionEndTurn:            true,
}

// authorize checks that the submitter holds the authority the action needs.
func authorize(st *State, a Action) error {
	if !knownActions[a.Type] {
		return gameerr.Illegal(gameerr.CodeUnknownAction, "unknown action %q", a.Type)
	}
	if !zones.ValidPlayer(a.PlayerID) {
		return gameerr.Illegal(gameerr.CodeUnknownPlayer, "unknown player %q", a.PlayerID)
	}
	if st.Over() {
		return gameerr.Illegal(gameerr.CodeMatchOver, "match is over")
	}
	if st.Turn.Phase() != rules.PhaseMain {
		return gameerr.Illegal(gameerr.CodeWrongPhase, "match is in phase %s", st.Turn.Phase())
	}

	if st.Stages.IsDefault() {
		if a.PlayerID != st.ActivePlayer() {
			return gameerr.Illegal(gameerr.CodeNotYourTurn, "player %s does not hold the turn", a.PlayerID)
		}
		if !defaultActions[a.Type] {
			if a.Type == ActionSkipBlock || a.Type == ActionDeclareBlock {
				return gameerr.Illegal(gameerr.CodeNoCombat, "no combat to block")
			}
			return gameerr.Illegal(gameerr.CodeWrongStage, "%s needs an open window", a.Type)
		}
		return nil
	}

	stage := st.Stages.Of(a.PlayerID)
	switch stage {
	case rules.StageNone, rules.StageWaiting:
		return gameerr.Illegal(gameerr.CodeNotYourTurn, "player %s is %s", a.PlayerID, stage)
	}
	if !stageActions[stage][a.Type] {
		return gameerr.Illegal(gameerr.CodeWrongStage, "%s not allowed during %s", a.Type, stage)
	}
	return nil
}

// applier runs one action against a working copy of the state.
type applier struct {
	st     *State
	interp *effects.Interpreter
	rec    *rules.Recorder
	logger *zap.Logger
	opts   Options
}

func (ap *applier) emit(evt rules.Event) {
	ap.rec.Emit(evt)
}

func (ap *applier) effectContext() *effects.Context {
	return &effects.Context{
		Board:   ap.st.Board,
		TurnSeq: ap.st.Turn.TurnSeq(),
		RNG:     ap.st.rng,
		Emit:    ap.emit,
	}
}

// dispatch routes an authorized action to its handler.
func (ap *applier) dispatch(a Action) error {
	switch a.Type {
	case ActionPlaceEnergy:
		return ap.placeEnergy(a)
	case ActionSummonUnit:
		return ap.summonUnit(a)
	case ActionCastSpell:
		return ap.castSpell(a)
	case ActionCastInstant:
		return ap.castInstant(a)
	case ActionActivateUnitEffect:
		return ap.activateUnitEffect(a)
	case ActionDeclareAttack:
		return ap.declareAttack(a)
	case ActionPassResponse:
		return ap.passResponse(a)
	case ActionSkipBlock:
		return ap.skipBlock(a)
	case ActionDeclareBlock:
		return ap.declareBlock(a)
	case ActionReturnEnergy:
		return ap.returnEnergyToHand(a)
	case ActionEndDeployment:
		return ap.endDeployment(a)
	case ActionEndTurn:
		return ap.endTurn(a)
	}
	return gameerr.Illegal(gameerr.CodeUnknownAction, "unknown action %q", a.Type)
}

// openWindow parks actor and gives the opponent the response window.
func (ap *applier) openWindow(actor string, stage rules.Stage) {
	holder := zones.Opponent(actor)
	ap.st.Stages.Open(holder, stage, actor)
	evt := rules.NewEvent(rules.EventStageChanged, holder, "", "")
	evt.Metadata["stage"] = stage.String()
	ap.emit(evt)
}

func (ap *applier) clearStages() {
	if ap.st.Stages.IsDefault() {
		return
	}
	ap.st.Stages.Clear()
	evt := rules.NewEvent(rules.EventStageChanged, ap.st.ActivePlayer(), "", "")
	evt.Metadata["stage"] = rules.StageNone.String()
	ap.emit(evt)
}
