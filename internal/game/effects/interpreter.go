// Package effects resolves declarative card effects against the board.
package effects

import (
	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// Context carries the state an effect resolves against.
type Context struct {
	Board   *zones.Board
	TurnSeq int
	RNG     zones.Source
	Emit    func(rules.Event)
}

func (c *Context) emit(evt rules.Event) {
	if c.Emit != nil {
		c.Emit(evt)
	}
}

// Outcome reports what a single effect did.
type Outcome struct {
	Action  catalog.EffectAction
	Applied bool
	Reason  string // why the effect fizzled, empty when applied
}

func applied(action catalog.EffectAction) Outcome {
	return Outcome{Action: action, Applied: true}
}

func fizzled(action catalog.EffectAction, reason string) Outcome {
	return Outcome{Action: action, Reason: reason}
}

type handler func(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome

// Interpreter dispatches effects on their action kind. Every handler is total:
// a missing target or failed condition fizzles instead of returning an error.
type Interpreter struct {
	logger   *zap.Logger
	handlers map[catalog.EffectAction]handler
}

// NewInterpreter creates an interpreter with the full handler table.
func NewInterpreter(logger *zap.Logger) *Interpreter {
	if logger == nil {
		logger = zap.NewNop()
	}
	in := &Interpreter{logger: logger}
	in.handlers = map[catalog.EffectAction]handler{
		catalog.ActionDraw:               resolveDraw,
		catalog.ActionDamagePlayer:       resolveDamagePlayer,
		catalog.ActionHealPlayer:         resolveHealPlayer,
		catalog.ActionDestroyUnit:        resolveDestroyUnit,
		catalog.ActionSilenceUnit:        resolveSilenceUnit,
		catalog.ActionMoveUnitToEnergy:   resolveMoveUnitToEnergy,
		catalog.ActionBounceUnit:         resolveBounceUnit,
		catalog.ActionBuffUnitBP:         resolveBuffUnit,
		catalog.ActionUntapUnit:          resolveUntapUnit,
		catalog.ActionMill:               resolveMill,
		catalog.ActionReturnGraveUnits:   resolveReturnGraveUnits,
		catalog.ActionConditionalDestroy: resolveConditionalDestroy,
		catalog.ActionSummonFromEnergy:   resolveSummonFromEnergy,
		catalog.ActionSummonFromDeck:     resolveSummonFromDeck,
		catalog.ActionSearchDeck:         resolveSearchDeck,
		catalog.ActionActivate:           resolveActivateMarker,
	}
	// Raw aliases normally never reach the interpreter, but resolve them the same way.
	in.handlers[catalog.ActionDamageEnemy] = resolveDamagePlayer
	in.handlers[catalog.ActionBuffAtk] = resolveBuffUnit
	return in
}

// Handles reports whether action has a handler.
func (in *Interpreter) Handles(action catalog.EffectAction) bool {
	_, ok := in.handlers[action]
	return ok
}

// Resolve applies one effect for actor.
func (in *Interpreter) Resolve(ctx *Context, actor string, eff catalog.EffectDefinition, target zones.Target) Outcome {
	h, ok := in.handlers[eff.Action]
	if !ok {
		in.logger.Warn("no handler for effect action", zap.String("action", string(eff.Action)))
		return fizzled(eff.Action, "unknown action")
	}
	out := h(ctx, actor, eff, target)
	if out.Applied {
		in.logger.Debug("effect resolved",
			zap.String("action", string(eff.Action)),
			zap.String("player_id", actor),
			zap.Int("amount", eff.Amount),
		)
		return out
	}
	in.logger.Debug("effect fizzled",
		zap.String("action", string(eff.Action)),
		zap.String("player_id", actor),
		zap.String("reason", out.Reason),
	)
	evt := rules.NewEvent(rules.EventEffectFizzled, actor, "", "")
	evt.Metadata["action"] = string(eff.Action)
	evt.Metadata["reason"] = out.Reason
	ctx.emit(evt)
	return out
}

// ResolveAll applies effects in order against the same target.
func (in *Interpreter) ResolveAll(ctx *Context, actor string, effs []catalog.EffectDefinition, target zones.Target) []Outcome {
	out := make([]Outcome, 0, len(effs))
	for _, eff := range effs {
		out = append(out, in.Resolve(ctx, actor, eff, target))
	}
	return out
}

// unitOwner picks the player whose battle zone a unit target refers to.
// An explicit owner wins; otherwise ALLY_UNIT means the actor, ENEMY_UNIT the
// opponent, and anything else falls back to fallback.
func unitOwner(actor string, eff catalog.EffectDefinition, target zones.Target, fallback string) string {
	if target.PlayerID != "" && zones.ValidPlayer(target.PlayerID) {
		return target.PlayerID
	}
	switch eff.Target {
	case catalog.TargetAllyUnit:
		return actor
	case catalog.TargetEnemyUnit:
		return zones.Opponent(actor)
	}
	return fallback
}

// targetUnit resolves the unit a slot-targeted effect refers to.
func targetUnit(ctx *Context, owner string, target zones.Target) (*zones.PlayerState, int, *zones.CardInstance) {
	p := ctx.Board.Player(owner)
	if p == nil || !target.HasSlot() {
		return p, -1, nil
	}
	slot := target.SlotIndex()
	return p, slot, p.Unit(slot)
}

func unitEvent(t rules.EventType, actor string, unit *zones.CardInstance, slot int) rules.Event {
	evt := rules.NewEvent(t, unit.OwnerID, unit.CardID(), unit.InstanceID)
	evt.Slot = slot
	evt.Metadata["actor"] = actor
	return evt
}
