// Package gameerr provides the rules engine's error taxonomy and reason codes.
package gameerr

import "google.golang.org/grpc/codes"

// Kind groups reason codes into the three failure classes the engine reports.
type Kind string

const (
	// KindIllegalAction is a recoverable rejection; state is unchanged.
	KindIllegalAction Kind = "ILLEGAL_ACTION"
	// KindUnknownCard is a setup or catalog lookup failure.
	KindUnknownCard Kind = "UNKNOWN_CARD"
	// KindInvariantViolation indicates an engine bug; the action is aborted.
	KindInvariantViolation Kind = "INVARIANT_VIOLATION"
)

// Code is a machine-readable reason code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Stage / turn errors
	CodeMatchOver     Code = "MATCH_OVER"
	CodeNotYourTurn   Code = "NOT_YOUR_TURN"
	CodeWrongStage    Code = "WRONG_STAGE"
	CodeWrongPhase    Code = "WRONG_PHASE"
	CodeActionPending Code = "ACTION_PENDING"
	CodeNoCombat      Code = "NO_COMBAT"
	CodeUnknownAction Code = "UNKNOWN_ACTION"
	CodeUnknownPlayer Code = "UNKNOWN_PLAYER"

	// Resource errors
	CodeInvalidIndex        Code = "INVALID_INDEX"
	CodeWrongCardType       Code = "WRONG_CARD_TYPE"
	CodeInsufficientEnergy  Code = "INSUFFICIENT_ENERGY"
	CodeEnergyAlreadyPlaced Code = "ENERGY_ALREADY_PLACED"
	CodeEnergyZoneFull      Code = "ENERGY_ZONE_FULL"
	CodeNoEmptySlot         Code = "NO_EMPTY_SLOT"
	CodeSlotOccupied        Code = "SLOT_OCCUPIED"
	CodeEmptySlot           Code = "EMPTY_SLOT"

	// Unit errors
	CodeUnitTapped       Code = "UNIT_TAPPED"
	CodeUnitCannotAttack Code = "UNIT_CANNOT_ATTACK"
	CodeNoActivateEffect Code = "NO_ACTIVATE_EFFECT"
	CodeUnitSilenced     Code = "UNIT_SILENCED"

	// Catalog errors
	CodeUnknownCard    Code = "UNKNOWN_CARD"
	CodeInvalidCatalog Code = "INVALID_CATALOG"
	CodeInvalidSetup   Code = "INVALID_SETUP"

	// Internal faults
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
)

// Kind returns the failure class for the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeUnknownCard, CodeInvalidCatalog, CodeInvalidSetup:
		return KindUnknownCard
	case CodeInvariantViolation, CodeUnknown:
		return KindInvariantViolation
	default:
		return KindIllegalAction
	}
}

// GRPCCode maps reason codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed request
	case CodeInvalidIndex,
		CodeUnknownAction,
		CodeUnknownPlayer,
		CodeInvalidCatalog,
		CodeInvalidSetup:
		return codes.InvalidArgument

	// NotFound - missing catalog entries
	case CodeUnknownCard:
		return codes.NotFound

	// Internal - engine faults
	case CodeInvariantViolation, CodeUnknown:
		return codes.Internal

	// FailedPrecondition - state does not allow the action
	default:
		return codes.FailedPrecondition
	}
}
