package gameerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
)

func TestCodeKind(t *testing.T) {
	assert.Equal(t, KindIllegalAction, CodeInsufficientEnergy.Kind())
	assert.Equal(t, KindIllegalAction, CodeWrongStage.Kind())
	assert.Equal(t, KindUnknownCard, CodeUnknownCard.Kind())
	assert.Equal(t, KindInvariantViolation, CodeInvariantViolation.Kind())
}

func TestGRPCCode(t *testing.T) {
	assert.Equal(t, codes.InvalidArgument, CodeInvalidIndex.GRPCCode())
	assert.Equal(t, codes.NotFound, CodeUnknownCard.GRPCCode())
	assert.Equal(t, codes.Internal, CodeInvariantViolation.GRPCCode())
	assert.Equal(t, codes.FailedPrecondition, CodeNoEmptySlot.GRPCCode())
}

func TestErrorsIsByCode(t *testing.T) {
	err := fmt.Errorf("summon: %w", Illegal(CodeNoEmptySlot, "battle zone full"))

	assert.True(t, errors.Is(err, New(CodeNoEmptySlot, "")))
	assert.False(t, errors.Is(err, New(CodeInsufficientEnergy, "")))
	assert.Equal(t, CodeNoEmptySlot, CodeOf(err))
	assert.True(t, IsIllegalAction(err))
	assert.False(t, IsInvariantViolation(err))
}

func TestUnknownCardMetadata(t *testing.T) {
	err := UnknownCard("x999")

	assert.True(t, IsUnknownCard(err))
	assert.Equal(t, "x999", err.Metadata["card_id"])
	assert.Contains(t, err.Error(), "x999")
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("disk gone")
	err := Wrap(CodeInvalidCatalog, "read catalog", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindUnknownCard, err.Kind())
}

func TestNilIsNothing(t *testing.T) {
	assert.False(t, IsIllegalAction(nil))
	assert.False(t, IsUnknownCard(nil))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
}
