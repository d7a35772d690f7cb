package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

func TestLegalActionsBelongToAuthority(t *testing.T) {
	tb := newTable(t, fillerSetup(), 51)
	tb.field(zones.Player0, "atk3", 0)

	legal := tb.m.LegalActions()
	require.NotEmpty(t, legal)
	for _, a := range legal {
		assert.Equal(t, zones.Player0, a.PlayerID)
		assert.NoError(t, tb.m.Legal(a))
	}
	assert.Contains(t, legal, DeclareAttack(zones.Player0, 0))
	assert.Contains(t, legal, EndTurn(zones.Player0))
	assert.NotContains(t, legal, SkipBlock(zones.Player0))

	tb.apply(DeclareAttack(zones.Player0, 0))
	assert.Equal(t, zones.Player1, tb.state().Authority())
	for _, a := range tb.m.LegalActions() {
		assert.Equal(t, zones.Player1, a.PlayerID)
	}
}

func TestBotBlocksWithSurvivor(t *testing.T) {
	tb := newTable(t, fillerSetup(), 52)
	tb.field(zones.Player0, "atk3", 0)
	tb.field(zones.Player1, "blk2", 0)
	tb.field(zones.Player1, "big5", 1)
	tb.apply(DeclareAttack(zones.Player0, 0))
	tb.apply(PassResponse(zones.Player1))

	st := tb.m.Snapshot()
	require.Equal(t, rules.StageBlocking, st.Stage(zones.Player1))
	a, ok := Bot{PlayerID: zones.Player1}.Choose(st, tb.m.LegalActions())
	require.True(t, ok)
	assert.Equal(t, DeclareBlock(zones.Player1, 1), a)
}

func TestBotSkipsLosingBlockWhileHealthy(t *testing.T) {
	tb := newTable(t, fillerSetup(), 53)
	tb.field(zones.Player0, "big5", 0)
	tb.field(zones.Player1, "blk2", 0)
	tb.apply(DeclareAttack(zones.Player0, 0))
	tb.apply(PassResponse(zones.Player1))

	a, ok := Bot{PlayerID: zones.Player1}.Choose(tb.m.Snapshot(), tb.m.LegalActions())
	require.True(t, ok)
	assert.Equal(t, ActionSkipBlock, a.Type)
}

func TestPlayOutFinishesMatches(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		m, err := NewMatch(nil, catalog.Builtin(), "bots", seed, StarterSetup(), DefaultOptions())
		require.NoError(t, err)

		st, err := PlayOut(zaptest.NewLogger(t), m, 3000)
		require.NoError(t, err, "seed %d", seed)
		require.True(t, st.Over(), "seed %d did not finish in %d actions", seed, st.Seq)
		assert.Contains(t, []string{ReasonLife, ReasonDeckout}, st.Result.Reason)

		final, err := Verify(nil, catalog.Builtin(), m.Journal())
		require.NoError(t, err)
		assert.Equal(t, Checksum(st), Checksum(final))
	}
}
