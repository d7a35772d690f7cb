package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

func TestChecksumIsDeterministic(t *testing.T) {
	a, err := NewMatch(nil, catalog.Builtin(), "same", 42, StarterSetup(), DefaultOptions())
	require.NoError(t, err)
	b, err := NewMatch(nil, catalog.Builtin(), "same", 42, StarterSetup(), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, Checksum(a.Snapshot()), Checksum(b.Snapshot()))

	for _, act := range []Action{PlaceEnergy(zones.Player0, 2), EndTurn(zones.Player0)} {
		sa, err := a.Apply(act)
		require.NoError(t, err)
		sb, err := b.Apply(act)
		require.NoError(t, err)
		assert.Equal(t, Checksum(sa), Checksum(sb))
	}
}

func TestChecksumSeesSeedAndState(t *testing.T) {
	a, err := NewMatch(nil, catalog.Builtin(), "seeded", 1, StarterSetup(), DefaultOptions())
	require.NoError(t, err)
	b, err := NewMatch(nil, catalog.Builtin(), "seeded", 2, StarterSetup(), DefaultOptions())
	require.NoError(t, err)
	assert.NotEqual(t, Checksum(a.Snapshot()), Checksum(b.Snapshot()))

	st := a.Snapshot()
	before := Checksum(st)
	st.Player(zones.Player0).Hand[0].Tapped = true
	assert.NotEqual(t, before, Checksum(st))
}

func TestCloneMatchesOriginal(t *testing.T) {
	tb := newTable(t, fillerSetup(), 3)
	tb.field(zones.Player0, "blk2", 0)
	st := tb.state()

	cp := st.Clone()
	assert.Equal(t, Checksum(st), Checksum(cp))
	assert.Equal(t, canonical(st), canonical(cp))

	// the random stream advances independently after a clone
	cp.rng.IntN(10)
	assert.NotEqual(t, Checksum(st), Checksum(cp))
	assert.Equal(t, Checksum(st), Checksum(st.Clone()))
}
