package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// candidates lists a broad spread of actions for both seats, legal or not.
func candidates(st *State, rng *rand.Rand) []Action {
	var out []Action
	target := func(a Action) Action {
		switch rng.IntN(3) {
		case 0:
			return a
		case 1:
			return a.WithTarget(rng.IntN(zones.BattleSlots), "")
		default:
			return a.WithTarget(rng.IntN(zones.BattleSlots), zones.PlayerIDs[rng.IntN(2)])
		}
	}
	for _, id := range zones.PlayerIDs {
		p := st.Player(id)
		for i := range p.Hand {
			out = append(out,
				PlaceEnergy(id, i),
				SummonUnit(id, i),
				target(CastSpell(id, i)),
				target(CastInstant(id, i)),
			)
		}
		for slot := 0; slot < zones.BattleSlots; slot++ {
			if p.Battle[slot] == nil {
				continue
			}
			out = append(out,
				target(ActivateUnitEffect(id, slot)),
				DeclareAttack(id, slot),
				DeclareBlock(id, slot),
			)
		}
		for i := range p.Energy {
			out = append(out, ReturnEnergyToHand(id, i))
		}
		out = append(out, PassResponse(id), SkipBlock(id), EndDeployment(id), EndTurn(id))
	}
	return out
}

// playRandom drives a match with random actions until it ends or steps run out.
// Every rejection must be an illegal action, never an invariant violation.
func playRandom(t *testing.T, m *Match, seed uint64, steps int) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 99))
	for step := 0; step < steps; step++ {
		st := m.Snapshot()
		if st.Over() {
			return
		}
		moves := candidates(st, rng)
		rng.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })

		accepted := false
		for _, a := range moves {
			next, err := m.Apply(a)
			if err != nil {
				require.True(t, gameerr.IsIllegalAction(err), "seed %d step %d %s: %v", seed, step, a, err)
				continue
			}
			require.NoError(t, validateState(next), "seed %d step %d %s", seed, step, a)
			require.Equal(t, st.Seq+1, next.Seq)
			accepted = true
			break
		}
		require.True(t, accepted, "seed %d step %d: no action accepted", seed, step)
	}
}

func TestRandomPlayPreservesInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		m, err := NewMatch(nil, catalog.Builtin(), "random", seed, StarterSetup(), DefaultOptions())
		require.NoError(t, err)
		playRandom(t, m, seed, 250)

		st := m.Snapshot()
		assert.Equal(t, st.Instances, len(st.Board.Instances()))
		for _, id := range zones.PlayerIDs {
			assert.LessOrEqual(t, len(st.Player(id).Energy), zones.EnergyCap)
		}
	}
}

func TestRandomPlayReplaysExactly(t *testing.T) {
	for seed := uint64(40); seed < 44; seed++ {
		m, err := NewMatch(nil, catalog.Builtin(), "replayed", seed, StarterSetup(), DefaultOptions())
		require.NoError(t, err)
		playRandom(t, m, seed, 150)

		j := m.Journal()
		final, err := Verify(nil, catalog.Builtin(), j)
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, Checksum(m.Snapshot()), Checksum(final))
		assert.Equal(t, j.FinalChecksum(), Checksum(final))
	}
}
