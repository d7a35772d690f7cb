package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/rules"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

// Checksum returns the SHA-256 of the state's canonical rendering. Two states
// with equal checksums agree on every zone, card field, counter, window,
// pending item and the random stream position.
func Checksum(st *State) string {
	sum := sha256.Sum256([]byte(canonical(st)))
	return hex.EncodeToString(sum[:])
}

// canonical renders the state deterministically. Zone order is significant
// and kept; only map-keyed data is sorted.
func canonical(st *State) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "MATCH:%s|%s|%d|%d|%d|%s|%d\n",
		st.MatchID,
		st.Turn.Phase(),
		st.Turn.Round(),
		st.Turn.TurnSeq(),
		st.Turn.Era(),
		st.Turn.ActivePlayer(),
		st.Seq,
	)
	if st.Result != nil {
		fmt.Fprintf(&buf, "RESULT:%s|%s|%s\n", st.Result.Winner, st.Result.Loser, st.Result.Reason)
	}
	fmt.Fprintf(&buf, "RNG:%x\n", st.randomState())

	stages := st.Stages.Snapshot()
	for _, id := range st.Stages.Players() {
		fmt.Fprintf(&buf, "STAGE:%s=%s\n", id, stages[id])
	}
	writePending(&buf, st.Pending.Peek())

	for _, id := range zones.PlayerIDs {
		p := st.Player(id)
		fmt.Fprintf(&buf, "PLAYER:%s|%t\n", id, p.EnergyPlaced)
		writeZone(&buf, "HAND", p.Hand)
		writeZone(&buf, "DECK", p.Deck)
		writeZone(&buf, "LIFE", p.Life)
		writeZone(&buf, "ENERGY", p.Energy)
		writeZone(&buf, "GRAVEYARD", p.Graveyard)
		writeZone(&buf, "TERRITORY_DECK", p.TerritoryDeck)
		for slot, c := range p.Battle {
			if c == nil {
				fmt.Fprintf(&buf, "  BATTLE:%d:-\n", slot)
				continue
			}
			fmt.Fprintf(&buf, "  BATTLE:%d:%s\n", slot, renderCard(c))
		}
	}

	if st.Board.ActiveTerritory != nil {
		fmt.Fprintf(&buf, "TERRITORY:%s\n", renderCard(st.Board.ActiveTerritory))
	}
	writeZone(&buf, "RETIRED", st.Board.RetiredTerritories)
	return buf.String()
}

func writeZone(buf *bytes.Buffer, name string, cards []*zones.CardInstance) {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = renderCard(c)
	}
	fmt.Fprintf(buf, "  %s:%s\n", name, strings.Join(parts, ","))
}

func renderCard(c *zones.CardInstance) string {
	kws := make([]string, 0, 3)
	for _, k := range c.Keywords() {
		kws = append(kws, string(k))
	}
	sort.Strings(kws)
	return fmt.Sprintf("%s/%s/%s/%d/%t/%t/%t/%d/%s",
		c.InstanceID,
		c.CardID(),
		c.OwnerID,
		c.CurrentPower,
		c.Tapped,
		c.FaceDown,
		c.CanAttack,
		c.SilencedTurn,
		strings.Join(kws, "+"),
	)
}

func writePending(buf *bytes.Buffer, item rules.Pending) {
	switch p := item.(type) {
	case nil:
		buf.WriteString("PENDING:-\n")
	case *rules.PendingEffect:
		fmt.Fprintf(buf, "PENDING:EFFECT|%s|%s|%s|%s|%d|%d|%s\n",
			p.Source, p.PlayerID, p.InstanceID, p.CardID, len(p.Effects), p.Target.SlotIndex(), p.Target.PlayerID)
	case *rules.PendingAttack:
		fmt.Fprintf(buf, "PENDING:ATTACK|%s|%d|%s\n", p.AttackerPlayerID, p.AttackerSlot, p.AttackerInstanceID)
	case *rules.CombatState:
		fmt.Fprintf(buf, "PENDING:COMBAT|%s|%d|%s\n", p.AttackerPlayerID, p.AttackerSlot, p.AttackerInstanceID)
	}
}
