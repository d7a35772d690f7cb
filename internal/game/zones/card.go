// Package zones holds card instances and the per-player zone containers.
package zones

import (
	"fmt"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
)

// CardInstance is a mutable copy of a catalog card bound to an owner.
// The definition is shared and read-only; runtime keyword grants are kept
// in an instance-local slice created on first write.
type CardInstance struct {
	InstanceID   string
	OwnerID      string
	Definition   *catalog.CardDefinition
	CurrentPower int
	Tapped       bool
	FaceDown     bool
	CanAttack    bool
	SilencedTurn int // turn sequence number of the silence, 0 when never silenced

	granted []catalog.Keyword
}

// CardID returns the catalog identifier.
func (c *CardInstance) CardID() string { return c.Definition.ID }

// Name returns the display name.
func (c *CardInstance) Name() string { return c.Definition.Name }

// Type returns the card type.
func (c *CardInstance) Type() catalog.CardType { return c.Definition.Type }

// Cost returns the energy cost.
func (c *CardInstance) Cost() int { return c.Definition.Cost }

// IsUnit reports whether the card is a UNIT.
func (c *CardInstance) IsUnit() bool { return c.Definition.Type == catalog.TypeUnit }

// Effects returns the shared effect list.
func (c *CardInstance) Effects() []catalog.EffectDefinition { return c.Definition.Effects }

// Keywords returns the effective keyword set.
func (c *CardInstance) Keywords() []catalog.Keyword {
	if c.granted != nil {
		out := make([]catalog.Keyword, len(c.granted))
		copy(out, c.granted)
		return out
	}
	out := make([]catalog.Keyword, len(c.Definition.Keywords))
	copy(out, c.Definition.Keywords)
	return out
}

// HasKeyword checks the effective keyword set.
func (c *CardInstance) HasKeyword(k catalog.Keyword) bool {
	set := c.Definition.Keywords
	if c.granted != nil {
		set = c.granted
	}
	for _, kw := range set {
		if kw == k {
			return true
		}
	}
	return false
}

// GrantKeyword adds k to this instance only.
func (c *CardInstance) GrantKeyword(k catalog.Keyword) {
	if c.HasKeyword(k) {
		return
	}
	if c.granted == nil {
		c.granted = make([]catalog.Keyword, len(c.Definition.Keywords), len(c.Definition.Keywords)+1)
		copy(c.granted, c.Definition.Keywords)
	}
	c.granted = append(c.granted, k)
}

// HasGrants reports whether the instance carries runtime keyword grants.
func (c *CardInstance) HasGrants() bool { return c.granted != nil }

// IsSilencedDuring reports whether the unit was silenced in the given turn.
func (c *CardInstance) IsSilencedDuring(turnSeq int) bool {
	return c.SilencedTurn != 0 && c.SilencedTurn == turnSeq
}

// Matches applies a catalog filter using the effective keyword set.
func (c *CardInstance) Matches(f *catalog.Filter) bool {
	return f.Matches(c.Definition, c.Keywords())
}

// Clone returns a deep copy sharing only the definition.
func (c *CardInstance) Clone() *CardInstance {
	if c == nil {
		return nil
	}
	cp := *c
	if c.granted != nil {
		cp.granted = make([]catalog.Keyword, len(c.granted))
		copy(cp.granted, c.granted)
	}
	return &cp
}

func (c *CardInstance) String() string {
	return fmt.Sprintf("%s[%s]", c.Definition.ID, c.InstanceID)
}
