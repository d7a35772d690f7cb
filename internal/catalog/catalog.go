package catalog

import (
	"fmt"
	"sort"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Catalog is a read-only registry of card definitions keyed by identifier.
// A Catalog is safe for concurrent use once built.
type Catalog struct {
	cards map[string]*CardDefinition
	order []string
}

// New builds a catalog from fully-normalised definitions. Identifiers must be unique.
func New(defs []CardDefinition) (*Catalog, error) {
	c := &Catalog{
		cards: make(map[string]*CardDefinition, len(defs)),
		order: make([]string, 0, len(defs)),
	}
	for i := range defs {
		def := defs[i]
		if err := validate(&def); err != nil {
			return nil, err
		}
		if _, dup := c.cards[def.ID]; dup {
			return nil, gameerr.Newf(gameerr.CodeInvalidCatalog, "duplicate card id %q", def.ID)
		}
		c.cards[def.ID] = &def
		c.order = append(c.order, def.ID)
	}
	return c, nil
}

// MustNew is New but panics on error. Intended for package-level catalogs.
func MustNew(defs []CardDefinition) *Catalog {
	c, err := New(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the definition for id or an UnknownCard error.
func (c *Catalog) Lookup(id string) (*CardDefinition, error) {
	def, ok := c.cards[id]
	if !ok {
		return nil, gameerr.UnknownCard(id)
	}
	return def, nil
}

// Has reports whether id is present.
func (c *Catalog) Has(id string) bool {
	_, ok := c.cards[id]
	return ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// IDs returns identifiers in load order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// ByType returns identifiers of the given type, sorted.
func (c *Catalog) ByType(t CardType) []string {
	var out []string
	for id, def := range c.cards {
		if def.Type == t {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Definitions returns the definitions in load order.
func (c *Catalog) Definitions() []*CardDefinition {
	out := make([]*CardDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.cards[id])
	}
	return out
}

func validate(def *CardDefinition) error {
	if def.ID == "" {
		return gameerr.New(gameerr.CodeInvalidCatalog, "card id must not be empty")
	}
	if !def.Type.Valid() {
		return gameerr.Newf(gameerr.CodeInvalidCatalog, "card %s: unknown type %q", def.ID, def.Type)
	}
	if def.Cost < 0 {
		return gameerr.Newf(gameerr.CodeInvalidCatalog, "card %s: negative cost %d", def.ID, def.Cost)
	}
	if def.Type != TypeUnit && def.BasePower != 0 {
		return gameerr.Newf(gameerr.CodeInvalidCatalog, "card %s: only units carry power", def.ID)
	}
	for i, eff := range def.Effects {
		if !eff.Action.Valid() {
			return gameerr.Newf(gameerr.CodeInvalidCatalog, "card %s effect %d: unknown action %q", def.ID, i, eff.Action)
		}
		if !eff.Target.Valid() {
			return gameerr.Newf(gameerr.CodeInvalidCatalog, "card %s effect %d: unknown target %q", def.ID, i, eff.Target)
		}
		if !eff.Trigger.Valid() {
			return gameerr.Newf(gameerr.CodeInvalidCatalog, "card %s effect %d: unknown trigger %q", def.ID, i, eff.Trigger)
		}
		if eff.Filter != nil && eff.Filter.Type != "" && !eff.Filter.Type.Valid() {
			return gameerr.Newf(gameerr.CodeInvalidCatalog, "card %s effect %d: unknown filter type %q", def.ID, i, eff.Filter.Type)
		}
	}
	return nil
}

// String renders a short description for logs.
func (d *CardDefinition) String() string {
	if d.HasPower() {
		return fmt.Sprintf("%s %q (%s, cost %d, %d BP)", d.ID, d.Name, d.Type, d.Cost, d.BasePower)
	}
	return fmt.Sprintf("%s %q (%s, cost %d)", d.ID, d.Name, d.Type, d.Cost)
}
