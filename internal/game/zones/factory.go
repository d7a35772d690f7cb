package zones

import (
	"fmt"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
)

// Factory creates card instances with identifiers unique within its prefix.
type Factory struct {
	catalog *catalog.Catalog
	prefix  string
	next    uint64
}

// NewFactory creates a factory. The prefix is normally the match id.
func NewFactory(cat *catalog.Catalog, prefix string) *Factory {
	return &Factory{catalog: cat, prefix: prefix}
}

// CreateInstance looks cardID up and returns a fresh instance owned by ownerID.
func (f *Factory) CreateInstance(cardID, ownerID string) (*CardInstance, error) {
	def, err := f.catalog.Lookup(cardID)
	if err != nil {
		return nil, err
	}
	f.next++
	inst := &CardInstance{
		InstanceID: fmt.Sprintf("%s-%d", f.prefix, f.next),
		OwnerID:    ownerID,
		Definition: def,
	}
	if def.HasPower() {
		inst.CurrentPower = def.BasePower
	}
	return inst, nil
}

// CreateAll instantiates every id in order. It fails on the first unknown id.
func (f *Factory) CreateAll(cardIDs []string, ownerID string) ([]*CardInstance, error) {
	out := make([]*CardInstance, 0, len(cardIDs))
	for _, id := range cardIDs {
		inst, err := f.CreateInstance(id, ownerID)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Issued returns how many instances the factory has created.
func (f *Factory) Issued() uint64 {
	return f.next
}
