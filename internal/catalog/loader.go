package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Record is the on-disk shape of a card. It accepts the legacy aliases
// `value` for amount, `stats.atk` for bp, DAMAGE_ENEMY and BUFF_ATK.
type Record struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Type        string         `json:"type" yaml:"type"`
	Cost        int            `json:"cost" yaml:"cost"`
	BP          *int           `json:"bp,omitempty" yaml:"bp,omitempty"`
	Stats       *StatsRecord   `json:"stats,omitempty" yaml:"stats,omitempty"`
	Keywords    []string       `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string         `json:"image,omitempty" yaml:"image,omitempty"`
	Effects     []EffectRecord `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// StatsRecord is the legacy stats block.
type StatsRecord struct {
	Atk int `json:"atk" yaml:"atk"`
}

// EffectRecord is the on-disk shape of an effect.
type EffectRecord struct {
	Action    string        `json:"action" yaml:"action"`
	Amount    *int          `json:"amount,omitempty" yaml:"amount,omitempty"`
	Value     *int          `json:"value,omitempty" yaml:"value,omitempty"`
	Target    string        `json:"target,omitempty" yaml:"target,omitempty"`
	Trigger   string        `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Filter    *FilterRecord `json:"filter,omitempty" yaml:"filter,omitempty"`
	Shuffle   bool          `json:"shuffle,omitempty" yaml:"shuffle,omitempty"`
	Condition string        `json:"condition,omitempty" yaml:"condition,omitempty"`
	Threshold int           `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	GrantRush bool          `json:"grantRush,omitempty" yaml:"grantRush,omitempty"`
}

// FilterRecord is the on-disk shape of a filter.
type FilterRecord struct {
	Type         string `json:"type,omitempty" yaml:"type,omitempty"`
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	NameIncludes string `json:"nameIncludes,omitempty" yaml:"nameIncludes,omitempty"`
	Keyword      string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Cost         *int   `json:"cost,omitempty" yaml:"cost,omitempty"`
	MaxCost      *int   `json:"maxCost,omitempty" yaml:"maxCost,omitempty"`
}

// Format names a serialisation of catalog records.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parse decodes a list of records in the given format and builds a catalog.
func Parse(data []byte, format Format) (*Catalog, error) {
	var records []Record
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &records)
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	default:
		return nil, gameerr.Newf(gameerr.CodeInvalidCatalog, "unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, gameerr.Wrap(gameerr.CodeInvalidCatalog, "decode catalog", err)
	}
	return FromRecords(records)
}

// Encode serialises records in the given format, the inverse of Parse.
func Encode(records []Record, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(records, "", "  ")
	case FormatYAML:
		return yaml.Marshal(records)
	}
	return nil, gameerr.Newf(gameerr.CodeInvalidCatalog, "unsupported catalog format %q", format)
}

// LoadFile reads a catalog file, choosing the decoder from its extension.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gameerr.Wrap(gameerr.CodeInvalidCatalog, "read catalog "+path, err)
	}
	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return Parse(data, format)
}

// FromRecords normalises records and builds a catalog.
func FromRecords(records []Record) (*Catalog, error) {
	defs := make([]CardDefinition, 0, len(records))
	for _, r := range records {
		def, err := r.Definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return New(defs)
}

// Definition converts the record into a normalised definition.
func (r Record) Definition() (CardDefinition, error) {
	def := CardDefinition{
		ID:          r.ID,
		Name:        r.Name,
		Type:        CardType(strings.ToUpper(r.Type)),
		Cost:        r.Cost,
		Description: r.Description,
		Image:       r.Image,
	}
	if def.Type == TypeUnit {
		switch {
		case r.BP != nil:
			def.BasePower = *r.BP
		case r.Stats != nil:
			def.BasePower = r.Stats.Atk
		}
	}
	for _, kw := range r.Keywords {
		def.Keywords = append(def.Keywords, Keyword(strings.ToUpper(kw)))
	}
	for i, er := range r.Effects {
		eff, err := er.definition()
		if err != nil {
			return CardDefinition{}, fmt.Errorf("card %s effect %d: %w", r.ID, i, err)
		}
		def.Effects = append(def.Effects, eff)
	}
	return def, nil
}

func (er EffectRecord) definition() (EffectDefinition, error) {
	action := EffectAction(strings.ToUpper(er.Action))
	target := TargetSpec(strings.ToUpper(er.Target))

	switch action {
	case ActionDamageEnemy:
		action = ActionDamagePlayer
		target = TargetOpponent
	case ActionBuffAtk:
		action = ActionBuffUnitBP
	}
	if !action.Valid() {
		return EffectDefinition{}, gameerr.Newf(gameerr.CodeInvalidCatalog, "unknown action %q", er.Action)
	}
	if target == "" {
		target = TargetNone
	}

	amount := defaultAmount(action)
	switch {
	case er.Amount != nil:
		amount = *er.Amount
	case er.Value != nil:
		amount = *er.Value
	}

	trigger := Trigger(strings.ToUpper(er.Trigger))
	if trigger == "" {
		trigger = TriggerEnter
		if action == ActionActivate {
			trigger = TriggerActivate
		}
	}

	eff := EffectDefinition{
		Action:    action,
		Amount:    amount,
		Target:    target,
		Trigger:   trigger,
		Shuffle:   er.Shuffle,
		Condition: er.Condition,
		Threshold: er.Threshold,
		GrantRush: er.GrantRush,
	}
	if er.Filter != nil {
		eff.Filter = &Filter{
			Type:         CardType(strings.ToUpper(er.Filter.Type)),
			ID:           er.Filter.ID,
			NameIncludes: er.Filter.NameIncludes,
			Keyword:      Keyword(strings.ToUpper(er.Filter.Keyword)),
			Cost:         er.Filter.Cost,
			MaxCost:      er.Filter.MaxCost,
		}
	}
	return eff, nil
}

// defaultAmount is used when neither amount nor value is given.
func defaultAmount(action EffectAction) int {
	switch action {
	case ActionSummonFromEnergy, ActionActivate:
		return 0
	default:
		return 1
	}
}

// Records converts definitions back into their canonical on-disk shape.
func Records(defs []*CardDefinition) []Record {
	out := make([]Record, 0, len(defs))
	for _, d := range defs {
		r := Record{
			ID:          d.ID,
			Name:        d.Name,
			Type:        string(d.Type),
			Cost:        d.Cost,
			Description: d.Description,
			Image:       d.Image,
		}
		if d.HasPower() {
			bp := d.BasePower
			r.BP = &bp
		}
		for _, kw := range d.Keywords {
			r.Keywords = append(r.Keywords, string(kw))
		}
		for _, e := range d.Effects {
			amount := e.Amount
			er := EffectRecord{
				Action:    string(e.Action),
				Amount:    &amount,
				Target:    string(e.Target),
				Trigger:   string(e.Trigger),
				Shuffle:   e.Shuffle,
				Condition: e.Condition,
				Threshold: e.Threshold,
				GrantRush: e.GrantRush,
			}
			if e.Filter != nil {
				er.Filter = &FilterRecord{
					Type:         string(e.Filter.Type),
					ID:           e.Filter.ID,
					NameIncludes: e.Filter.NameIncludes,
					Keyword:      string(e.Filter.Keyword),
					Cost:         e.Filter.Cost,
					MaxCost:      e.Filter.MaxCost,
				}
			}
			r.Effects = append(r.Effects, er)
		}
		out = append(out, r)
	}
	return out
}
