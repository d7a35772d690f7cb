package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/gameerr"
)

// Querier is the subset of *pgxpool.Pool used by the catalog store.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema creates the card table if it does not exist.
const Schema = `
CREATE TABLE IF NOT EXISTS rift_cards (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	name        TEXT NOT NULL,
	card_type   TEXT NOT NULL,
	cost        INTEGER NOT NULL DEFAULT 0,
	bp          INTEGER,
	keywords    TEXT[] NOT NULL DEFAULT '{}',
	description TEXT NOT NULL DEFAULT '',
	image       TEXT NOT NULL DEFAULT '',
	effects     JSONB NOT NULL DEFAULT '[]'
)`

const selectCards = `
SELECT id, name, card_type, cost, bp, keywords, description, image, effects
FROM rift_cards
ORDER BY position, id`

const upsertCard = `
INSERT INTO rift_cards (id, position, name, card_type, cost, bp, keywords, description, image, effects)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	position = EXCLUDED.position,
	name = EXCLUDED.name,
	card_type = EXCLUDED.card_type,
	cost = EXCLUDED.cost,
	bp = EXCLUDED.bp,
	keywords = EXCLUDED.keywords,
	description = EXCLUDED.description,
	image = EXCLUDED.image,
	effects = EXCLUDED.effects`

// LoadFromPostgres reads every card row and builds a catalog.
func LoadFromPostgres(ctx context.Context, db Querier) (*Catalog, error) {
	rows, err := db.Query(ctx, selectCards)
	if err != nil {
		return nil, gameerr.Wrap(gameerr.CodeInvalidCatalog, "query cards", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r       Record
			bp      *int
			effects []byte
		)
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Cost, &bp, &r.Keywords, &r.Description, &r.Image, &effects); err != nil {
			return nil, gameerr.Wrap(gameerr.CodeInvalidCatalog, "scan card row", err)
		}
		r.BP = bp
		if len(effects) > 0 {
			if err := json.Unmarshal(effects, &r.Effects); err != nil {
				return nil, gameerr.Wrap(gameerr.CodeInvalidCatalog, fmt.Sprintf("decode effects for %s", r.ID), err)
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, gameerr.Wrap(gameerr.CodeInvalidCatalog, "iterate card rows", err)
	}
	return FromRecords(records)
}

// StoreRecords upserts records into the card table, creating it first.
// Records are normalised before writing so invalid data never reaches the table.
func StoreRecords(ctx context.Context, db Querier, records []Record) (int, error) {
	if _, err := FromRecords(records); err != nil {
		return 0, err
	}
	if _, err := db.Exec(ctx, Schema); err != nil {
		return 0, fmt.Errorf("create schema: %w", err)
	}
	written := 0
	for i, r := range records {
		def, err := r.Definition()
		if err != nil {
			return written, err
		}
		canonical := Records([]*CardDefinition{&def})[0]
		effects, err := json.Marshal(canonical.Effects)
		if err != nil {
			return written, fmt.Errorf("encode effects for %s: %w", r.ID, err)
		}
		if canonical.Effects == nil {
			effects = []byte("[]")
		}
		keywords := canonical.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		if _, err := db.Exec(ctx, upsertCard,
			canonical.ID, i, canonical.Name, canonical.Type, canonical.Cost, canonical.BP,
			keywords, canonical.Description, canonical.Image, effects,
		); err != nil {
			return written, fmt.Errorf("upsert card %s: %w", r.ID, err)
		}
		written++
	}
	return written, nil
}
