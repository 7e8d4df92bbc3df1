package models

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"gear-loadout-optimiser/internal/gear"
	"gear-loadout-optimiser/internal/stats"

	"github.com/rs/zerolog/log"
)

var ErrItemNotFound = errors.New("gear item not found")

type attributeRow struct {
	Kind     gear.AttributeKind `json:"kind"`
	Position int                `json:"position"`
	Stat     string             `json:"stat"`
	Value    float64            `json:"value"`
}

func attributeRows(item gear.Item) []attributeRow {
	attrs := item.Attributes()
	kinds := item.AttributeKinds()
	positions := make(map[gear.AttributeKind]int, 3)

	rows := make([]attributeRow, 0, len(attrs))
	for i, attr := range attrs {
		kind := kinds[i]
		rows = append(rows, attributeRow{Kind: kind, Position: positions[kind], Stat: attr.Stat.String(), Value: attr.Value})
		positions[kind]++
	}
	return rows
}

// itemFromRows rebuilds an item. Rows must be ordered by kind then position. Unknown
// stats are dropped.
func itemFromRows(id, name string, slot gear.Slot, rows []attributeRow) gear.Item {
	item := gear.Item{ID: id, Name: name, Slot: slot}
	for _, row := range rows {
		stat, ok := stats.Parse(row.Stat)
		if !ok {
			log.Warn().Msgf("Dropping unknown stat %q on item %s", row.Stat, id)
			continue
		}
		attr := gear.Attribute{Stat: stat, Value: row.Value}
		switch row.Kind {
		case gear.KindMain:
			item.Mains = append(item.Mains, attr)
		case gear.KindSub:
			item.Subs = append(item.Subs, attr)
		case gear.KindAddition:
			item.Addition = &attr
		default:
			log.Warn().Msgf("Dropping attribute of unknown kind %q on item %s", row.Kind, id)
		}
	}
	return item
}

const selectItems = `
	select gi.item_id,
				gi.name,
				gi.slot,
				coalesce(
					jsonb_agg(jsonb_build_object('kind', a.kind, 'position', a.position, 'stat', a.stat, 'value', a.value)
						order by a.kind, a.position) filter (where a.item_id is not null),
					'[]'::jsonb
				) as attributes
	from gear_items gi
					left join gear_item_attributes a on a.item_id = gi.item_id`

func scanItems(rows *sql.Rows) ([]gear.Item, error) {
	items := make([]gear.Item, 0)
	for rows.Next() {
		var id, name, slot, attributesStr string
		if err := rows.Scan(&id, &name, &slot, &attributesStr); err != nil {
			return nil, err
		}

		var attributes []attributeRow
		if err := json.Unmarshal([]byte(attributesStr), &attributes); err != nil {
			return nil, fmt.Errorf("failed to decode attributes of item %s: %w", id, err)
		}

		items = append(items, itemFromRows(id, name, gear.Slot(slot), attributes))
	}
	return items, rows.Err()
}

func GetGearItems(ctx context.Context, db *sql.DB) ([]gear.Item, error) {
	rows, err := db.QueryContext(ctx, selectItems+`
		group by gi.item_id, gi.name, gi.slot
		order by gi.slot, gi.item_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func GetGearItemByID(ctx context.Context, db *sql.DB, id string) (*gear.Item, error) {
	rows, err := db.QueryContext(ctx, selectItems+`
		where gi.item_id = $1
		group by gi.item_id, gi.name, gi.slot;`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	return &items[0], nil
}

// UpsertGearItem replaces the item and all of its attributes.
func UpsertGearItem(ctx context.Context, tx *sql.Tx, item gear.Item) error {
	if !item.Slot.Valid() {
		return fmt.Errorf("item %s has unknown slot %q", item.ID, item.Slot)
	}

	query := `INSERT INTO gear_items (
			item_id,
			name,
			slot
		)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO UPDATE SET
			name = $2,
			slot = $3,
			updated_at = now();`
	if _, err := tx.ExecContext(ctx, query, item.ID, item.Name, item.Slot); err != nil {
		return fmt.Errorf("failed to upsert item %s: %w", item.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM gear_item_attributes WHERE item_id = $1;`, item.ID); err != nil {
		return fmt.Errorf("failed to clear attributes of item %s: %w", item.ID, err)
	}

	for _, row := range attributeRows(item) {
		_, err := tx.ExecContext(ctx, `INSERT INTO gear_item_attributes (
				item_id,
				kind,
				position,
				stat,
				value
			)
			VALUES ($1, $2, $3, $4, $5);`, item.ID, row.Kind, row.Position, row.Stat, row.Value)
		if err != nil {
			return fmt.Errorf("failed to insert attribute of item %s: %w", item.ID, err)
		}
	}

	log.Debug().Msgf("Upserted gear item: ID: %s, Slot: %s", item.ID, item.Slot)

	return nil
}

func UpsertManyGearItem(ctx context.Context, tx *sql.Tx, items []gear.Item) error {
	for i := 0; i < len(items); i++ {
		if err := UpsertGearItem(ctx, tx, items[i]); err != nil {
			return err
		}
	}
	return nil
}

func DeleteGearItem(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM gear_items WHERE item_id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}

	return nil
}

func Purge(db *sql.DB) error {
	_, err := db.Exec(`TRUNCATE equipped_gear, gear_item_attributes, gear_items;`)
	return err
}
