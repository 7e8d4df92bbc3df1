package models

import (
	"context"
	"database/sql"
	"fmt"

	"gear-loadout-optimiser/internal/gear"
)

func GetEquipped(ctx context.Context, db *sql.DB) (gear.Loadout, error) {
	rows, err := db.QueryContext(ctx, `select slot, item_id from equipped_gear where item_id is not null;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loadout := make(gear.Loadout)
	for rows.Next() {
		var slot, itemID string
		if err := rows.Scan(&slot, &itemID); err != nil {
			return nil, err
		}
		loadout[gear.Slot(slot)] = itemID
	}

	return loadout, rows.Err()
}

// SetEquipped replaces the whole equipped loadout. Empty ids leave the slot empty.
func SetEquipped(ctx context.Context, tx *sql.Tx, loadout gear.Loadout) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM equipped_gear;`); err != nil {
		return fmt.Errorf("failed to clear equipped gear: %w", err)
	}

	for _, slot := range gear.Slots {
		itemID := loadout[slot]
		if itemID == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO equipped_gear (slot, item_id) VALUES ($1, $2);`, slot, itemID)
		if err != nil {
			return fmt.Errorf("failed to equip %s in %s: %w", itemID, slot, err)
		}
	}

	return nil
}
