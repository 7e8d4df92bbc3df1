package models

import (
	"context"
	"database/sql"
	"fmt"

	"gear-loadout-optimiser/internal/gear"
)

// PgGearStore is the Postgres backed gear inventory.
type PgGearStore struct {
	db *sql.DB
}

func CreatePgGearStore(db *sql.DB) *PgGearStore {
	return &PgGearStore{
		db: db,
	}
}

func (s *PgGearStore) Items(ctx context.Context) ([]gear.Item, error) {
	return GetGearItems(ctx, s.db)
}

func (s *PgGearStore) Item(ctx context.Context, id string) (*gear.Item, error) {
	return GetGearItemByID(ctx, s.db, id)
}

func (s *PgGearStore) SaveItem(ctx context.Context, item gear.Item) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return UpsertGearItem(ctx, tx, item)
	})
}

func (s *PgGearStore) DeleteItem(ctx context.Context, id string) error {
	return DeleteGearItem(ctx, s.db, id)
}

func (s *PgGearStore) Loadout(ctx context.Context) (gear.Loadout, error) {
	return GetEquipped(ctx, s.db)
}

func (s *PgGearStore) SetLoadout(ctx context.Context, loadout gear.Loadout) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return SetEquipped(ctx, tx, loadout)
	})
}

// Import stores every item of a profile and replaces the equipped loadout.
func (s *PgGearStore) Import(ctx context.Context, items []gear.Item, loadout gear.Loadout) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := UpsertManyGearItem(ctx, tx, items); err != nil {
			return err
		}
		return SetEquipped(ctx, tx, loadout)
	})
}

func (s *PgGearStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
