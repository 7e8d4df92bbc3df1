package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

func init() {
	goose.AddMigrationContext(upGearInventory, downGearInventory)
}

func upGearInventory(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		create table gear_items
		(
			item_id varchar primary key,
			name varchar not null default '',
			slot varchar not null check (slot in ('weapon_1', 'weapon_2', 'ring', 'talisman', 'head', 'chest', 'hand', 'leg')),
			created_at timestamp with time zone not null default now(),
			updated_at timestamp with time zone not null default now()
		);`)
	if err != nil {
		log.Error().Err(err).Msg("failed to create gear_items table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create table gear_item_attributes
		(
			item_id varchar not null references gear_items (item_id) on delete cascade,
			kind varchar not null check (kind in ('main', 'sub', 'addition')),
			position int not null,
			stat varchar not null,
			value double precision not null,
			primary key (item_id, kind, position)
		);`)
	if err != nil {
		log.Error().Err(err).Msg("failed to create gear_item_attributes table")
		return err
	}

	_, err = tx.ExecContext(ctx, `create index idx_gear_items_slot on gear_items(slot);`)
	if err != nil {
		log.Error().Err(err).Msg("failed to create slot index on gear_items table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create table equipped_gear
		(
			slot varchar primary key,
			item_id varchar references gear_items (item_id) on delete set null
		);`)
	if err != nil {
		log.Error().Err(err).Msg("failed to create equipped_gear table")
		return err
	}

	return nil
}

func downGearInventory(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `drop table if exists equipped_gear, gear_item_attributes, gear_items;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to drop gear inventory tables")
		return err
	}

	return nil
}
