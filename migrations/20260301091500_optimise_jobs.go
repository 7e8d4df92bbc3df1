package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

func init() {
	goose.AddMigrationContext(upOptimiseJobs, downOptimiseJobs)
}

func upOptimiseJobs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		create table optimise_jobs
		(
			job_id varchar primary key,
			status varchar not null check (status in ('Queued', 'Processing', 'Completed', 'Cancelled', 'Failed')),
			estimated_combos bigint,
			total_combos bigint,
			created_at timestamp with time zone not null default now(),
			started_at timestamp with time zone,
			completed_at timestamp with time zone,
			error_message text
		);`)
	if err != nil {
		log.Error().Err(err).Msg("failed to create optimise_jobs table")
		return err
	}

	_, err = tx.ExecContext(ctx, `
		create index idx_optimise_jobs_status on optimise_jobs(status, created_at desc);`)
	if err != nil {
		log.Error().Err(err).Msg("failed to create status index on optimise_jobs table")
		return err
	}

	return nil
}

func downOptimiseJobs(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `drop table if exists optimise_jobs;`)
	if err != nil {
		log.Error().Err(err).Msg("failed to drop optimise_jobs table")
		return err
	}

	return nil
}
