package queue

import (
	"database/sql"

	"gear-loadout-optimiser/internal/jobs"
)

// PgStatusRecorder writes job status transitions to optimise_jobs and reads them back.
type PgStatusRecorder struct {
	db *sql.DB
}

func CreatePgStatusRecorder(db *sql.DB) *PgStatusRecorder {
	return &PgStatusRecorder{
		db: db,
	}
}

func (r *PgStatusRecorder) Queued(jobID string) error {
	return CreateQueueEntry(r.db, jobID)
}

func (r *PgStatusRecorder) Processing(jobID string) error {
	return SetQueueProcessing(r.db, jobID)
}

func (r *PgStatusRecorder) Completed(jobID string, estimatedCombos int64, totalCombos int64) error {
	return SetQueueCompleted(r.db, jobID, estimatedCombos, totalCombos)
}

func (r *PgStatusRecorder) Cancelled(jobID string) error {
	return SetQueueCancelled(r.db, jobID)
}

func (r *PgStatusRecorder) Failed(jobID string, message string) error {
	return SetQueueFailed(r.db, jobID, message)
}

func (r *PgStatusRecorder) Entry(jobID string) (*jobs.Snapshot, error) {
	entry, err := GetQueueEntry(r.db, jobID)
	if err != nil || entry == nil {
		return nil, err
	}
	snapshot := entry.Snapshot()
	return &snapshot, nil
}

func (r *PgStatusRecorder) Recent(limit int) ([]jobs.Snapshot, error) {
	entries, err := GetRecentQueueEntries(r.db, limit)
	if err != nil {
		return nil, err
	}

	snapshots := make([]jobs.Snapshot, 0, len(entries))
	for _, entry := range entries {
		snapshots = append(snapshots, entry.Snapshot())
	}
	return snapshots, nil
}
