package queue

import (
	"database/sql"
	"fmt"
	"time"

	"gear-loadout-optimiser/internal/jobs"

	"github.com/rs/zerolog/log"
)

// QueueStatus represents the status of an optimisation job
type QueueStatus string

const (
	StatusQueued     QueueStatus = "Queued"
	StatusProcessing QueueStatus = "Processing"
	StatusCompleted  QueueStatus = "Completed"
	StatusCancelled  QueueStatus = "Cancelled"
	StatusFailed     QueueStatus = "Failed"
)

// QueueEntry is the durable status of one optimisation job. Results are not stored.
type QueueEntry struct {
	JobID           string
	Status          QueueStatus
	EstimatedCombos *int64
	TotalCombos     *int64
	CreatedAt       time.Time
	StartedAt       *time.Time
	CompletedAt     *time.Time
	ErrorMessage    *string
}

var jobStatuses = map[QueueStatus]jobs.Status{
	StatusQueued:     jobs.StatusQueued,
	StatusProcessing: jobs.StatusRunning,
	StatusCompleted:  jobs.StatusCompleted,
	StatusCancelled:  jobs.StatusCancelled,
	StatusFailed:     jobs.StatusFailed,
}

// Snapshot converts the entry to the job manager's view. Progress of a completed job is
// its combination counts.
func (e QueueEntry) Snapshot() jobs.Snapshot {
	snapshot := jobs.Snapshot{
		JobID:      e.JobID,
		Status:     jobStatuses[e.Status],
		CreatedAt:  e.CreatedAt,
		FinishedAt: e.CompletedAt,
	}
	if e.TotalCombos != nil {
		snapshot.Current = *e.TotalCombos
	}
	if e.EstimatedCombos != nil {
		snapshot.Total = *e.EstimatedCombos
	}
	if e.ErrorMessage != nil {
		snapshot.Error = *e.ErrorMessage
	}
	return snapshot
}

// CreateQueueEntry records a queued job. Re-using a job id resets its entry.
func CreateQueueEntry(db *sql.DB, jobID string) error {
	query := `INSERT INTO optimise_jobs (
		job_id,
		status
	) VALUES ($1, $2)
	ON CONFLICT (job_id) DO UPDATE SET
		status = $2,
		estimated_combos = null,
		total_combos = null,
		created_at = now(),
		started_at = null,
		completed_at = null,
		error_message = null;`

	if _, err := db.Exec(query, jobID, StatusQueued); err != nil {
		return fmt.Errorf("failed to create queue entry for job %s: %w", jobID, err)
	}

	log.Debug().Msgf("Created queue entry for job %s", jobID)
	return nil
}

// SetQueueProcessing marks a job as being processed
func SetQueueProcessing(db *sql.DB, jobID string) error {
	query := `
		UPDATE optimise_jobs
		SET status = $1, started_at = $2
		WHERE job_id = $3;`

	_, err := db.Exec(query, StatusProcessing, time.Now(), jobID)
	if err != nil {
		return fmt.Errorf("failed to set job %s as processing: %w", jobID, err)
	}

	log.Debug().Msgf("Job %s marked as processing", jobID)
	return nil
}

// SetQueueCompleted marks a job as completed with its combination counts
func SetQueueCompleted(db *sql.DB, jobID string, estimatedCombos int64, totalCombos int64) error {
	query := `
		UPDATE optimise_jobs
		SET status = $1, completed_at = $2, estimated_combos = $3, total_combos = $4
		WHERE job_id = $5;`

	_, err := db.Exec(query, StatusCompleted, time.Now(), estimatedCombos, totalCombos, jobID)
	if err != nil {
		return fmt.Errorf("failed to set job %s as completed: %w", jobID, err)
	}

	log.Debug().Msgf("Job %s marked as completed", jobID)
	return nil
}

// SetQueueCancelled marks a job as cancelled by its caller
func SetQueueCancelled(db *sql.DB, jobID string) error {
	query := `
		UPDATE optimise_jobs
		SET status = $1, completed_at = $2
		WHERE job_id = $3;`

	_, err := db.Exec(query, StatusCancelled, time.Now(), jobID)
	if err != nil {
		return fmt.Errorf("failed to set job %s as cancelled: %w", jobID, err)
	}

	log.Debug().Msgf("Job %s marked as cancelled", jobID)
	return nil
}

// SetQueueFailed marks a job as failed with an error message
func SetQueueFailed(db *sql.DB, jobID string, errorMsg string) error {
	query := `
		UPDATE optimise_jobs
		SET status = $1, completed_at = $2, error_message = $3
		WHERE job_id = $4;`

	_, err := db.Exec(query, StatusFailed, time.Now(), errorMsg, jobID)
	if err != nil {
		return fmt.Errorf("failed to set job %s as failed: %w", jobID, err)
	}

	log.Debug().Msgf("Job %s marked as failed: %s", jobID, errorMsg)
	return nil
}

// GetQueueEntry returns nil when the job has never been recorded
func GetQueueEntry(db *sql.DB, jobID string) (*QueueEntry, error) {
	query := `
		SELECT
			job_id,
			status,
			estimated_combos,
			total_combos,
			created_at,
			started_at,
			completed_at,
			error_message
		FROM optimise_jobs
		WHERE job_id = $1;`

	var entry QueueEntry
	err := db.QueryRow(query, jobID).Scan(
		&entry.JobID,
		&entry.Status,
		&entry.EstimatedCombos,
		&entry.TotalCombos,
		&entry.CreatedAt,
		&entry.StartedAt,
		&entry.CompletedAt,
		&entry.ErrorMessage,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job %s: %w", jobID, err)
	}

	return &entry, nil
}

// GetRecentQueueEntries lists the most recently created jobs first
func GetRecentQueueEntries(db *sql.DB, limit int) ([]QueueEntry, error) {
	rows, err := db.Query(`
		SELECT job_id, status, estimated_combos, total_combos, created_at, started_at, completed_at, error_message
		FROM optimise_jobs
		ORDER BY created_at DESC
		LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	entries := make([]QueueEntry, 0)
	for rows.Next() {
		var entry QueueEntry
		err := rows.Scan(
			&entry.JobID,
			&entry.Status,
			&entry.EstimatedCombos,
			&entry.TotalCombos,
			&entry.CreatedAt,
			&entry.StartedAt,
			&entry.CompletedAt,
			&entry.ErrorMessage,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
