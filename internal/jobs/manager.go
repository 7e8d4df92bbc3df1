package jobs

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"gear-loadout-optimiser/internal/cache"
	"gear-loadout-optimiser/internal/optimizer"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

type Config struct {
	// Concurrency is the number of searches run at once. Zero uses the CPU count.
	Concurrency int64
	Options     optimizer.Options
	Recorder    StatusRecorder
}

type job struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager runs optimisation jobs in the background. Starting a job with the id of a
// running job cancels the running one and waits for it before the new one begins.
type Manager struct {
	mu      sync.Mutex
	running map[string]*job

	snapshots cache.Store[Snapshot]
	sem       *semaphore.Weighted
	opts      optimizer.Options
	recorder  StatusRecorder

	ctx      context.Context
	shutdown context.CancelFunc
	wg       sync.WaitGroup
}

func NewManager(cfg Config) *Manager {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = int64(runtime.NumCPU())
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		running:   make(map[string]*job),
		snapshots: cache.NewMemoryStore[Snapshot](),
		sem:       semaphore.NewWeighted(concurrency),
		opts:      cfg.Options,
		recorder:  cfg.Recorder,
		ctx:       ctx,
		shutdown:  cancel,
	}
}

// Start launches a search and returns its job id. An empty jobID is replaced by a new uuid.
func (m *Manager) Start(jobID string, req optimizer.Request, listener Listener) (string, error) {
	if jobID == "" {
		jobID = uuid.NewString()
	}
	if err := m.ctx.Err(); err != nil {
		return "", fmt.Errorf("job manager is shut down: %w", err)
	}

	m.mu.Lock()
	for {
		prev, ok := m.running[jobID]
		if !ok {
			break
		}
		m.mu.Unlock()
		log.Debug().Msgf("Replacing running job %s", jobID)
		prev.cancel()
		<-prev.done
		m.mu.Lock()
	}

	// Shutdown cancels m.ctx under m.mu, so a job registered here is always awaited.
	if err := m.ctx.Err(); err != nil {
		m.mu.Unlock()
		return "", fmt.Errorf("job manager is shut down: %w", err)
	}

	ctx, cancel := context.WithCancel(m.ctx)
	j := &job{id: jobID, cancel: cancel, done: make(chan struct{})}
	m.running[jobID] = j
	m.wg.Add(1)
	m.mu.Unlock()

	m.snapshots.Store(jobID, Snapshot{
		JobID:     jobID,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
	})
	m.record(jobID, func(r StatusRecorder) error { return r.Queued(jobID) })

	go m.run(ctx, j, req, listener)

	return jobID, nil
}

func (m *Manager) run(ctx context.Context, j *job, req optimizer.Request, listener Listener) {
	defer m.wg.Done()
	defer close(j.done)
	defer func() {
		m.mu.Lock()
		if m.running[j.id] == j {
			delete(m.running, j.id)
		}
		m.mu.Unlock()
		j.cancel()
	}()

	emit := func(e Event) {
		e.JobID = j.id
		if listener != nil {
			listener(e)
		}
	}

	if err := m.sem.Acquire(ctx, 1); err != nil {
		m.finishCancelled(j.id, emit)
		return
	}
	defer m.sem.Release(1)

	m.update(j.id, func(s *Snapshot) { s.Status = StatusRunning })
	m.record(j.id, func(r StatusRecorder) error { return r.Processing(j.id) })

	opts := m.opts
	opts.Progress = func(current, total int64) {
		m.update(j.id, func(s *Snapshot) {
			s.Current = current
			s.Total = total
		})
		emit(Event{Type: EventProgress, Current: current, Total: total})
	}

	computation, err := optimizer.Optimize(ctx, req, opts)
	switch {
	case err == nil:
		m.update(j.id, func(s *Snapshot) {
			s.Status = StatusCompleted
			s.Result = computation
			s.Current = computation.TotalCombos
			s.Total = computation.EstimatedCombos
			s.FinishedAt = now()
		})
		m.record(j.id, func(r StatusRecorder) error {
			return r.Completed(j.id, computation.EstimatedCombos, computation.TotalCombos)
		})
		log.Info().Msgf("Job %s completed: %d combinations, %d results", j.id, computation.TotalCombos, len(computation.Results))
		emit(Event{Type: EventDone, Current: computation.TotalCombos, Total: computation.EstimatedCombos, Result: computation})
	case optimizer.IsCancelled(err):
		m.finishCancelled(j.id, emit)
	default:
		m.update(j.id, func(s *Snapshot) {
			s.Status = StatusFailed
			s.Error = err.Error()
			s.FinishedAt = now()
		})
		m.record(j.id, func(r StatusRecorder) error { return r.Failed(j.id, err.Error()) })
		if errors.Is(err, optimizer.ErrTooManyCombinations) {
			log.Warn().Err(err).Msgf("Job %s refused", j.id)
		} else {
			log.Error().Err(err).Msgf("Job %s failed", j.id)
		}
		emit(Event{Type: EventError, Err: err})
	}
}

func (m *Manager) finishCancelled(jobID string, emit func(Event)) {
	m.update(jobID, func(s *Snapshot) {
		s.Status = StatusCancelled
		s.Result = nil
		s.FinishedAt = now()
	})
	m.record(jobID, func(r StatusRecorder) error { return r.Cancelled(jobID) })
	log.Debug().Msgf("Job %s cancelled", jobID)
	emit(Event{Type: EventCancelled})
}

// Cancel stops a running job. Cancelling a finished job is a no-op.
func (m *Manager) Cancel(jobID string) error {
	m.mu.Lock()
	j, ok := m.running[jobID]
	m.mu.Unlock()

	if ok {
		j.cancel()
		return nil
	}
	if _, ok := m.snapshots.Get(jobID); ok {
		return nil
	}
	return ErrJobNotFound
}

func (m *Manager) Get(jobID string) (Snapshot, error) {
	snapshot, ok := m.snapshots.Get(jobID)
	if !ok {
		return Snapshot{}, ErrJobNotFound
	}
	return snapshot, nil
}

// Wait blocks until the job reaches a terminal state or ctx is done.
func (m *Manager) Wait(ctx context.Context, jobID string) (Snapshot, error) {
	m.mu.Lock()
	j, ok := m.running[jobID]
	m.mu.Unlock()

	if ok {
		select {
		case <-j.done:
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		}
	}

	return m.Get(jobID)
}

// Forget drops the snapshot of a finished job.
func (m *Manager) Forget(jobID string) error {
	m.mu.Lock()
	_, running := m.running[jobID]
	m.mu.Unlock()

	if running {
		return fmt.Errorf("job %s is still running", jobID)
	}
	if _, ok := m.snapshots.Get(jobID); !ok {
		return ErrJobNotFound
	}
	m.snapshots.Delete(jobID)
	return nil
}

func (m *Manager) Jobs() []string {
	return m.snapshots.Keys()
}

// Shutdown cancels every job and waits for them to finish.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.shutdown()
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Manager) update(jobID string, fn func(s *Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot, ok := m.snapshots.Get(jobID)
	if !ok {
		return
	}
	fn(&snapshot)
	m.snapshots.Store(jobID, snapshot)
}

func (m *Manager) record(jobID string, fn func(r StatusRecorder) error) {
	if m.recorder == nil {
		return
	}
	if err := fn(m.recorder); err != nil {
		log.Warn().Err(err).Msgf("Failed to record status of job %s", jobID)
	}
}

func now() *time.Time {
	t := time.Now()
	return &t
}
