// Package audit persists the history of job lifecycle operations.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"gigboard/internal/model"
	"gigboard/internal/repository"
	"gigboard/internal/service"
)

const (
	defaultBuffer    = 100
	defaultBatchSize = 10
	defaultInterval  = time.Second
)

// Option configures a Recorder.
type Option func(*Recorder)

// WithBatchSize sets how many events are written per batch.
func WithBatchSize(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithFlushInterval sets how often a partial batch is written.
func WithFlushInterval(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.interval = d
		}
	}
}

// Recorder is a service.JobObserver that queues one JobEvent per committed
// operation and writes them in batches from a single background goroutine.
type Recorder struct {
	repo      repository.JobEventRepository
	events    chan model.JobEvent
	done      chan struct{}
	batchSize int
	interval  time.Duration

	mu     sync.RWMutex
	closed bool
}

var _ service.JobObserver = (*Recorder)(nil)

// NewRecorder starts the background writer. Call Close to flush and stop it.
func NewRecorder(repo repository.JobEventRepository, opts ...Option) *Recorder {
	r := &Recorder{
		repo:      repo,
		events:    make(chan model.JobEvent, defaultBuffer),
		done:      make(chan struct{}),
		batchSize: defaultBatchSize,
		interval:  defaultInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	go r.run()
	return r
}

// JobChanged queues the change without blocking. When the queue is full or the
// recorder is closed the event is written synchronously.
func (r *Recorder) JobChanged(ctx context.Context, change service.JobChange) {
	event := eventFrom(change)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.closed {
		select {
		case r.events <- event:
			return
		default:
		}
	}

	// Queue full or closed, log synchronously as fallback
	if err := r.repo.CreateBatch(context.WithoutCancel(ctx), []model.JobEvent{event}); err != nil {
		log.Error().Err(err).Str("job_id", event.JobID.String()).Msg("write job event")
	}
}

// Close flushes queued events and stops the writer. It is safe to call more than once.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.events)
	}
	r.mu.Unlock()

	<-r.done
	return nil
}

func (r *Recorder) run() {
	defer close(r.done)

	batch := make([]model.JobEvent, 0, r.batchSize)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.repo.CreateBatch(context.Background(), batch); err != nil {
			log.Error().Err(err).Int("events", len(batch)).Msg("write job event batch")
		}
		batch = batch[:0]
	}

	for {
		select {
		case event, ok := <-r.events:
			if !ok {
				flush()
				return
			}
			batch = append(batch, event)
			if len(batch) >= r.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func eventFrom(change service.JobChange) model.JobEvent {
	at := change.At
	if at.IsZero() {
		at = time.Now()
	}
	return model.JobEvent{
		JobID:      change.Job.ID,
		ActorID:    change.ActorID,
		Action:     change.Action,
		FromStatus: change.From,
		ToStatus:   change.Job.Status,
		SubjectID:  change.SubjectID,
		CreatedAt:  at.UTC(),
	}
}
