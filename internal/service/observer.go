package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gigboard/internal/cache"
	"gigboard/internal/model"
)

// JobChange describes a committed lifecycle operation.
type JobChange struct {
	Action  model.JobAction
	ActorID uuid.UUID
	From    model.JobStatus
	// SubjectID is the user acted upon: the applicant for apply and select.
	SubjectID *uuid.UUID
	Job       model.Job
	At        time.Time
}

// JobObserver is notified after a lifecycle operation commits. Implementations
// must not block; they run on the caller's goroutine.
type JobObserver interface {
	JobChanged(ctx context.Context, change JobChange)
}

// JobObserverFunc adapts a function to JobObserver.
type JobObserverFunc func(ctx context.Context, change JobChange)

// JobChanged calls f.
func (f JobObserverFunc) JobChanged(ctx context.Context, change JobChange) {
	f(ctx, change)
}

const jobCacheTTL = 5 * time.Minute

func jobCacheKey(id uuid.UUID) string {
	return "job:" + id.String()
}

// CacheInvalidator drops cached job reads when a job changes.
type CacheInvalidator struct {
	cache *cache.Client
}

// NewCacheInvalidator creates an observer that evicts changed jobs from c.
func NewCacheInvalidator(c *cache.Client) *CacheInvalidator {
	return &CacheInvalidator{cache: c}
}

// JobChanged implements JobObserver.
func (i *CacheInvalidator) JobChanged(ctx context.Context, change JobChange) {
	_ = i.cache.Delete(ctx, jobCacheKey(change.Job.ID))
}
