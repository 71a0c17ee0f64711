package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/repository"
	"gigboard/internal/service"
)

// History reads a job's recorded events.
type History struct {
	jobs   repository.JobRepository
	events repository.JobEventRepository
}

// NewHistory creates a history reader.
func NewHistory(jobs repository.JobRepository, events repository.JobEventRepository) *History {
	return &History{jobs: jobs, events: events}
}

// List returns the job's events oldest first. Only the poster and the worker may read them.
func (h *History) List(ctx context.Context, jobID, viewerID uuid.UUID) ([]model.JobEvent, error) {
	job, err := h.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	if !service.IsPoster(job, viewerID) && !service.IsWorker(job, viewerID) {
		return nil, fmt.Errorf("%w: only the poster or worker can read job history", apperr.ErrForbidden)
	}

	events, err := h.events.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list job events: %w", err)
	}
	if events == nil {
		events = []model.JobEvent{}
	}
	return events, nil
}
