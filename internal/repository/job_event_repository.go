package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigboard/internal/model"
)

// JobEventRepository defines job history persistence operations.
type JobEventRepository interface {
	CreateBatch(ctx context.Context, events []model.JobEvent) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.JobEvent, error)
}

type jobEventRepository struct {
	db *gorm.DB
}

// NewJobEventRepository creates a new job event repository.
func NewJobEventRepository(db *gorm.DB) JobEventRepository {
	return &jobEventRepository{db: db}
}

// CreateBatch creates multiple job events in a single statement batch.
func (r *jobEventRepository) CreateBatch(ctx context.Context, events []model.JobEvent) error {
	if len(events) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).CreateInBatches(events, 100).Error)
}

// ListByJob returns a job's history, oldest first.
func (r *jobEventRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.JobEvent, error) {
	var events []model.JobEvent
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, translate(err)
	}
	return events, nil
}
