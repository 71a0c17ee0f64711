package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gigboard/internal/model"
)

// JobRepository defines job persistence operations.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	// FindByIDForUpdate reads a job and holds it against concurrent writers until the
	// surrounding transaction ends. Outside WithTransaction it behaves like FindByID.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Job, error)
	List(ctx context.Context) ([]model.Job, error)
	Update(ctx context.Context, id uuid.UUID, patch model.JobPatch) (*model.Job, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo JobRepository) error) error
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create creates a new job. Status defaults to open and applicants to an empty set.
func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	if job.Status == "" {
		job.Status = model.JobStatusOpen
	}
	if job.Applicants == nil {
		job.Applicants = model.IDList{}
	}
	if job.Skills == nil {
		job.Skills = model.StringList{}
	}
	return translate(r.db.WithContext(ctx).Create(job).Error)
}

// FindByID finds a job by ID.
func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

// FindByIDForUpdate finds a job by ID with a row-level lock.
func (r *jobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&job).Error; err != nil {
		return nil, translate(err)
	}
	return &job, nil
}

// List returns every job, newest first.
func (r *jobRepository) List(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, translate(err)
	}
	return jobs, nil
}

// Update writes all patched columns in one statement and returns the stored row.
func (r *jobRepository) Update(ctx context.Context, id uuid.UUID, patch model.JobPatch) (*model.Job, error) {
	if !patch.Empty() {
		res := r.db.WithContext(ctx).Model(&model.Job{}).Where("id = ?", id).Updates(patch.Columns())
		if res.Error != nil {
			return nil, translate(res.Error)
		}
	}
	return r.FindByID(ctx, id)
}

// WithTransaction executes a function within a database transaction.
func (r *jobRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo JobRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &jobRepository{db: tx}
		return fn(ctx, txRepo)
	})
	return err
}
