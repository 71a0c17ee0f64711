package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/repository"
)

// jobRepository reads through to the store. Inside WithTransaction writes are
// staged in tx and become visible only when fn returns nil.
type jobRepository struct {
	s  *Store
	tx *jobTx
}

type jobTx struct {
	staged map[uuid.UUID]model.Job
	order  []uuid.UUID
}

func (t *jobTx) stage(job model.Job) {
	if _, ok := t.staged[job.ID]; !ok {
		t.order = append(t.order, job.ID)
	}
	t.staged[job.ID] = job
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if _, err := r.lookup(job.ID); err == nil {
		return apperr.ErrConflict
	}

	now := r.s.now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	if job.Status == "" {
		job.Status = model.JobStatusOpen
	}
	if job.Applicants == nil {
		job.Applicants = model.IDList{}
	}
	if job.Skills == nil {
		job.Skills = model.StringList{}
	}
	return r.write(job.Clone())
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	job, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FindByIDForUpdate needs no extra locking: the transaction already holds txMu.
func (r *jobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	return r.FindByID(ctx, id)
}

func (r *jobRepository) List(ctx context.Context) ([]model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	jobs := make([]model.Job, 0, len(r.s.jobs))
	for id, j := range r.s.jobs {
		if r.tx != nil {
			if staged, ok := r.tx.staged[id]; ok {
				j = staged
			}
		}
		jobs = append(jobs, j.Clone())
	}
	if r.tx != nil {
		for _, id := range r.tx.order {
			if _, ok := r.s.jobs[id]; !ok {
				jobs = append(jobs, r.tx.staged[id].Clone())
			}
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].CreatedAt.After(jobs[j].CreatedAt) })
	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, id uuid.UUID, patch model.JobPatch) (*model.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	job, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if !patch.Empty() {
		patch.ApplyTo(&job)
		job.UpdatedAt = r.s.now()
		if err := r.write(job); err != nil {
			return nil, err
		}
	}
	out := job.Clone()
	return &out, nil
}

// WithTransaction runs fn with exclusive access to job writes. fn must use the
// repository it is handed; the outer repository blocks until fn returns.
func (r *jobRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.JobRepository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	tx := &jobTx{staged: make(map[uuid.UUID]model.Job)}
	if err := fn(ctx, &jobRepository{s: r.s, tx: tx}); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range tx.order {
		r.s.jobs[id] = tx.staged[id]
	}
	return nil
}

func (r *jobRepository) lookup(id uuid.UUID) (model.Job, error) {
	if r.tx != nil {
		if j, ok := r.tx.staged[id]; ok {
			return j.Clone(), nil
		}
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return model.Job{}, apperr.ErrNotFound
	}
	return j.Clone(), nil
}

func (r *jobRepository) write(job model.Job) error {
	if r.tx != nil {
		r.tx.stage(job)
		return nil
	}
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.jobs[job.ID] = job
	return nil
}
