package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
)

func TestJobService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster := f.user(t, "Maria")

	tests := []struct {
		name    string
		poster  uuid.UUID
		input   CreateJobInput
		wantErr error
	}{
		{
			name:   "valid job",
			poster: poster.ID,
			input: CreateJobInput{
				Title:   "  Dog walking  ",
				Skills:  []string{"Pets", "pets", " "},
				Payment: decimal.RequireFromString("25.50"),
			},
		},
		{"blank title", poster.ID, CreateJobInput{Title: "   ", Payment: decimal.NewFromInt(1)}, apperr.ErrValidation},
		{"zero payment", poster.ID, CreateJobInput{Title: "x", Payment: decimal.Zero}, apperr.ErrValidation},
		{"negative payment", poster.ID, CreateJobInput{Title: "x", Payment: decimal.NewFromInt(-5)}, apperr.ErrValidation},
		{"unknown poster", uuid.New(), CreateJobInput{Title: "x", Payment: decimal.NewFromInt(1)}, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job, err := f.jobs.Create(ctx, tt.poster, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, job)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Dog walking", job.Title)
			assert.Equal(t, model.StringList{"Pets"}, job.Skills)
			assert.Equal(t, model.JobStatusOpen, job.Status)
			assert.Empty(t, job.Applicants)
			assert.Nil(t, job.WorkerID)
			assert.True(t, job.Payment.Equal(decimal.RequireFromString("25.5")))
		})
	}
	assert.Equal(t, []model.JobAction{model.JobActionCreated}, f.recorder.actions())
}

func TestJobService_ApplyTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")
	job := f.post(t, poster, "Paint fence")

	_, err := f.jobs.Apply(ctx, job.ID, worker.ID)
	require.NoError(t, err)
	got, err := f.jobs.Apply(ctx, job.ID, worker.ID)
	require.NoError(t, err)

	assert.Equal(t, model.IDList{worker.ID}, got.Applicants)
	assert.Equal(t, model.JobStatusOpen, got.Status)
	assert.Equal(t, []model.JobAction{model.JobActionCreated, model.JobActionApplied}, f.recorder.actions(),
		"a repeated apply changes nothing and notifies no one")
}

func TestJobService_ApplyRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")
	job := f.post(t, poster, "Paint fence")

	_, err := f.jobs.Apply(ctx, job.ID, poster.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "poster cannot apply")

	_, err = f.jobs.Apply(ctx, job.ID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound, "unknown user")

	_, err = f.jobs.Apply(ctx, uuid.New(), worker.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "unknown job")

	_, err = f.jobs.Cancel(ctx, job.ID, poster.ID)
	require.NoError(t, err)
	_, err = f.jobs.Apply(ctx, job.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "canceled job")

	stored, err := f.store.Jobs().FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Applicants, poster.ID)
	assert.Empty(t, stored.Applicants)
}

func TestJobService_SelectApplicant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker, other := f.user(t, "Poster"), f.user(t, "Worker"), f.user(t, "Other")
	job := f.post(t, poster, "Assemble desk")
	_, err := f.jobs.Apply(ctx, job.ID, worker.ID)
	require.NoError(t, err)

	_, err = f.jobs.SelectApplicant(ctx, job.ID, poster.ID, other.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "non-applicant")

	_, err = f.jobs.SelectApplicant(ctx, job.ID, worker.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "only the poster selects")

	got, err := f.jobs.SelectApplicant(ctx, job.ID, poster.ID, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusAssigned, got.Status)
	require.NotNil(t, got.WorkerID)
	assert.Equal(t, worker.ID, *got.WorkerID)
	assert.Equal(t, model.IDList{worker.ID}, got.Applicants, "applicants are kept")

	_, err = f.jobs.SelectApplicant(ctx, job.ID, poster.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "second select")
}

func TestJobService_ConcurrentSelectHasOneWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster := f.user(t, "Poster")
	a, b := f.user(t, "A"), f.user(t, "B")
	job := f.post(t, poster, "Mow lawn")
	for _, u := range []*model.User{a, b} {
		_, err := f.jobs.Apply(ctx, job.ID, u.ID)
		require.NoError(t, err)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []uuid.UUID
		losses  int
	)
	for _, u := range []*model.User{a, b} {
		wg.Add(1)
		go func(applicant uuid.UUID) {
			defer wg.Done()
			_, err := f.jobs.SelectApplicant(ctx, job.ID, poster.ID, applicant)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, applicant)
				return
			}
			assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
			losses++
		}(u.ID)
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, 1, losses)

	stored, err := f.store.Jobs().FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, winners[0], *stored.WorkerID)
}

func TestJobService_MarkComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")

	open := f.post(t, poster, "Open job")
	_, err := f.jobs.MarkComplete(ctx, open.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "not assigned")

	job := f.assigned(t, poster, worker)
	_, err = f.jobs.MarkComplete(ctx, job.ID, poster.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "poster is not the worker")

	got, err := f.jobs.MarkComplete(ctx, job.ID, worker.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCompleted, got.Status)

	_, err = f.jobs.MarkComplete(ctx, job.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "already completed")
}

func TestJobService_MarkPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")
	job := f.assigned(t, poster, worker)

	_, err := f.jobs.MarkPaid(ctx, job.ID, poster.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "not completed yet")

	_, err = f.jobs.MarkComplete(ctx, job.ID, worker.ID)
	require.NoError(t, err)

	_, err = f.jobs.MarkPaid(ctx, job.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "worker cannot pay")

	got, err := f.jobs.MarkPaid(ctx, job.ID, poster.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPaid, got.Status)
}

func TestJobService_CancelIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")
	job := f.post(t, poster, "Clean gutters")

	_, err := f.jobs.Cancel(ctx, job.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "only the poster cancels")

	got, err := f.jobs.Cancel(ctx, job.ID, poster.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusCanceled, got.Status)

	_, err = f.jobs.Cancel(ctx, job.ID, poster.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	_, err = f.jobs.Apply(ctx, job.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	assigned := f.assigned(t, poster, worker)
	_, err = f.jobs.Cancel(ctx, assigned.ID, poster.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "assigned jobs cannot be canceled")
}

func TestJobService_FullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, w, x := f.user(t, "P"), f.user(t, "W"), f.user(t, "X")

	j1 := f.post(t, p, "J1")

	_, err := f.jobs.Apply(ctx, j1.ID, w.ID)
	require.NoError(t, err)

	_, err = f.jobs.SelectApplicant(ctx, j1.ID, p.ID, w.ID)
	require.NoError(t, err)

	_, err = f.jobs.Apply(ctx, j1.ID, x.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	_, err = f.jobs.MarkComplete(ctx, j1.ID, w.ID)
	require.NoError(t, err)

	paid, err := f.jobs.MarkPaid(ctx, j1.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusPaid, paid.Status)

	_, err = f.jobs.Cancel(ctx, j1.ID, p.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)

	assert.Equal(t, []model.JobAction{
		model.JobActionCreated,
		model.JobActionApplied,
		model.JobActionSelected,
		model.JobActionCompleted,
		model.JobActionPaid,
	}, f.recorder.actions())

	f.recorder.mu.Lock()
	selected := f.recorder.changes[2]
	f.recorder.mu.Unlock()
	assert.Equal(t, model.JobStatusOpen, selected.From)
	assert.Equal(t, model.JobStatusAssigned, selected.Job.Status)
	require.NotNil(t, selected.SubjectID)
	assert.Equal(t, w.ID, *selected.SubjectID)
	assert.False(t, selected.At.IsZero())
}

func TestJobService_Get(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.post(t, f.user(t, "P"), "Fix bike")

	got, err := f.jobs.Get(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)

	_, err = f.jobs.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestJobObserverFunc(t *testing.T) {
	var got JobChange
	var o JobObserver = JobObserverFunc(func(_ context.Context, c JobChange) { got = c })
	o.JobChanged(context.Background(), JobChange{Action: model.JobActionPaid})
	assert.Equal(t, model.JobActionPaid, got.Action)

	// a nil cache client is a valid no-op
	NewCacheInvalidator(nil).JobChanged(context.Background(), JobChange{})
}
