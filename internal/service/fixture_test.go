package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gigboard/internal/model"
	"gigboard/internal/repository/memory"
)

// changeRecorder collects observer notifications.
type changeRecorder struct {
	mu      sync.Mutex
	changes []JobChange
}

func (r *changeRecorder) JobChanged(_ context.Context, change JobChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, change)
}

func (r *changeRecorder) actions() []model.JobAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.JobAction, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, c.Action)
	}
	return out
}

type fixture struct {
	store    *memory.Store
	recorder *changeRecorder
	jobs     JobService
	queries  QueryService
	messages MessageService
	users    UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	rec := &changeRecorder{}
	return &fixture{
		store:    store,
		recorder: rec,
		jobs:     NewJobService(store.Jobs(), store.Users(), nil, rec),
		queries:  NewQueryService(store.Jobs()),
		messages: NewMessageService(store.Messages(), store.Jobs()),
		users:    NewUserService(store.Users(), nil),
	}
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: uuid.NewString() + "@example.com"}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u
}

func (f *fixture) post(t *testing.T, poster *model.User, title string, skills ...string) *model.Job {
	t.Helper()
	job, err := f.jobs.Create(context.Background(), poster.ID, CreateJobInput{
		Title:   title,
		Skills:  skills,
		Payment: decimal.NewFromInt(75),
	})
	require.NoError(t, err)
	return job
}

// assigned returns a job where worker has been selected.
func (f *fixture) assigned(t *testing.T, poster, worker *model.User) *model.Job {
	t.Helper()
	ctx := context.Background()
	job := f.post(t, poster, "Help moving furniture")
	_, err := f.jobs.Apply(ctx, job.ID, worker.ID)
	require.NoError(t, err)
	job, err = f.jobs.SelectApplicant(ctx, job.ID, poster.ID, worker.ID)
	require.NoError(t, err)
	return job
}

// seedJob stores a job directly, bypassing the lifecycle engine.
func (f *fixture) seedJob(t *testing.T, job model.Job) *model.Job {
	t.Helper()
	if job.Payment.IsZero() {
		job.Payment = decimal.NewFromInt(10)
	}
	require.NoError(t, f.store.Jobs().Create(context.Background(), &job))
	return &job
}

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
