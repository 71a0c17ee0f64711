package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/repository/memory"
	"gigboard/internal/service"
)

func change(jobID uuid.UUID, action model.JobAction) service.JobChange {
	return service.JobChange{
		Action:  action,
		ActorID: uuid.New(),
		From:    model.JobStatusOpen,
		Job:     model.Job{ID: jobID, Status: model.JobStatusOpen},
		At:      time.Now(),
	}
}

func TestRecorder_FlushesOnClose(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := NewRecorder(store.Events(), WithFlushInterval(time.Hour))

	jobID := uuid.New()
	rec.JobChanged(ctx, change(jobID, model.JobActionCreated))
	rec.JobChanged(ctx, change(jobID, model.JobActionApplied))
	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close())

	events, err := store.Events().ListByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, model.JobActionCreated, events[0].Action)
	assert.Equal(t, model.JobActionApplied, events[1].Action)
}

func TestRecorder_FlushesFullBatch(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := NewRecorder(store.Events(), WithBatchSize(3), WithFlushInterval(time.Hour))
	defer rec.Close()

	jobID := uuid.New()
	for i := 0; i < 3; i++ {
		rec.JobChanged(ctx, change(jobID, model.JobActionApplied))
	}

	assert.Eventually(t, func() bool {
		events, err := store.Events().ListByJob(ctx, jobID)
		return err == nil && len(events) == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRecorder_FlushesOnInterval(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := NewRecorder(store.Events(), WithFlushInterval(20*time.Millisecond))
	defer rec.Close()

	jobID := uuid.New()
	rec.JobChanged(ctx, change(jobID, model.JobActionCanceled))

	assert.Eventually(t, func() bool {
		events, err := store.Events().ListByJob(ctx, jobID)
		return err == nil && len(events) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRecorder_WritesSynchronouslyAfterClose(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := NewRecorder(store.Events())
	require.NoError(t, rec.Close())

	jobID := uuid.New()
	rec.JobChanged(ctx, change(jobID, model.JobActionPaid))

	events, err := store.Events().ListByJob(ctx, jobID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

type syncMarker struct{}

// gatedRepo blocks background writes until release is closed. Writes whose
// context carries syncMarker pass straight through.
type gatedRepo struct {
	release chan struct{}
	mu      sync.Mutex
	written int
}

func (g *gatedRepo) CreateBatch(ctx context.Context, events []model.JobEvent) error {
	if ctx.Value(syncMarker{}) == nil {
		<-g.release
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.written += len(events)
	return nil
}

func (g *gatedRepo) ListByJob(context.Context, uuid.UUID) ([]model.JobEvent, error) {
	return nil, nil
}

func (g *gatedRepo) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.written
}

func TestRecorder_FallsBackWhenQueueIsFull(t *testing.T) {
	repo := &gatedRepo{release: make(chan struct{})}
	rec := NewRecorder(repo, WithBatchSize(1), WithFlushInterval(time.Hour))

	ctx := context.WithValue(context.Background(), syncMarker{}, true)
	jobID := uuid.New()
	total := defaultBuffer + 10
	for i := 0; i < total; i++ {
		rec.JobChanged(ctx, change(jobID, model.JobActionApplied))
	}

	// The writer holds at most one event and the queue at most defaultBuffer.
	assert.GreaterOrEqual(t, repo.count(), total-defaultBuffer-1)

	close(repo.release)
	require.NoError(t, rec.Close())
	assert.Equal(t, total, repo.count())
}

func TestRecorder_WiredIntoLifecycle(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	rec := NewRecorder(store.Events())

	poster := &model.User{Name: "P", Email: "p@example.com"}
	worker := &model.User{Name: "W", Email: "w@example.com"}
	require.NoError(t, store.Users().Create(ctx, poster))
	require.NoError(t, store.Users().Create(ctx, worker))

	jobs := service.NewJobService(store.Jobs(), store.Users(), nil, rec)
	job, err := jobs.Create(ctx, poster.ID, service.CreateJobInput{Title: "Rake leaves", Payment: decimal.NewFromInt(20)})
	require.NoError(t, err)
	_, err = jobs.Apply(ctx, job.ID, worker.ID)
	require.NoError(t, err)
	_, err = jobs.SelectApplicant(ctx, job.ID, poster.ID, worker.ID)
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	history := NewHistory(store.Jobs(), store.Events())
	events, err := history.List(ctx, job.ID, worker.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)

	selected := events[2]
	assert.Equal(t, model.JobActionSelected, selected.Action)
	assert.Equal(t, model.JobStatusOpen, selected.FromStatus)
	assert.Equal(t, model.JobStatusAssigned, selected.ToStatus)
	assert.Equal(t, poster.ID, selected.ActorID)
	require.NotNil(t, selected.SubjectID)
	assert.Equal(t, worker.ID, *selected.SubjectID)

	_, err = history.List(ctx, job.ID, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = history.List(ctx, uuid.New(), poster.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
