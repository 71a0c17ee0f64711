package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "gigboard/internal/errors"
)

func TestMessageService_Post(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker, stranger := f.user(t, "Poster"), f.user(t, "Worker"), f.user(t, "Stranger")
	job := f.assigned(t, poster, worker)

	tests := []struct {
		name    string
		jobID   uuid.UUID
		sender  uuid.UUID
		content string
		wantErr error
	}{
		{"worker posts", job.ID, worker.ID, "  On my way!  ", nil},
		{"poster posts", job.ID, poster.ID, "Thanks", nil},
		{"whitespace only", job.ID, worker.ID, " \n\t ", apperr.ErrValidation},
		{"too long", job.ID, worker.ID, strings.Repeat("a", MaxMessageLength+1), apperr.ErrValidation},
		{"stranger", job.ID, stranger.ID, "hello", apperr.ErrForbidden},
		{"unknown job", uuid.New(), worker.ID, "hello", apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := f.messages.Post(ctx, tt.jobID, tt.sender, tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, msg)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, msg.ID)
			assert.Equal(t, strings.TrimSpace(tt.content), msg.Content)
			assert.False(t, msg.Timestamp.IsZero())
		})
	}

	msgs, err := f.messages.List(ctx, job.ID, poster.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2, "rejected posts append nothing")
}

func TestMessageService_PostAtLengthLimit(t *testing.T) {
	f := newFixture(t)
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")
	job := f.assigned(t, poster, worker)

	_, err := f.messages.Post(context.Background(), job.ID, worker.ID, strings.Repeat("é", MaxMessageLength))
	assert.NoError(t, err)
}

func TestMessageService_ChatClosedBeforeSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, applicant := f.user(t, "Poster"), f.user(t, "Applicant")
	job := f.post(t, poster, "Open job")
	_, err := f.jobs.Apply(ctx, job.ID, applicant.ID)
	require.NoError(t, err)

	_, err = f.messages.Post(ctx, job.ID, applicant.ID, "hi")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	_, err = f.messages.List(ctx, job.ID, poster.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestMessageService_ListOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")
	job := f.assigned(t, poster, worker)

	svc := f.messages.(*messageService)
	clock := []time.Time{baseTime, baseTime, baseTime.Add(-time.Minute), baseTime.Add(time.Minute)}
	i := 0
	svc.now = func() time.Time { ts := clock[i]; i++; return ts }

	for _, content := range []string{"first", "tie", "earlier", "last"} {
		_, err := f.messages.Post(ctx, job.ID, worker.ID, content)
		require.NoError(t, err)
	}

	msgs, err := f.messages.List(ctx, job.ID, poster.ID)
	require.NoError(t, err)
	got := make([]string, len(msgs))
	for i, m := range msgs {
		got[i] = m.Content
		if i > 0 {
			assert.False(t, m.Timestamp.Before(msgs[i-1].Timestamp))
		}
	}
	assert.Equal(t, []string{"earlier", "first", "tie", "last"}, got)

	_, err = f.messages.List(ctx, job.ID, f.user(t, "Stranger").ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestMessageService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	poster, worker := f.user(t, "Poster"), f.user(t, "Worker")
	job := f.assigned(t, poster, worker)

	msg, err := f.messages.Post(ctx, job.ID, worker.ID, "typo")
	require.NoError(t, err)

	err = f.messages.Delete(ctx, msg.ID, poster.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, f.messages.Delete(ctx, msg.ID, worker.ID))

	err = f.messages.Delete(ctx, msg.ID, worker.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	msgs, err := f.messages.List(ctx, job.ID, worker.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
	assert.NotNil(t, msgs)
}

