package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"gigboard/internal/model"
)

func TestCapabilitiesFor(t *testing.T) {
	poster, worker, applicant, stranger := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	open := &model.Job{Status: model.JobStatusOpen, PosterID: poster, Applicants: model.IDList{applicant}}
	openEmpty := &model.Job{Status: model.JobStatusOpen, PosterID: poster, Applicants: model.IDList{}}
	assigned := &model.Job{Status: model.JobStatusAssigned, PosterID: poster, WorkerID: &worker, Applicants: model.IDList{worker}}
	completed := &model.Job{Status: model.JobStatusCompleted, PosterID: poster, WorkerID: &worker, Applicants: model.IDList{worker}}
	paid := &model.Job{Status: model.JobStatusPaid, PosterID: poster, WorkerID: &worker, Applicants: model.IDList{worker}}

	tests := []struct {
		name string
		job  *model.Job
		user uuid.UUID
		want Capabilities
	}{
		{"stranger on open job", open, stranger, Capabilities{CanApply: true}},
		{"applicant on open job", open, applicant, Capabilities{}},
		{"poster on open job", open, poster, Capabilities{CanSelect: true, CanCancel: true}},
		{"poster on open job without applicants", openEmpty, poster, Capabilities{CanCancel: true}},
		{"worker on assigned job", assigned, worker, Capabilities{CanComplete: true, CanChat: true}},
		{"poster on assigned job", assigned, poster, Capabilities{CanChat: true}},
		{"stranger on assigned job", assigned, stranger, Capabilities{}},
		{"poster on completed job", completed, poster, Capabilities{CanPay: true, CanChat: true}},
		{"worker on completed job", completed, worker, Capabilities{CanChat: true}},
		{"poster on paid job", paid, poster, Capabilities{CanChat: true}},
		{"anonymous viewer", open, uuid.Nil, Capabilities{}},
		{"nil job", nil, poster, Capabilities{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapabilitiesFor(tt.job, tt.user))
		})
	}
}

func TestCanChat_RequiresSelectedWorker(t *testing.T) {
	poster, applicant := uuid.New(), uuid.New()
	job := &model.Job{Status: model.JobStatusOpen, PosterID: poster, Applicants: model.IDList{applicant}}

	assert.False(t, CanChat(job, poster))
	assert.False(t, CanChat(job, applicant))

	job.WorkerID = &applicant
	assert.True(t, CanChat(job, poster))
	assert.True(t, CanChat(job, applicant))
	assert.False(t, CanChat(job, uuid.New()))
}
