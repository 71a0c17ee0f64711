package service

import (
	"github.com/google/uuid"

	"gigboard/internal/model"
)

// IsPoster reports whether userID posted the job.
func IsPoster(job *model.Job, userID uuid.UUID) bool {
	return job != nil && userID != uuid.Nil && job.PosterID == userID
}

// IsWorker reports whether userID is the selected worker.
func IsWorker(job *model.Job, userID uuid.UUID) bool {
	return job != nil && job.WorkerID != nil && userID != uuid.Nil && *job.WorkerID == userID
}

// HasApplied reports whether userID is among the job's applicants.
func HasApplied(job *model.Job, userID uuid.UUID) bool {
	return job != nil && job.Applicants.Contains(userID)
}

// CanChat reports whether userID may read and write the job's chat: the poster once
// a worker is selected, and the worker.
func CanChat(job *model.Job, userID uuid.UUID) bool {
	if job == nil || job.WorkerID == nil {
		return false
	}
	return IsPoster(job, userID) || IsWorker(job, userID)
}

// Capabilities is the set of actions a viewer may take on a job.
type Capabilities struct {
	CanApply    bool `json:"can_apply"`
	CanSelect   bool `json:"can_select"`
	CanComplete bool `json:"can_complete"`
	CanPay      bool `json:"can_pay"`
	CanCancel   bool `json:"can_cancel"`
	CanChat     bool `json:"can_chat"`
}

// CapabilitiesFor computes the capability set of userID on job.
func CapabilitiesFor(job *model.Job, userID uuid.UUID) Capabilities {
	if job == nil {
		return Capabilities{}
	}
	poster := IsPoster(job, userID)
	worker := IsWorker(job, userID)
	open := job.Status == model.JobStatusOpen

	return Capabilities{
		CanApply:    open && userID != uuid.Nil && !poster && !HasApplied(job, userID),
		CanSelect:   open && poster && len(job.Applicants) > 0,
		CanComplete: job.Status == model.JobStatusAssigned && worker,
		CanPay:      job.Status == model.JobStatusCompleted && poster,
		CanCancel:   open && poster,
		CanChat:     CanChat(job, userID),
	}
}
