package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobStatus represents the lifecycle status of a job.
type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"
	JobStatusAssigned  JobStatus = "assigned"
	JobStatusCompleted JobStatus = "completed"
	JobStatusPaid      JobStatus = "paid"
	JobStatusCanceled  JobStatus = "canceled"
)

// Terminal reports whether no further transition leaves s.
func (s JobStatus) Terminal() bool {
	return s == JobStatusPaid || s == JobStatusCanceled
}

// Job represents a short-term job posted by a user.
type Job struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Skills      StringList      `json:"skills" gorm:"type:json"`
	Payment     decimal.Decimal `json:"payment" gorm:"type:decimal(20,2);not null"`
	Location    string          `json:"location" gorm:"size:255"`
	SOS         bool            `json:"sos" gorm:"default:false;index"`
	Status      JobStatus       `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	PosterID    uuid.UUID       `json:"poster_id" gorm:"type:char(36);not null;index"`
	WorkerID    *uuid.UUID      `json:"worker_id,omitempty" gorm:"type:char(36);index"`
	Applicants  IDList          `json:"applicants" gorm:"type:json"`
	ImageURL    string          `json:"image_url,omitempty" gorm:"size:512"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Clone returns a deep copy of the job.
func (j Job) Clone() Job {
	out := j
	out.Skills = j.Skills.Clone()
	out.Applicants = j.Applicants.Clone()
	if j.WorkerID != nil {
		w := *j.WorkerID
		out.WorkerID = &w
	}
	return out
}

// JobPatch lists the mutable job fields. Nil fields are left unchanged.
type JobPatch struct {
	Status     *JobStatus
	WorkerID   *uuid.UUID
	Applicants IDList
	ImageURL   *string
}

// Empty reports whether the patch changes nothing.
func (p JobPatch) Empty() bool {
	return p.Status == nil && p.WorkerID == nil && p.Applicants == nil && p.ImageURL == nil
}

// Columns returns the patch as a column/value map for an UPDATE statement.
func (p JobPatch) Columns() map[string]any {
	cols := make(map[string]any, 4)
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.WorkerID != nil {
		cols["worker_id"] = *p.WorkerID
	}
	if p.Applicants != nil {
		cols["applicants"] = p.Applicants
	}
	if p.ImageURL != nil {
		cols["image_url"] = *p.ImageURL
	}
	return cols
}

// ApplyTo writes the patch onto job.
func (p JobPatch) ApplyTo(job *Job) {
	if p.Status != nil {
		job.Status = *p.Status
	}
	if p.WorkerID != nil {
		w := *p.WorkerID
		job.WorkerID = &w
	}
	if p.Applicants != nil {
		job.Applicants = p.Applicants.Clone()
	}
	if p.ImageURL != nil {
		job.ImageURL = *p.ImageURL
	}
}
