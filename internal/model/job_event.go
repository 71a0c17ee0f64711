package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobAction names a lifecycle operation recorded in the job history.
type JobAction string

const (
	JobActionCreated   JobAction = "created"
	JobActionApplied   JobAction = "applied"
	JobActionSelected  JobAction = "selected"
	JobActionCompleted JobAction = "completed"
	JobActionPaid      JobAction = "paid"
	JobActionCanceled  JobAction = "canceled"
)

// JobEvent is an audit entry for one successful lifecycle operation.
// Every committed operation is logged, including no-status-change ones like apply.
type JobEvent struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	JobID      uuid.UUID  `json:"job_id" gorm:"type:char(36);not null;index"`
	ActorID    uuid.UUID  `json:"actor_id" gorm:"type:char(36);not null"`
	Action     JobAction  `json:"action" gorm:"type:varchar(20);not null"`
	FromStatus JobStatus  `json:"from_status,omitempty" gorm:"type:varchar(20)"`
	ToStatus   JobStatus  `json:"to_status" gorm:"type:varchar(20);not null"`
	SubjectID  *uuid.UUID `json:"subject_id,omitempty" gorm:"type:char(36)"`
	CreatedAt  time.Time  `json:"created_at" gorm:"type:datetime(6);index"`
}

// BeforeCreate sets UUID before creating the record.
func (e *JobEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
