package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is one entry in a job's chat transcript. Seq is assigned by the store
// and breaks timestamp ties in insertion order.
type ChatMessage struct {
	Seq       uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	ID        uuid.UUID `json:"id" gorm:"type:char(36);uniqueIndex;not null"`
	JobID     uuid.UUID `json:"job_id" gorm:"type:char(36);not null;index:idx_messages_job_time,priority:1"`
	SenderID  uuid.UUID `json:"sender_id" gorm:"type:char(36);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"type:datetime(6);not null;index:idx_messages_job_time,priority:2"`
}

// BeforeCreate sets UUID before creating the record.
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
