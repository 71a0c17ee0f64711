package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
)

// MessageRepository defines chat message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ChatMessage, error)
	// ListByJob returns a job's messages by ascending timestamp, ties in insertion order.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.ChatMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	return translate(r.db.WithContext(ctx).Create(msg).Error)
}

func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ChatMessage, error) {
	var msg model.ChatMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (r *messageRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("timestamp ASC").
		Order("seq ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, translate(err)
	}
	return msgs, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ChatMessage{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
