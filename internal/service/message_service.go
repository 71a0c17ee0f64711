package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/repository"
)

// MaxMessageLength is the longest accepted chat message, in characters.
const MaxMessageLength = 2000

// MessageService manages the per-job chat log.
type MessageService interface {
	Post(ctx context.Context, jobID, senderID uuid.UUID, content string) (*model.ChatMessage, error)
	List(ctx context.Context, jobID, viewerID uuid.UUID) ([]model.ChatMessage, error)
	Delete(ctx context.Context, messageID, requesterID uuid.UUID) error
}

type messageService struct {
	messages repository.MessageRepository
	jobs     repository.JobRepository
	now      func() time.Time
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, jobs repository.JobRepository) MessageService {
	return &messageService{
		messages: messages,
		jobs:     jobs,
		now:      time.Now,
	}
}

// Post appends a message to the job's chat and returns the stored entity.
func (s *messageService) Post(ctx context.Context, jobID, senderID uuid.UUID, content string) (*model.ChatMessage, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	if !CanChat(job, senderID) {
		return nil, fmt.Errorf("%w: not a participant of this job's chat", apperr.ErrForbidden)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message is empty", apperr.ErrValidation)
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", apperr.ErrValidation, MaxMessageLength)
	}

	msg := &model.ChatMessage{
		JobID:     jobID,
		SenderID:  senderID,
		Content:   content,
		Timestamp: s.now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	log.Debug().
		Str("job_id", jobID.String()).
		Str("message_id", msg.ID.String()).
		Msg("chat message posted")
	return msg, nil
}

// List returns the chat in chronological order.
func (s *messageService) List(ctx context.Context, jobID, viewerID uuid.UUID) ([]model.ChatMessage, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	if !CanChat(job, viewerID) {
		return nil, fmt.Errorf("%w: not a participant of this job's chat", apperr.ErrForbidden)
	}

	msgs, err := s.messages.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return msgs, nil
}

// Delete removes a message. Only its sender may delete it.
func (s *messageService) Delete(ctx context.Context, messageID, requesterID uuid.UUID) error {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return fmt.Errorf("find message: %w", err)
	}
	if msg.SenderID != requesterID {
		return fmt.Errorf("%w: only the sender can delete a message", apperr.ErrForbidden)
	}
	if err := s.messages.Delete(ctx, messageID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
