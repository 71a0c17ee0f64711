package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"gigboard/internal/cache"
	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/repository"
)

// CreateJobInput carries the poster-supplied fields of a new job.
type CreateJobInput struct {
	Title       string
	Description string
	Skills      []string
	Payment     decimal.Decimal
	Location    string
	SOS         bool
	ImageURL    string
}

// JobService drives the job lifecycle: open → assigned → completed → paid, and open → canceled.
type JobService interface {
	Create(ctx context.Context, posterID uuid.UUID, in CreateJobInput) (*model.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Job, error)
	Apply(ctx context.Context, jobID, userID uuid.UUID) (*model.Job, error)
	SelectApplicant(ctx context.Context, jobID, actorID, applicantID uuid.UUID) (*model.Job, error)
	MarkComplete(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error)
	MarkPaid(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error)
	Cancel(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error)
}

type jobService struct {
	jobs      repository.JobRepository
	users     repository.UserRepository
	cache     *cache.Client
	observers []JobObserver
	now       func() time.Time
}

// NewJobService creates a new job lifecycle service. cache may be nil.
func NewJobService(jobs repository.JobRepository, users repository.UserRepository, c *cache.Client, observers ...JobObserver) JobService {
	return &jobService{
		jobs:      jobs,
		users:     users,
		cache:     c,
		observers: observers,
		now:       time.Now,
	}
}

// Create validates and stores a new open job.
func (s *jobService) Create(ctx context.Context, posterID uuid.UUID, in CreateJobInput) (*model.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if !in.Payment.IsPositive() {
		return nil, fmt.Errorf("%w: payment must be positive", apperr.ErrValidation)
	}
	if _, err := s.users.FindByID(ctx, posterID); err != nil {
		return nil, fmt.Errorf("find poster: %w", err)
	}

	job := &model.Job{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Skills:      model.NormalizeSkills(in.Skills),
		Payment:     in.Payment.Round(2),
		Location:    strings.TrimSpace(in.Location),
		SOS:         in.SOS,
		Status:      model.JobStatusOpen,
		PosterID:    posterID,
		Applicants:  model.IDList{},
		ImageURL:    in.ImageURL,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	log.Info().
		Str("job_id", job.ID.String()).
		Str("actor_id", posterID.String()).
		Bool("sos", job.SOS).
		Msg("job posted")
	s.notify(ctx, JobChange{Action: model.JobActionCreated, ActorID: posterID, Job: *job})
	return job, nil
}

// Get returns a job, served from cache when possible.
func (s *jobService) Get(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	key := jobCacheKey(id)
	var cached model.Job
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find job: %w", err)
	}
	s.cache.SetJSON(ctx, key, job, jobCacheTTL)
	return job, nil
}

// Apply adds userID to the applicants of an open job. Applying twice is a no-op.
func (s *jobService) Apply(ctx context.Context, jobID, userID uuid.UUID) (*model.Job, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("find applicant: %w", err)
	}

	return s.transition(ctx, jobID, userID, model.JobActionApplied, func(job *model.Job) (model.JobPatch, *uuid.UUID, error) {
		if job.Status != model.JobStatusOpen {
			return model.JobPatch{}, nil, invalidTransition("cannot apply to a job that is %s", job.Status)
		}
		if IsPoster(job, userID) {
			return model.JobPatch{}, nil, invalidTransition("poster cannot apply to own job")
		}
		if HasApplied(job, userID) {
			return model.JobPatch{}, nil, nil
		}
		return model.JobPatch{Applicants: job.Applicants.With(userID)}, &userID, nil
	})
}

// SelectApplicant assigns one of the applicants as the worker.
func (s *jobService) SelectApplicant(ctx context.Context, jobID, actorID, applicantID uuid.UUID) (*model.Job, error) {
	return s.transition(ctx, jobID, actorID, model.JobActionSelected, func(job *model.Job) (model.JobPatch, *uuid.UUID, error) {
		if job.Status != model.JobStatusOpen {
			return model.JobPatch{}, nil, invalidTransition("cannot select a worker for a job that is %s", job.Status)
		}
		if !IsPoster(job, actorID) {
			return model.JobPatch{}, nil, invalidTransition("only the poster can select a worker")
		}
		if !HasApplied(job, applicantID) {
			return model.JobPatch{}, nil, invalidTransition("user %s has not applied", applicantID)
		}
		status := model.JobStatusAssigned
		return model.JobPatch{Status: &status, WorkerID: &applicantID}, &applicantID, nil
	})
}

// MarkComplete lets the worker report an assigned job as done.
func (s *jobService) MarkComplete(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error) {
	return s.transition(ctx, jobID, actorID, model.JobActionCompleted, func(job *model.Job) (model.JobPatch, *uuid.UUID, error) {
		if job.Status != model.JobStatusAssigned {
			return model.JobPatch{}, nil, invalidTransition("cannot complete a job that is %s", job.Status)
		}
		if !IsWorker(job, actorID) {
			return model.JobPatch{}, nil, invalidTransition("only the worker can complete the job")
		}
		status := model.JobStatusCompleted
		return model.JobPatch{Status: &status}, nil, nil
	})
}

// MarkPaid lets the poster record payment for a completed job. No money moves.
func (s *jobService) MarkPaid(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error) {
	return s.transition(ctx, jobID, actorID, model.JobActionPaid, func(job *model.Job) (model.JobPatch, *uuid.UUID, error) {
		if job.Status != model.JobStatusCompleted {
			return model.JobPatch{}, nil, invalidTransition("cannot pay for a job that is %s", job.Status)
		}
		if !IsPoster(job, actorID) {
			return model.JobPatch{}, nil, invalidTransition("only the poster can mark the job paid")
		}
		status := model.JobStatusPaid
		return model.JobPatch{Status: &status}, nil, nil
	})
}

// Cancel withdraws an open job.
func (s *jobService) Cancel(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error) {
	return s.transition(ctx, jobID, actorID, model.JobActionCanceled, func(job *model.Job) (model.JobPatch, *uuid.UUID, error) {
		if job.Status != model.JobStatusOpen {
			return model.JobPatch{}, nil, invalidTransition("cannot cancel a job that is %s", job.Status)
		}
		if !IsPoster(job, actorID) {
			return model.JobPatch{}, nil, invalidTransition("only the poster can cancel the job")
		}
		status := model.JobStatusCanceled
		return model.JobPatch{Status: &status}, nil, nil
	})
}

// planFunc inspects the locked job and returns the patch to write. An empty patch
// commits nothing and notifies no one.
type planFunc func(job *model.Job) (patch model.JobPatch, subject *uuid.UUID, err error)

// transition runs one read-modify-write of a job under a row lock.
func (s *jobService) transition(ctx context.Context, jobID, actorID uuid.UUID, action model.JobAction, plan planFunc) (*model.Job, error) {
	var (
		updated *model.Job
		from    model.JobStatus
		subject *uuid.UUID
		changed bool
	)

	err := s.jobs.WithTransaction(ctx, func(ctx context.Context, repo repository.JobRepository) error {
		job, err := repo.FindByIDForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		from = job.Status

		patch, subj, err := plan(job)
		if err != nil {
			return err
		}
		if patch.Empty() {
			updated = job
			return nil
		}

		updated, err = repo.Update(ctx, jobID, patch)
		if err != nil {
			return err
		}
		subject = subj
		changed = true
		return nil
	})
	if err != nil {
		log.Debug().Err(err).
			Str("job_id", jobID.String()).
			Str("actor_id", actorID.String()).
			Str("action", string(action)).
			Msg("job transition rejected")
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}
	if !changed {
		return updated, nil
	}

	log.Info().
		Str("job_id", jobID.String()).
		Str("actor_id", actorID.String()).
		Str("action", string(action)).
		Str("from", string(from)).
		Str("to", string(updated.Status)).
		Msg("job transition")

	s.notify(ctx, JobChange{
		Action:    action,
		ActorID:   actorID,
		From:      from,
		SubjectID: subject,
		Job:       *updated,
	})
	return updated, nil
}

func (s *jobService) notify(ctx context.Context, change JobChange) {
	change.At = s.now()
	for _, o := range s.observers {
		o.JobChanged(ctx, change)
	}
}

func invalidTransition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperr.ErrInvalidTransition, fmt.Sprintf(format, args...))
}
