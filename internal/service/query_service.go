package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"gigboard/internal/model"
	"gigboard/internal/repository"
)

// Pagination limits for list endpoints.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// Page is a limit/offset window over a result list.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the page to valid bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Paginate returns the window of items selected by p.
func Paginate[T any](items []T, p Page) []T {
	p = p.Normalize()
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

// QueryService answers the read-side job listings.
type QueryService interface {
	// ListVisible returns every non-canceled job matching search, open jobs first.
	ListVisible(ctx context.Context, search string) ([]model.Job, error)
	ListPostings(ctx context.Context, userID uuid.UUID) ([]model.Job, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]model.Job, error)
	ListCompleted(ctx context.Context, userID uuid.UUID) ([]model.Job, error)
}

type queryService struct {
	jobs repository.JobRepository
}

// NewQueryService creates a new query service.
func NewQueryService(jobs repository.JobRepository) QueryService {
	return &queryService{jobs: jobs}
}

func (s *queryService) ListVisible(ctx context.Context, search string) ([]model.Job, error) {
	term := strings.ToLower(strings.TrimSpace(search))
	jobs, err := s.filter(ctx, func(j *model.Job) bool {
		return j.Status != model.JobStatusCanceled && matches(j, term)
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(jobs, func(a, b int) bool {
		openA := jobs[a].Status == model.JobStatusOpen
		openB := jobs[b].Status == model.JobStatusOpen
		if openA != openB {
			return openA
		}
		return jobs[a].CreatedAt.After(jobs[b].CreatedAt)
	})
	return jobs, nil
}

func (s *queryService) ListPostings(ctx context.Context, userID uuid.UUID) ([]model.Job, error) {
	return s.filter(ctx, func(j *model.Job) bool {
		return IsPoster(j, userID)
	})
}

func (s *queryService) ListApplications(ctx context.Context, userID uuid.UUID) ([]model.Job, error) {
	return s.filter(ctx, func(j *model.Job) bool {
		return HasApplied(j, userID) || IsWorker(j, userID)
	})
}

func (s *queryService) ListCompleted(ctx context.Context, userID uuid.UUID) ([]model.Job, error) {
	return s.filter(ctx, func(j *model.Job) bool {
		done := j.Status == model.JobStatusCompleted || j.Status == model.JobStatusPaid
		return done && IsWorker(j, userID)
	})
}

// filter lists jobs newest first and keeps those accepted by keep.
func (s *queryService) filter(ctx context.Context, keep func(*model.Job) bool) ([]model.Job, error) {
	all, err := s.jobs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	out := make([]model.Job, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

// matches reports whether term occurs in the title or any skill. term is lower-case.
func matches(j *model.Job, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(j.Title), term) {
		return true
	}
	for _, skill := range j.Skills {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}
