// Package memory provides process-local implementations of the repository
// interfaces. It backs tests and the STORE=memory server mode.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/repository"
)

// Store holds all entities in maps guarded by mu. txMu serializes job
// transactions so a read-modify-write under WithTransaction cannot interleave
// with another one.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users    map[uuid.UUID]model.User
	jobs     map[uuid.UUID]model.Job
	messages []model.ChatMessage
	events   []model.JobEvent
	seq      uint64

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users: make(map[uuid.UUID]model.User),
		jobs:  make(map[uuid.UUID]model.Job),
		now:   time.Now,
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return &userRepository{s: s} }

// Jobs returns the job repository view of the store.
func (s *Store) Jobs() repository.JobRepository { return &jobRepository{s: s} }

// Messages returns the message repository view of the store.
func (s *Store) Messages() repository.MessageRepository { return &messageRepository{s: s} }

// Events returns the job event repository view of the store.
func (s *Store) Events() repository.JobEventRepository { return &jobEventRepository{s: s} }

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if _, ok := r.s.users[user.ID]; ok {
		return apperr.ErrConflict
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperr.ErrConflict
		}
	}
	now := r.s.now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Skills == nil {
		user.Skills = model.StringList{}
	}
	r.s.users[user.ID] = user.Clone()
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	out := u.Clone()
	return &out, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			out := u.Clone()
			return &out, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	patch.ApplyTo(&u)
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	out := u.Clone()
	return &out, nil
}

type messageRepository struct {
	s *Store
}

func (r *messageRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = r.s.now()
	}
	r.s.seq++
	msg.Seq = r.s.seq
	r.s.messages = append(r.s.messages, *msg)
	return nil
}

func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.messages {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *messageRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.ChatMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// messages is kept in seq order, so a stable sort on timestamp leaves ties in insertion order.
	var out []model.ChatMessage
	for _, m := range r.s.messages {
		if m.JobID == jobID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, m := range r.s.messages {
		if m.ID == id {
			r.s.messages = append(r.s.messages[:i], r.s.messages[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

type jobEventRepository struct {
	s *Store
}

func (r *jobEventRepository) CreateBatch(ctx context.Context, events []model.JobEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range events {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = r.s.now()
		}
		r.s.events = append(r.s.events, e)
	}
	return nil
}

func (r *jobEventRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.JobEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []model.JobEvent
	for _, e := range r.s.events {
		if e.JobID == jobID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
