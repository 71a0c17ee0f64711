// Package seed loads a demo marketplace into a store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/repository"
)

// DemoPassword is the login password of every demo user.
const DemoPassword = "password123"

var namespace = uuid.MustParse("6f1c2f9e-3d4b-4c55-9a0e-8b7d2c1e5f40")

// ID derives the stable id of a demo entity from its key, e.g. "user-1" or "job-3".
func ID(key string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(key))
}

// Dataset is a set of entities to load.
type Dataset struct {
	Users    []model.User
	Jobs     []model.Job
	Messages []model.ChatMessage
}

// Result counts what Run created and what it skipped because it already existed.
type Result struct {
	Users    int `json:"users"`
	Jobs     int `json:"jobs"`
	Messages int `json:"messages"`
	Skipped  int `json:"skipped"`
}

// Store is the subset of repositories Run writes to.
type Store struct {
	Users    repository.UserRepository
	Jobs     repository.JobRepository
	Messages repository.MessageRepository
}

// Run loads data into the store. Entities whose id or unique email already
// exists are skipped, so running it twice is harmless.
func Run(ctx context.Context, store Store, data Dataset) (Result, error) {
	var res Result

	for i := range data.Users {
		u := data.Users[i]
		err := store.Users.Create(ctx, &u)
		switch {
		case err == nil:
			res.Users++
		case errors.Is(err, apperr.ErrConflict):
			res.Skipped++
		default:
			return res, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for i := range data.Jobs {
		j := data.Jobs[i]
		err := store.Jobs.Create(ctx, &j)
		switch {
		case err == nil:
			res.Jobs++
		case errors.Is(err, apperr.ErrConflict):
			res.Skipped++
		default:
			return res, fmt.Errorf("seed job %s: %w", j.Title, err)
		}
	}

	for i := range data.Messages {
		m := data.Messages[i]
		if _, err := store.Messages.FindByID(ctx, m.ID); err == nil {
			res.Skipped++
			continue
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return res, fmt.Errorf("seed message %s: %w", m.ID, err)
		}
		if err := store.Messages.Create(ctx, &m); err != nil {
			return res, fmt.Errorf("seed message %s: %w", m.ID, err)
		}
		res.Messages++
	}

	log.Info().
		Int("users", res.Users).
		Int("jobs", res.Jobs).
		Int("messages", res.Messages).
		Int("skipped", res.Skipped).
		Msg("seed completed")
	return res, nil
}

// Demo builds the demo dataset with timestamps relative to now.
func Demo(now time.Time) (Dataset, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return Dataset{}, fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]model.User, 0, len(demoUsers))
	for _, u := range demoUsers {
		users = append(users, model.User{
			ID:           ID(u.key),
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			AvatarURL:    "https://i.pravatar.cc/150?u=" + u.key,
			Skills:       model.NormalizeSkills(u.skills),
			Location:     u.location,
			PhoneNumber:  u.phone,
			About:        u.about,
			CreatedAt:    now.Add(-u.age),
		})
	}

	jobs := make([]model.Job, 0, len(demoJobs))
	for _, j := range demoJobs {
		job := model.Job{
			ID:          ID(j.key),
			Title:       j.title,
			Description: j.description,
			Skills:      model.NormalizeSkills(j.skills),
			Payment:     j.payment,
			Location:    j.location,
			SOS:         j.sos,
			Status:      j.status,
			PosterID:    ID(j.poster),
			Applicants:  model.IDList{},
			ImageURL:    j.imageURL,
			CreatedAt:   now.Add(-j.age),
		}
		for _, a := range j.applicants {
			job.Applicants = job.Applicants.With(ID(a))
		}
		if j.worker != "" {
			w := ID(j.worker)
			job.WorkerID = &w
		}
		jobs = append(jobs, job)
	}

	messages := make([]model.ChatMessage, 0, len(demoMessages))
	for _, m := range demoMessages {
		job := findJob(m.job)
		messages = append(messages, model.ChatMessage{
			ID:        ID(m.key),
			JobID:     ID(m.job),
			SenderID:  ID(m.sender),
			Content:   m.content,
			Timestamp: now.Add(-job.age + m.after).UTC(),
		})
	}

	return Dataset{Users: users, Jobs: jobs, Messages: messages}, nil
}

func findJob(key string) demoJob {
	for _, j := range demoJobs {
		if j.key == key {
			return j
		}
	}
	panic("seed: unknown job " + key)
}
