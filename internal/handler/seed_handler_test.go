package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/handler"
	"gigboard/internal/seed"
)

func TestSeedEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/seed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[handler.SeedResponse](t, rec)
	assert.Positive(t, first.Users)
	assert.Positive(t, first.Jobs)
	assert.Positive(t, first.Messages)
	assert.Zero(t, first.Skipped)

	rec = s.do(t, http.MethodPost, "/api/seed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[handler.SeedResponse](t, rec)
	assert.Zero(t, second.Users+second.Jobs+second.Messages)
	assert.Equal(t, first.Users+first.Jobs+first.Messages, second.Skipped)

	// Demo users can log in with the shared password.
	rec = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "vedanth@example.com", "password": seed.DemoPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[handler.AuthResponse](t, rec)

	rec = s.do(t, http.MethodGet, "/api/me/applications", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	job, err := s.store.Jobs().FindByID(context.Background(), seed.ID("job-2"))
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, jobPath(job.ID, "/messages"), login.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "user-1 is not part of job-2")
}
