package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gigboard/internal/assist"
	"gigboard/internal/audit"
	"gigboard/internal/auth"
	"gigboard/internal/config"
	"gigboard/internal/handler"
	"gigboard/internal/model"
	"gigboard/internal/repository/memory"
	"gigboard/internal/router"
	"gigboard/internal/seed"
	"gigboard/internal/service"
)

const testSecret = "testsecret"

type testServer struct {
	e        *echo.Echo
	store    *memory.Store
	jwt      *auth.JWTService
	recorder *audit.Recorder
}

func newTestServer(t *testing.T, suggester assist.Suggester) *testServer {
	t.Helper()
	store := memory.New()
	recorder := audit.NewRecorder(store.Events(), audit.WithFlushInterval(10*time.Millisecond))
	t.Cleanup(func() { _ = recorder.Close() })

	jwtService := auth.NewJWTService(testSecret)
	tokenStore := auth.NewTokenStore(nil)

	users := service.NewUserService(store.Users(), nil)
	jobs := service.NewJobService(store.Jobs(), store.Users(), nil, recorder)
	queries := service.NewQueryService(store.Jobs())
	messages := service.NewMessageService(store.Messages(), store.Jobs())

	e := echo.New()
	router.Register(e, &config.Config{JWTSecret: testSecret}, tokenStore, router.Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(store.Users(), jwtService, tokenStore)),
		User:    handler.NewUserHandler(users, queries),
		Job:     handler.NewJobHandler(jobs, queries, users),
		Message: handler.NewMessageHandler(messages),
		Assist:  handler.NewAssistHandler(suggester, jobs, messages),
		Event:   handler.NewEventHandler(audit.NewHistory(store.Jobs(), store.Events())),
		Seed:    handler.NewSeedHandler(seed.Store{Users: store.Users(), Jobs: store.Jobs(), Messages: store.Messages()}),
	})
	return &testServer{e: e, store: store, jwt: jwtService, recorder: recorder}
}

// user creates a user directly in the store and returns it with an access token.
func (s *testServer) user(t *testing.T, name string) (*model.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Name: name, Email: name + "@example.com", PasswordHash: string(hash)}
	require.NoError(t, s.store.Users().Create(context.Background(), u))
	token, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// postJob creates an open job as the holder of token.
func (s *testServer) postJob(t *testing.T, token, title string) model.Job {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/jobs", token, map[string]any{
		"title":   title,
		"payment": "40.00",
		"skills":  []string{"Gardening"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Job](t, rec)
}

func jobPath(id uuid.UUID, suffix string) string {
	return "/api/jobs/" + id.String() + suffix
}
