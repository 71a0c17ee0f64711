package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/assist"
	apperr "gigboard/internal/errors"
	"gigboard/internal/handler"
)

type fakeSuggester struct {
	replyReq assist.ReplyRequest
	err      error
}

func (f *fakeSuggester) SuggestReplies(_ context.Context, req assist.ReplyRequest) ([]string, error) {
	f.replyReq = req
	if f.err != nil {
		return nil, f.err
	}
	return []string{"Sounds good", "On my way", "Thanks!"}, nil
}

func (f *fakeSuggester) SuggestJobDetails(_ context.Context, title string) (*assist.JobDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &assist.JobDetails{Description: "Help needed: " + title, Skills: []string{"Cleaning"}}, nil
}

func TestAssistDisabled(t *testing.T) {
	s := newTestServer(t, nil)
	_, token := s.user(t, "poster")

	rec := s.do(t, http.MethodPost, "/api/jobs/suggestions", token, map[string]string{"title": "Clean garage"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ASSIST_DISABLED", decode[apperr.ErrorResponse](t, rec).Code)
}

func TestSuggestReplies(t *testing.T) {
	fake := &fakeSuggester{}
	s := newTestServer(t, fake)
	poster, posterToken := s.user(t, "poster")
	worker, workerToken := s.user(t, "worker")
	_, otherToken := s.user(t, "other")

	job := s.postJob(t, posterToken, "Clean garage")
	path := jobPath(job.ID, "/suggestions")

	rec := s.do(t, http.MethodPost, path, posterToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "chat is closed until a worker is assigned")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, jobPath(job.ID, "/apply"), workerToken, nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, jobPath(job.ID, "/select"), posterToken,
		map[string]string{"applicant_id": worker.ID.String()}).Code)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, jobPath(job.ID, "/messages"), workerToken,
		map[string]string{"content": "Which day works?"}).Code)

	rec = s.do(t, http.MethodPost, path, posterToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[handler.SuggestionsResponse](t, rec).Suggestions, 3)
	assert.Equal(t, assist.RolePoster, fake.replyReq.Role)
	assert.Equal(t, poster.ID, fake.replyReq.CurrentUserID)
	assert.Equal(t, "Clean garage", fake.replyReq.JobTitle)
	require.Len(t, fake.replyReq.History, 1)

	rec = s.do(t, http.MethodPost, path, workerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, assist.RoleWorker, fake.replyReq.Role)

	rec = s.do(t, http.MethodPost, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSuggestJobDetails(t *testing.T) {
	fake := &fakeSuggester{}
	s := newTestServer(t, fake)
	_, token := s.user(t, "poster")

	rec := s.do(t, http.MethodPost, "/api/jobs/suggestions", token, map[string]string{"title": "Clean garage"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	details := decode[assist.JobDetails](t, rec)
	assert.Equal(t, "Help needed: Clean garage", details.Description)
	assert.Equal(t, []string{"Cleaning"}, details.Skills)

	rec = s.do(t, http.MethodPost, "/api/jobs/suggestions", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fake.err = fmt.Errorf("%w: model timed out", apperr.ErrAssistUnavailable)
	rec = s.do(t, http.MethodPost, "/api/jobs/suggestions", token, map[string]string{"title": "Clean garage"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "ASSIST_UNAVAILABLE", decode[apperr.ErrorResponse](t, rec).Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}
