package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"gigboard/internal/assist"
	apperr "gigboard/internal/errors"
	"gigboard/internal/service"
)

// AssistHandler serves AI suggestions. A nil suggester disables the endpoints.
type AssistHandler struct {
	suggester assist.Suggester
	jobs      service.JobService
	messages  service.MessageService
}

// NewAssistHandler creates a new assist handler.
func NewAssistHandler(suggester assist.Suggester, jobs service.JobService, messages service.MessageService) *AssistHandler {
	return &AssistHandler{suggester: suggester, jobs: jobs, messages: messages}
}

// JobDetailsRequest asks for a description and skills for a job title.
type JobDetailsRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// SuggestionsResponse holds reply suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SuggestReplies godoc
// @Summary Suggest chat replies
// @Tags assist
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} SuggestionsResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /jobs/{id}/suggestions [post]
func (h *AssistHandler) SuggestReplies(c echo.Context) error {
	if err := h.available(); err != nil {
		return err
	}
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	job, err := h.jobs.Get(ctx, jobID)
	if err != nil {
		return fail(c, err)
	}
	if !service.CanChat(job, userID) {
		return fail(c, fmt.Errorf("%w: not a participant of this job's chat", apperr.ErrForbidden))
	}
	role := assist.RoleWorker
	if service.IsPoster(job, userID) {
		role = assist.RolePoster
	}

	history, err := h.messages.List(ctx, jobID, userID)
	if err != nil {
		return fail(c, err)
	}
	suggestions, err := h.suggester.SuggestReplies(ctx, assist.ReplyRequest{
		JobTitle:       job.Title,
		JobDescription: job.Description,
		History:        history,
		CurrentUserID:  userID,
		Role:           role,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// SuggestJobDetails godoc
// @Summary Suggest a description and skills for a job title
// @Tags assist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body JobDetailsRequest true "Job title"
// @Success 200 {object} assist.JobDetails
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /jobs/suggestions [post]
func (h *AssistHandler) SuggestJobDetails(c echo.Context) error {
	if err := h.available(); err != nil {
		return err
	}
	var req JobDetailsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	details, err := h.suggester.SuggestJobDetails(c.Request().Context(), req.Title)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *AssistHandler) available() error {
	if h.suggester == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, apperr.ErrorResponse{
			Error: "suggestions are not configured",
			Code:  "ASSIST_DISABLED",
		})
	}
	return nil
}
