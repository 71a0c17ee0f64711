package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperr "gigboard/internal/errors"
	"gigboard/internal/model"
	"gigboard/internal/service"
)

// JobHandler handles job posting, browsing and lifecycle endpoints.
type JobHandler struct {
	jobs    service.JobService
	queries service.QueryService
	users   service.UserService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobs service.JobService, queries service.QueryService, users service.UserService) *JobHandler {
	return &JobHandler{jobs: jobs, queries: queries, users: users}
}

// CreateJobRequest represents a new job posting.
type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Skills      []string `json:"skills" validate:"max=20,dive,max=50"`
	Payment     string   `json:"payment" validate:"required"`
	Location    string   `json:"location" validate:"max=100"`
	SOS         bool     `json:"sos"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
}

// SelectApplicantRequest names the applicant to assign.
type SelectApplicantRequest struct {
	ApplicantID string `json:"applicant_id" validate:"required,uuid"`
}

// JobListResponse is one page of jobs.
type JobListResponse struct {
	Jobs   []model.Job `json:"jobs"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// JobDetailResponse is a job as seen by the requesting user.
type JobDetailResponse struct {
	Job          *model.Job           `json:"job"`
	Capabilities service.Capabilities `json:"capabilities"`
	Poster       *model.User          `json:"poster,omitempty"`
	// Applicants is only filled in for the poster.
	Applicants []model.User `json:"applicants,omitempty"`
}

// ListJobs godoc
// @Summary Browse jobs
// @Description Non-canceled jobs matching the search term in title or skills, open jobs first.
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} JobListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) ListJobs(c echo.Context) error {
	page, err := pageFrom(c)
	if err != nil {
		return err
	}
	jobs, err := h.queries.ListVisible(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, JobListResponse{
		Jobs:   service.Paginate(jobs, page),
		Total:  len(jobs),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// ListPostings godoc
// @Summary Jobs posted by the current user
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Job
// @Router /me/postings [get]
func (h *JobHandler) ListPostings(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobs, err := h.queries.ListPostings(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// ListApplications godoc
// @Summary Jobs the current user applied to or works on
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Job
// @Router /me/applications [get]
func (h *JobHandler) ListApplications(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobs, err := h.queries.ListApplications(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// CreateJob godoc
// @Summary Post a job
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateJobRequest true "Job data"
// @Success 201 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payment, err := decimal.NewFromString(strings.TrimSpace(req.Payment))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperr.ErrorResponse{
			Error: "invalid payment",
			Code:  "INVALID_AMOUNT",
		})
	}

	job, err := h.jobs.Create(c.Request().Context(), userID, service.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Skills:      req.Skills,
		Payment:     payment,
		Location:    req.Location,
		SOS:         req.SOS,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, job)
}

// GetJob godoc
// @Summary Get a job with the caller's capabilities
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} JobDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	job, err := h.jobs.Get(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	resp := JobDetailResponse{Job: job, Capabilities: service.CapabilitiesFor(job, userID)}

	// A deleted poster or applicant profile does not hide the job.
	if poster, err := h.users.GetUser(ctx, job.PosterID); err == nil {
		resp.Poster = poster
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return fail(c, err)
	}
	if service.IsPoster(job, userID) {
		for _, applicantID := range job.Applicants {
			u, err := h.users.GetUser(ctx, applicantID)
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			if err != nil {
				return fail(c, err)
			}
			resp.Applicants = append(resp.Applicants, *u)
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Apply godoc
// @Summary Apply to an open job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	return h.lifecycle(c, h.jobs.Apply)
}

// SelectApplicant godoc
// @Summary Assign an applicant as the worker
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body SelectApplicantRequest true "Applicant"
// @Success 200 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /jobs/{id}/select [post]
func (h *JobHandler) SelectApplicant(c echo.Context) error {
	var req SelectApplicantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	applicantID, err := uuid.Parse(req.ApplicantID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperr.ErrorResponse{
			Error: "invalid applicant_id",
			Code:  "INVALID_UUID",
		})
	}
	return h.lifecycle(c, func(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error) {
		return h.jobs.SelectApplicant(ctx, jobID, actorID, applicantID)
	})
}

// Complete godoc
// @Summary Mark an assigned job as completed
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /jobs/{id}/complete [post]
func (h *JobHandler) Complete(c echo.Context) error {
	return h.lifecycle(c, h.jobs.MarkComplete)
}

// Pay godoc
// @Summary Confirm payment of a completed job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /jobs/{id}/pay [post]
func (h *JobHandler) Pay(c echo.Context) error {
	return h.lifecycle(c, h.jobs.MarkPaid)
}

// Cancel godoc
// @Summary Cancel an open job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /jobs/{id}/cancel [post]
func (h *JobHandler) Cancel(c echo.Context) error {
	return h.lifecycle(c, h.jobs.Cancel)
}

func (h *JobHandler) lifecycle(c echo.Context, op func(ctx context.Context, jobID, actorID uuid.UUID) (*model.Job, error)) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	job, err := op(c.Request().Context(), jobID, actorID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

func pageFrom(c echo.Context) (service.Page, error) {
	var p service.Page
	err := echo.QueryParamsBinder(c).
		Int("limit", &p.Limit).
		Int("offset", &p.Offset).
		BindError()
	if err != nil {
		return p, echo.NewHTTPError(http.StatusBadRequest, apperr.ErrorResponse{
			Error: "limit and offset must be integers",
			Code:  "INVALID_PAGE",
		})
	}
	return p.Normalize(), nil
}
