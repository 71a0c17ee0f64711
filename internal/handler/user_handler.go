package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"gigboard/internal/model"
	"gigboard/internal/service"
)

// UserHandler serves profiles.
type UserHandler struct {
	svc     service.UserService
	queries service.QueryService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, queries service.QueryService) *UserHandler {
	return &UserHandler{svc: svc, queries: queries}
}

// SkillsInput accepts either a JSON list or a comma-separated string.
type SkillsInput []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillsInput) UnmarshalJSON(data []byte) error {
	var csv string
	if err := json.Unmarshal(data, &csv); err == nil {
		*s = SkillsInput(model.ParseSkills(csv))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

// UpdateProfileRequest is a partial profile edit. Omitted fields are unchanged.
type UpdateProfileRequest struct {
	Name        *string      `json:"name" validate:"omitempty,max=100"`
	Location    *string      `json:"location" validate:"omitempty,max=100"`
	About       *string      `json:"about" validate:"omitempty,max=1000"`
	AvatarURL   *string      `json:"avatar_url" validate:"omitempty,url"`
	PhoneNumber *string      `json:"phone_number" validate:"omitempty,max=30"`
	Skills      *SkillsInput `json:"skills" swaggertype:"array,string"`
}

// ProfileResponse is a public profile with the user's finished work.
type ProfileResponse struct {
	User          *model.User `json:"user"`
	CompletedJobs []model.Job `json:"completed_jobs"`
}

// GetMe godoc
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.svc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update current user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := service.ProfileUpdate{
		Name:        req.Name,
		Location:    req.Location,
		About:       req.About,
		AvatarURL:   req.AvatarURL,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Skills != nil {
		in.Skills = append([]string{}, *req.Skills...)
	}
	user, err := h.svc.UpdateProfile(c.Request().Context(), userID, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser godoc
// @Summary Public profile with completed jobs
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	user, err := h.svc.GetUser(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	completed, err := h.queries.ListCompleted(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{User: user, CompletedJobs: completed})
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
