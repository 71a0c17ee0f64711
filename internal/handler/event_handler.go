package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gigboard/internal/audit"
)

// EventHandler serves job history.
type EventHandler struct {
	history *audit.History
}

// NewEventHandler creates a new event handler.
func NewEventHandler(history *audit.History) *EventHandler {
	return &EventHandler{history: history}
}

// ListEvents godoc
// @Summary Lifecycle history of a job
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {array} model.JobEvent
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id}/events [get]
func (h *EventHandler) ListEvents(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	events, err := h.history.List(c.Request().Context(), jobID, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
