package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gigboard/internal/service"
)

// MessageHandler serves the per-job chat.
type MessageHandler struct {
	svc service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// PostMessageRequest is a new chat message.
type PostMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// ListMessages godoc
// @Summary Chat history of a job
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {array} model.ChatMessage
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id}/messages [get]
func (h *MessageHandler) ListMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	msgs, err := h.svc.List(c.Request().Context(), jobID, userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, msgs)
}

// PostMessage godoc
// @Summary Send a chat message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body PostMessageRequest true "Message"
// @Success 201 {object} model.ChatMessage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /jobs/{id}/messages [post]
func (h *MessageHandler) PostMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req PostMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.svc.Post(c.Request().Context(), jobID, userID, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// DeleteMessage godoc
// @Summary Delete one of your own messages
// @Tags messages
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /messages/{id} [delete]
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, userID); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
