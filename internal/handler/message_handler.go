package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mentorconnect/internal/service"
)

// MessageHandler handles messaging endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest represents a message to another user.
type SendMessageRequest struct {
	ReceiverID       uint   `json:"receiver_id" validate:"required"`
	Content          string `json:"content" validate:"required"`
	SessionRequestID *uint  `json:"session_request_id,omitempty"`
}

// Send godoc
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageService.Send(c.Request().Context(), claims.UserID, req.ReceiverID, req.Content, req.SessionRequestID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, message)
}

// History godoc
// @Summary Get the message thread with another user, oldest first
// @Tags messages
// @Produce json
// @Param id path int true "Other user ID"
// @Success 200 {array} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /messages/{id} [get]
func (h *MessageHandler) History(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	messages, err := h.messageService.History(c.Request().Context(), claims.UserID, uint(id))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, messages)
}

// Conversations godoc
// @Summary List conversations with their latest message
// @Tags messages
// @Produce json
// @Success 200 {array} model.Message
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /messages [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	messages, err := h.messageService.Conversations(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, messages)
}
