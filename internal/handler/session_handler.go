package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"mentorconnect/internal/service"
)

// SessionHandler handles session request endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSessionRequest represents a session booking request.
type CreateSessionRequest struct {
	MentorID    uint      `json:"mentor_id" validate:"required"`
	Topic       string    `json:"topic" validate:"required"`
	Description string    `json:"description"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

// RespondSessionRequest represents a mentor's decision on a request.
type RespondSessionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept decline"`
}

// Create godoc
// @Summary Request a mentorship session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Session request"
// @Success 201 {object} model.SessionRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.sessionService.Create(c.Request().Context(), claims.UserID, req.MentorID, req.Topic, req.Description, req.ScheduledAt)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, request)
}

// Respond godoc
// @Summary Accept or decline a pending session request
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path int true "Session request ID"
// @Param request body RespondSessionRequest true "Decision"
// @Success 200 {object} model.SessionRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id}/respond [post]
func (h *SessionHandler) Respond(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req RespondSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.sessionService.Respond(c.Request().Context(), uint(id), claims.UserID, service.Decision(req.Decision))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, request)
}

// Complete godoc
// @Summary Mark an accepted session as completed
// @Tags sessions
// @Produce json
// @Param id path int true "Session request ID"
// @Success 200 {object} model.SessionRequest
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) Complete(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	request, err := h.sessionService.Complete(c.Request().Context(), uint(id), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, request)
}

// List godoc
// @Summary List the caller's session requests, newest first
// @Tags sessions
// @Produce json
// @Success 200 {array} model.SessionRequest
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	requests, err := h.sessionService.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, requests)
}

// Pending godoc
// @Summary List pending requests addressed to the caller (mentor inbox)
// @Tags sessions
// @Produce json
// @Success 200 {array} model.SessionRequest
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /sessions/pending [get]
func (h *SessionHandler) Pending(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	requests, err := h.sessionService.PendingForMentor(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, requests)
}
