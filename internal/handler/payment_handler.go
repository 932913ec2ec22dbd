package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mentorconnect/internal/model"
	"mentorconnect/internal/service"
)

// PaymentHandler handles session payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PayRequest selects how the student pays for the session.
type PayRequest struct {
	Method string `json:"method" validate:"required,oneof=card netbanking upi"`
}

// Pay godoc
// @Summary Pay for an accepted session at the mentor's hourly rate
// @Tags payments
// @Accept json
// @Produce json
// @Param id path int true "Session request ID"
// @Param request body PayRequest true "Payment method"
// @Success 201 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /sessions/{id}/pay [post]
func (h *PaymentHandler) Pay(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req PayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.paymentService.Pay(c.Request().Context(), uint(id), claims.UserID, req.Method)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// Refund godoc
// @Summary Refund a completed session payment
// @Tags payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} model.Payment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	payment, err := h.paymentService.Refund(c.Request().Context(), uint(id), claims.UserID, claims.Role == model.RoleAdmin)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, payment)
}

// List godoc
// @Summary List payments the caller is party to, newest first
// @Tags payments
// @Produce json
// @Success 200 {array} model.Payment
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) List(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	payments, err := h.paymentService.ListForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, payments)
}
