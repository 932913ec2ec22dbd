package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mentorconnect/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// SubmitReviewRequest represents a review submission.
type SubmitReviewRequest struct {
	SessionRequestID uint   `json:"session_request_id" validate:"required"`
	Rating           int    `json:"rating" validate:"required,min=1,max=5"`
	Comment          string `json:"comment"`
}

// Submit godoc
// @Summary Review a completed session
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body SubmitReviewRequest true "Review"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Submit(c.Request().Context(), req.SessionRequestID, claims.UserID, req.Rating, req.Comment)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, review)
}

// ListForMentor godoc
// @Summary List a mentor's reviews
// @Tags reviews
// @Produce json
// @Param id path int true "Mentor user ID"
// @Success 200 {array} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Router /mentors/{id}/reviews [get]
func (h *ReviewHandler) ListForMentor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	reviews, err := h.reviewService.ListForMentor(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, reviews)
}
