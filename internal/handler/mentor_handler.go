package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mentorconnect/internal/service"
)

// MentorHandler handles the public mentor directory endpoints.
type MentorHandler struct {
	directoryService service.DirectoryService
}

// NewMentorHandler creates a new mentor directory handler.
func NewMentorHandler(directoryService service.DirectoryService) *MentorHandler {
	return &MentorHandler{directoryService: directoryService}
}

// Search godoc
// @Summary Search the mentor directory
// @Tags mentors
// @Produce json
// @Param q query string false "Match against name, title, and skills"
// @Param min_experience query int false "Minimum years of experience"
// @Param after_id query int false "Keyset cursor: return profiles after this id"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.MentorPage
// @Failure 400 {object} errors.ErrorResponse
// @Router /mentors [get]
func (h *MentorHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	minExperience, _ := strconv.Atoi(c.QueryParam("min_experience"))
	afterID, _ := strconv.Atoi(c.QueryParam("after_id"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	page, err := h.directoryService.Search(c.Request().Context(), query, minExperience, uint(afterID), limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, page)
}

// Detail godoc
// @Summary Get a mentor's profile, availability, and rating summary
// @Tags mentors
// @Produce json
// @Param id path int true "Mentor user ID"
// @Success 200 {object} service.MentorDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /mentors/{id} [get]
func (h *MentorHandler) Detail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	detail, err := h.directoryService.MentorDetail(c.Request().Context(), uint(id))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, detail)
}
