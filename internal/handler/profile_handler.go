package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"mentorconnect/internal/model"
	"mentorconnect/internal/service"
)

// ProfileHandler handles the logged-in user's profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateStudentProfileRequest represents a student profile edit.
type UpdateStudentProfileRequest struct {
	AcademicYear string `json:"academic_year"`
	Course       string `json:"course"`
	Interests    string `json:"interests"`
	Goals        string `json:"goals"`
}

// UpdateMentorProfileRequest represents a mentor profile edit.
type UpdateMentorProfileRequest struct {
	Title             string          `json:"title"`
	Skills            string          `json:"skills"`
	YearsOfExperience int             `json:"years_of_experience" validate:"min=0"`
	HourlyRate        decimal.Decimal `json:"hourly_rate"`
	ProfilePic        string          `json:"profile_pic"`
}

// AvailabilitySlotRequest is one weekly availability slot.
type AvailabilitySlotRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// SetAvailabilityRequest replaces the mentor's weekly slots.
type SetAvailabilityRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots" validate:"dive"`
}

// Get godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Success 200 {object} interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	switch claims.Role {
	case model.RoleStudent:
		profile, err := h.profileService.GetStudentProfile(c.Request().Context(), claims.UserID)
		if err != nil {
			return domainError(err)
		}
		return c.JSON(http.StatusOK, profile)
	case model.RoleMentor:
		profile, err := h.profileService.GetMentorProfile(c.Request().Context(), claims.UserID)
		if err != nil {
			return domainError(err)
		}
		return c.JSON(http.StatusOK, profile)
	default:
		return echo.NewHTTPError(http.StatusForbidden, "no profile for this role")
	}
}

// UpdateStudent godoc
// @Summary Update the caller's student profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateStudentProfileRequest true "Profile fields"
// @Success 200 {object} model.StudentProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /profile/student [put]
func (h *ProfileHandler) UpdateStudent(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	if claims.Role != model.RoleStudent {
		return echo.NewHTTPError(http.StatusForbidden, "student role required")
	}

	var req UpdateStudentProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	profile, err := h.profileService.UpdateStudentProfile(c.Request().Context(), claims.UserID, service.StudentProfileUpdate{
		AcademicYear: req.AcademicYear,
		Course:       req.Course,
		Interests:    req.Interests,
		Goals:        req.Goals,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// UpdateMentor godoc
// @Summary Update the caller's mentor profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body UpdateMentorProfileRequest true "Profile fields"
// @Success 200 {object} model.MentorProfile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /profile/mentor [put]
func (h *ProfileHandler) UpdateMentor(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	if claims.Role != model.RoleMentor {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}

	var req UpdateMentorProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.UpdateMentorProfile(c.Request().Context(), claims.UserID, service.MentorProfileUpdate{
		Title:             req.Title,
		Skills:            req.Skills,
		YearsOfExperience: req.YearsOfExperience,
		HourlyRate:        req.HourlyRate,
		ProfilePic:        req.ProfilePic,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// SetAvailability godoc
// @Summary Replace the caller's weekly availability
// @Tags profile
// @Accept json
// @Produce json
// @Param request body SetAvailabilityRequest true "Slots"
// @Success 200 {array} model.Availability
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /profile/availability [put]
func (h *ProfileHandler) SetAvailability(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	if claims.Role != model.RoleMentor {
		return echo.NewHTTPError(http.StatusForbidden, "mentor role required")
	}

	var req SetAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slots := make([]model.Availability, 0, len(req.Slots))
	for _, slot := range req.Slots {
		slots = append(slots, model.Availability{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}

	saved, err := h.profileService.SetAvailability(c.Request().Context(), claims.UserID, slots)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, saved)
}
