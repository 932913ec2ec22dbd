package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mentorconnect/internal/cache"
	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
)

var timeOfDayRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// StudentProfileUpdate carries the editable student profile fields.
type StudentProfileUpdate struct {
	AcademicYear string
	Course       string
	Interests    string
	Goals        string
}

// MentorProfileUpdate carries the editable mentor profile fields.
type MentorProfileUpdate struct {
	Title             string
	Skills            string
	YearsOfExperience int
	HourlyRate        decimal.Decimal
	ProfilePic        string
}

// ProfileService handles profile reads and edits for the logged-in user.
type ProfileService interface {
	GetStudentProfile(ctx context.Context, userID uint) (*model.StudentProfile, error)
	GetMentorProfile(ctx context.Context, userID uint) (*model.MentorProfile, error)
	UpdateStudentProfile(ctx context.Context, userID uint, update StudentProfileUpdate) (*model.StudentProfile, error)
	UpdateMentorProfile(ctx context.Context, userID uint, update MentorProfileUpdate) (*model.MentorProfile, error)
	SetAvailability(ctx context.Context, userID uint, slots []model.Availability) ([]model.Availability, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	cache       *cache.Client
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, cache *cache.Client) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		cache:       cache,
	}
}

func (s *profileService) GetStudentProfile(ctx context.Context, userID uint) (*model.StudentProfile, error) {
	profile, err := s.profileRepo.FindStudentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student profile", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("find student profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetMentorProfile(ctx context.Context, userID uint) (*model.MentorProfile, error) {
	profile, err := s.profileRepo.FindMentorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mentor profile", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("find mentor profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateStudentProfile(ctx context.Context, userID uint, update StudentProfileUpdate) (*model.StudentProfile, error) {
	profile, err := s.GetStudentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AcademicYear = update.AcademicYear
	profile.Course = update.Course
	profile.Interests = update.Interests
	profile.Goals = update.Goals

	if err := s.profileRepo.UpdateStudentProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update student profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) UpdateMentorProfile(ctx context.Context, userID uint, update MentorProfileUpdate) (*model.MentorProfile, error) {
	if update.YearsOfExperience < 0 {
		return nil, fmt.Errorf("%w: years of experience must not be negative", apperrors.ErrValidation)
	}
	if update.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: hourly rate must not be negative", apperrors.ErrValidation)
	}

	profile, err := s.GetMentorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Title = update.Title
	profile.Skills = update.Skills
	profile.YearsOfExperience = update.YearsOfExperience
	profile.HourlyRate = update.HourlyRate
	profile.ProfilePic = update.ProfilePic

	if err := s.profileRepo.UpdateMentorProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update mentor profile: %w", err)
	}

	// Drop cached directory pages so the edit shows up in searches
	_ = s.cache.DeleteByPrefix(ctx, "mentors:search:")

	return profile, nil
}

// SetAvailability replaces the mentor's weekly slots.
func (s *profileService) SetAvailability(ctx context.Context, userID uint, slots []model.Availability) ([]model.Availability, error) {
	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: day of week must be 0-6", apperrors.ErrValidation)
		}
		if !timeOfDayRegex.MatchString(slot.StartTime) || !timeOfDayRegex.MatchString(slot.EndTime) {
			return nil, fmt.Errorf("%w: times must use HH:MM", apperrors.ErrValidation)
		}
		if slot.StartTime >= slot.EndTime {
			return nil, fmt.Errorf("%w: start time must precede end time", apperrors.ErrValidation)
		}
	}

	profile, err := s.GetMentorProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.ReplaceAvailability(ctx, profile.ID, slots); err != nil {
		return nil, fmt.Errorf("replace availability: %w", err)
	}
	return s.profileRepo.ListAvailability(ctx, profile.ID)
}
