package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mentorconnect/internal/cache"
	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
)

const (
	directoryCacheTTL  = 5 * time.Minute
	directoryCacheKey  = "mentors:search:"
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// MentorPage is one page of directory results. NextAfterID restarts the
// sequence after the last returned profile; zero means the page was short and
// the sequence is exhausted.
type MentorPage struct {
	Mentors     []model.MentorProfile `json:"mentors"`
	NextAfterID uint                  `json:"next_after_id"`
}

// MentorDetail combines everything the mentor detail page shows.
type MentorDetail struct {
	User    *model.User                     `json:"user"`
	Profile *model.MentorProfile            `json:"profile"`
	Rating  *repository.MentorRatingSummary `json:"rating"`
}

// DirectoryService is the read-only mentor directory.
type DirectoryService interface {
	Search(ctx context.Context, query string, minExperience int, afterID uint, limit int) (*MentorPage, error)
	MentorDetail(ctx context.Context, userID uint) (*MentorDetail, error)
}

type directoryService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	reviewRepo  repository.ReviewRepository
	cache       *cache.Client
}

// NewDirectoryService creates a new directory service.
func NewDirectoryService(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	cache *cache.Client,
) DirectoryService {
	return &directoryService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		reviewRepo:  reviewRepo,
		cache:       cache,
	}
}

// Search pages through mentors matching the query, keyset-paginated by
// profile id. Pages are cached per (query, filters, cursor).
func (s *directoryService) Search(ctx context.Context, query string, minExperience int, afterID uint, limit int) (*MentorPage, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	key := fmt.Sprintf("%sq=%s:exp=%d:after=%d:limit=%d", directoryCacheKey, query, minExperience, afterID, limit)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached MentorPage
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	profiles, err := s.profileRepo.SearchMentors(ctx, repository.MentorSearchFilter{
		Query:         query,
		MinExperience: minExperience,
		AfterID:       afterID,
		Limit:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search mentors: %w", err)
	}

	page := &MentorPage{Mentors: profiles}
	if len(profiles) == limit {
		page.NextAfterID = profiles[len(profiles)-1].ID
	}

	if payload, err := json.Marshal(page); err == nil {
		_ = s.cache.Set(ctx, key, payload, directoryCacheTTL)
	}
	return page, nil
}

// MentorDetail returns the mentor's account, profile with availability, and
// rating summary. Non-mentor users are reported as not found, matching what
// the directory lists.
func (s *directoryService) MentorDetail(ctx context.Context, userID uint) (*MentorDetail, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mentor %d", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsMentor() {
		return nil, fmt.Errorf("%w: mentor %d", apperrors.ErrNotFound, userID)
	}

	profile, err := s.profileRepo.FindMentorByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mentor profile %d", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("find mentor profile: %w", err)
	}

	rating, err := s.reviewRepo.SummaryForMentor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}

	return &MentorDetail{User: user, Profile: profile, Rating: rating}, nil
}
