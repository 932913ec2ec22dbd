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

const ratingSummaryCacheTTL = 5 * time.Minute

// ReviewService handles session reviews. Exactly one review may exist per
// completed session, written by the student party.
type ReviewService interface {
	Submit(ctx context.Context, sessionRequestID, studentID uint, rating int, comment string) (*model.Review, error)
	ListForMentor(ctx context.Context, mentorID uint) ([]model.Review, error)
	MentorSummary(ctx context.Context, mentorID uint) (*repository.MentorRatingSummary, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	sessionRepo repository.SessionRequestRepository
	cache       *cache.Client
	notifier    Notifier
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	sessionRepo repository.SessionRequestRepository,
	cache *cache.Client,
	notifier Notifier,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		sessionRepo: sessionRepo,
		cache:       cache,
		notifier:    notifier,
	}
}

func (s *reviewService) summaryCacheKey(mentorID uint) string {
	return fmt.Sprintf("mentor:rating:%d", mentorID)
}

// Submit validates the actor, the session state, and the rating range before
// writing the review. The unique index on session_request_id backs up the
// existence check against concurrent submissions.
func (s *reviewService) Submit(ctx context.Context, sessionRequestID, studentID uint, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apperrors.ErrValidation)
	}

	request, err := s.sessionRepo.FindByID(ctx, sessionRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session request %d", apperrors.ErrNotFound, sessionRequestID)
		}
		return nil, fmt.Errorf("find session request: %w", err)
	}
	if request.StudentID != studentID {
		return nil, fmt.Errorf("%w: only the session's student may review it", apperrors.ErrAuthorization)
	}
	if request.Status != model.SessionStatusCompleted {
		return nil, fmt.Errorf("%w: only completed sessions can be reviewed", apperrors.ErrState)
	}

	if _, err := s.reviewRepo.FindBySessionRequestID(ctx, sessionRequestID); err == nil {
		return nil, fmt.Errorf("%w: session already reviewed", apperrors.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := &model.Review{
		SessionRequestID: sessionRequestID,
		StudentID:        studentID,
		MentorID:         request.MentorID,
		Rating:           rating,
		Comment:          comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: session already reviewed", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Invalidate cached rating summary
	_ = s.cache.Delete(ctx, s.summaryCacheKey(request.MentorID))

	s.notifier.Notify(ctx, request.MentorID, fmt.Sprintf("You received a %d-star review", rating))

	return review, nil
}

func (s *reviewService) ListForMentor(ctx context.Context, mentorID uint) ([]model.Review, error) {
	return s.reviewRepo.ListForMentor(ctx, mentorID)
}

// MentorSummary returns the mentor's average rating and review count with
// caching.
func (s *reviewService) MentorSummary(ctx context.Context, mentorID uint) (*repository.MentorRatingSummary, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, s.summaryCacheKey(mentorID)); data != nil {
		var cached repository.MentorRatingSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := s.reviewRepo.SummaryForMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, s.summaryCacheKey(mentorID), payload, ratingSummaryCacheTTL)
	}
	return summary, nil
}
