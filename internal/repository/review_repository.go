package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorconnect/internal/model"
)

// MentorRatingSummary aggregates a mentor's review scores.
type MentorRatingSummary struct {
	MentorID      uint    `json:"mentor_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindBySessionRequestID(ctx context.Context, sessionRequestID uint) (*model.Review, error)
	ListForMentor(ctx context.Context, mentorID uint) ([]model.Review, error)
	SummaryForMentor(ctx context.Context, mentorID uint) (*MentorRatingSummary, error)
	Count(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindBySessionRequestID(ctx context.Context, sessionRequestID uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("session_request_id = ?", sessionRequestID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListForMentor(ctx context.Context, mentorID uint) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) SummaryForMentor(ctx context.Context, mentorID uint) (*MentorRatingSummary, error) {
	summary := MentorRatingSummary{MentorID: mentorID}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count").
		Where("mentor_id = ?", mentorID).
		Row().Scan(&summary.AverageRating, &summary.ReviewCount)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).Count(&count).Error
	return count, err
}
