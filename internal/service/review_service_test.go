package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
)

func newReviewFixture() (*MockReviewRepository, *MockSessionRequestRepository, *recordingNotifier, ReviewService) {
	reviewRepo := new(MockReviewRepository)
	sessionRepo := new(MockSessionRequestRepository)
	notifier := &recordingNotifier{}
	svc := NewReviewService(reviewRepo, sessionRepo, nil, notifier)
	return reviewRepo, sessionRepo, notifier, svc
}

func completedSession() *model.SessionRequest {
	return &model.SessionRequest{
		ID:        10,
		StudentID: 1,
		MentorID:  2,
		Topic:     "Intro to Go",
		Status:    model.SessionStatusCompleted,
	}
}

func TestReviewService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores review for completed session", func(t *testing.T) {
		reviewRepo, sessionRepo, notifier, svc := newReviewFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(completedSession(), nil)
		reviewRepo.On("FindBySessionRequestID", ctx, uint(10)).Return(nil, gorm.ErrRecordNotFound)
		reviewRepo.On("Create", ctx, mock.AnythingOfType("*model.Review")).Return(nil)

		review, err := svc.Submit(ctx, 10, 1, 5, "Great session")

		assert.NoError(t, err)
		assert.Equal(t, uint(2), review.MentorID)
		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, []uint{2}, notifier.notified)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("rejects rating outside 1-5", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, sessionRepo, _, svc := newReviewFixture()

			_, err := svc.Submit(ctx, 10, 1, rating, "")

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			sessionRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		}
	})

	t.Run("unknown session maps to not found", func(t *testing.T) {
		_, sessionRepo, _, svc := newReviewFixture()

		sessionRepo.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Submit(ctx, 404, 1, 4, "")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("only the session's student may review", func(t *testing.T) {
		_, sessionRepo, _, svc := newReviewFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(completedSession(), nil)

		_, err := svc.Submit(ctx, 10, 2, 4, "")

		assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	})

	t.Run("uncompleted session cannot be reviewed", func(t *testing.T) {
		for _, status := range []model.SessionStatus{
			model.SessionStatusPending,
			model.SessionStatusAccepted,
			model.SessionStatusDeclined,
		} {
			_, sessionRepo, _, svc := newReviewFixture()

			request := completedSession()
			request.Status = status
			sessionRepo.On("FindByID", ctx, uint(10)).Return(request, nil)

			_, err := svc.Submit(ctx, 10, 1, 4, "")

			assert.ErrorIs(t, err, apperrors.ErrState)
		}
	})

	t.Run("second review conflicts", func(t *testing.T) {
		reviewRepo, sessionRepo, _, svc := newReviewFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(completedSession(), nil)
		reviewRepo.On("FindBySessionRequestID", ctx, uint(10)).Return(&model.Review{
			ID:               1,
			SessionRequestID: 10,
		}, nil)

		_, err := svc.Submit(ctx, 10, 1, 4, "")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate key on insert conflicts", func(t *testing.T) {
		reviewRepo, sessionRepo, _, svc := newReviewFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(completedSession(), nil)
		reviewRepo.On("FindBySessionRequestID", ctx, uint(10)).Return(nil, gorm.ErrRecordNotFound)
		reviewRepo.On("Create", ctx, mock.AnythingOfType("*model.Review")).Return(gorm.ErrDuplicatedKey)

		_, err := svc.Submit(ctx, 10, 1, 4, "")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestReviewService_MentorSummary(t *testing.T) {
	ctx := context.Background()

	reviewRepo, _, _, svc := newReviewFixture()

	reviewRepo.On("SummaryForMentor", ctx, uint(2)).Return(&repository.MentorRatingSummary{
		MentorID:      2,
		AverageRating: 4.5,
		ReviewCount:   8,
	}, nil)

	summary, err := svc.MentorSummary(ctx, 2)

	assert.NoError(t, err)
	assert.Equal(t, 4.5, summary.AverageRating)
	assert.Equal(t, int64(8), summary.ReviewCount)
}
