package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
)

func newPaymentFixture() (*MockPaymentRepository, *MockSessionRequestRepository, *MockProfileRepository, *recordingNotifier, PaymentService) {
	paymentRepo := new(MockPaymentRepository)
	sessionRepo := new(MockSessionRequestRepository)
	profileRepo := new(MockProfileRepository)
	notifier := &recordingNotifier{}
	svc := NewPaymentService(paymentRepo, sessionRepo, profileRepo, notifier)
	return paymentRepo, sessionRepo, profileRepo, notifier, svc
}

func acceptedSession() *model.SessionRequest {
	return &model.SessionRequest{
		ID:        10,
		StudentID: 1,
		MentorID:  2,
		Topic:     "Intro to Go",
		Status:    model.SessionStatusAccepted,
	}
}

func TestPaymentService_Pay(t *testing.T) {
	ctx := context.Background()

	t.Run("records payment at the mentor's rate and notifies the mentor", func(t *testing.T) {
		paymentRepo, sessionRepo, profileRepo, notifier, svc := newPaymentFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(acceptedSession(), nil)
		profileRepo.On("FindMentorByUserID", ctx, uint(2)).Return(&model.MentorProfile{
			ID:         1,
			UserID:     2,
			HourlyRate: decimal.NewFromInt(40),
		}, nil)
		paymentRepo.On("FindBySessionRequestID", ctx, uint(10)).Return(nil, gorm.ErrRecordNotFound)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*model.Payment")).Return(nil)

		payment, err := svc.Pay(ctx, 10, 1, "upi")

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, payment.Status)
		assert.True(t, payment.Amount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, "INR", payment.Currency)
		assert.Equal(t, []uint{2}, notifier.notified)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown payment method", func(t *testing.T) {
		_, sessionRepo, _, _, svc := newPaymentFixture()

		_, err := svc.Pay(ctx, 10, 1, "cheque")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		sessionRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown session maps to not found", func(t *testing.T) {
		_, sessionRepo, _, _, svc := newPaymentFixture()

		sessionRepo.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Pay(ctx, 404, 1, "card")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("only the session's student may pay", func(t *testing.T) {
		_, sessionRepo, _, _, svc := newPaymentFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(acceptedSession(), nil)

		_, err := svc.Pay(ctx, 10, 2, "card")

		assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	})

	t.Run("unaccepted session cannot be paid for", func(t *testing.T) {
		for _, status := range []model.SessionStatus{
			model.SessionStatusPending,
			model.SessionStatusDeclined,
			model.SessionStatusCompleted,
		} {
			_, sessionRepo, _, _, svc := newPaymentFixture()

			request := acceptedSession()
			request.Status = status
			sessionRepo.On("FindByID", ctx, uint(10)).Return(request, nil)

			_, err := svc.Pay(ctx, 10, 1, "card")

			assert.ErrorIs(t, err, apperrors.ErrState)
		}
	})

	t.Run("unpriced mentor profile is a validation error", func(t *testing.T) {
		paymentRepo, sessionRepo, profileRepo, _, svc := newPaymentFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(acceptedSession(), nil)
		profileRepo.On("FindMentorByUserID", ctx, uint(2)).Return(&model.MentorProfile{ID: 1, UserID: 2}, nil)

		_, err := svc.Pay(ctx, 10, 1, "card")

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("second payment conflicts", func(t *testing.T) {
		paymentRepo, sessionRepo, profileRepo, _, svc := newPaymentFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(acceptedSession(), nil)
		profileRepo.On("FindMentorByUserID", ctx, uint(2)).Return(&model.MentorProfile{
			ID:         1,
			UserID:     2,
			HourlyRate: decimal.NewFromInt(40),
		}, nil)
		paymentRepo.On("FindBySessionRequestID", ctx, uint(10)).Return(&model.Payment{ID: 1, SessionRequestID: 10}, nil)

		_, err := svc.Pay(ctx, 10, 1, "card")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate key on insert conflicts", func(t *testing.T) {
		paymentRepo, sessionRepo, profileRepo, _, svc := newPaymentFixture()

		sessionRepo.On("FindByID", ctx, uint(10)).Return(acceptedSession(), nil)
		profileRepo.On("FindMentorByUserID", ctx, uint(2)).Return(&model.MentorProfile{
			ID:         1,
			UserID:     2,
			HourlyRate: decimal.NewFromInt(40),
		}, nil)
		paymentRepo.On("FindBySessionRequestID", ctx, uint(10)).Return(nil, gorm.ErrRecordNotFound)
		paymentRepo.On("Create", ctx, mock.AnythingOfType("*model.Payment")).Return(gorm.ErrDuplicatedKey)

		_, err := svc.Pay(ctx, 10, 1, "card")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPaymentService_Refund(t *testing.T) {
	ctx := context.Background()

	completedPayment := func() *model.Payment {
		return &model.Payment{
			ID:               5,
			SessionRequestID: 10,
			StudentID:        1,
			MentorID:         2,
			Amount:           decimal.NewFromInt(40),
			Status:           model.PaymentStatusCompleted,
		}
	}

	t.Run("participant refunds a completed payment", func(t *testing.T) {
		paymentRepo, _, _, notifier, svc := newPaymentFixture()

		paymentRepo.On("FindByID", ctx, uint(5)).Return(completedPayment(), nil)
		paymentRepo.On("UpdateStatus", ctx, uint(5), model.PaymentStatusCompleted, model.PaymentStatusRefunded).Return(true, nil)

		payment, err := svc.Refund(ctx, 5, 2, false)

		assert.NoError(t, err)
		assert.Equal(t, model.PaymentStatusRefunded, payment.Status)
		assert.Equal(t, []uint{1}, notifier.notified)
	})

	t.Run("admin may refund without being a party", func(t *testing.T) {
		paymentRepo, _, _, _, svc := newPaymentFixture()

		paymentRepo.On("FindByID", ctx, uint(5)).Return(completedPayment(), nil)
		paymentRepo.On("UpdateStatus", ctx, uint(5), model.PaymentStatusCompleted, model.PaymentStatusRefunded).Return(true, nil)

		_, err := svc.Refund(ctx, 5, 99, true)

		assert.NoError(t, err)
	})

	t.Run("outsider may not refund", func(t *testing.T) {
		paymentRepo, _, _, _, svc := newPaymentFixture()

		paymentRepo.On("FindByID", ctx, uint(5)).Return(completedPayment(), nil)

		_, err := svc.Refund(ctx, 5, 99, false)

		assert.ErrorIs(t, err, apperrors.ErrAuthorization)
		paymentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("double refund is a state error", func(t *testing.T) {
		paymentRepo, _, _, _, svc := newPaymentFixture()

		refunded := completedPayment()
		refunded.Status = model.PaymentStatusRefunded
		paymentRepo.On("FindByID", ctx, uint(5)).Return(refunded, nil)
		paymentRepo.On("UpdateStatus", ctx, uint(5), model.PaymentStatusCompleted, model.PaymentStatusRefunded).Return(false, nil)

		_, err := svc.Refund(ctx, 5, 1, false)

		assert.ErrorIs(t, err, apperrors.ErrState)
	})

	t.Run("unknown payment maps to not found", func(t *testing.T) {
		paymentRepo, _, _, _, svc := newPaymentFixture()

		paymentRepo.On("FindByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Refund(ctx, 404, 1, false)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
