package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
)

// paymentCurrency is the platform's settlement currency.
const paymentCurrency = "INR"

var paymentMethods = map[string]bool{
	"card":       true,
	"netbanking": true,
	"upi":        true,
}

// PaymentService records session payments. A student pays for an accepted
// session at the mentor's hourly rate; either party may later refund it.
type PaymentService interface {
	Pay(ctx context.Context, sessionRequestID, studentID uint, method string) (*model.Payment, error)
	Refund(ctx context.Context, paymentID, actorID uint, admin bool) (*model.Payment, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	sessionRepo repository.SessionRequestRepository
	profileRepo repository.ProfileRepository
	notifier    Notifier
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	sessionRepo repository.SessionRequestRepository,
	profileRepo repository.ProfileRepository,
	notifier Notifier,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// Pay records the student's payment for an accepted session. The amount comes
// from the mentor's hourly rate, so the mentor must have priced their
// profile. The unique index on session_request_id backs up the existence
// check against concurrent submissions.
func (s *paymentService) Pay(ctx context.Context, sessionRequestID, studentID uint, method string) (*model.Payment, error) {
	if !paymentMethods[method] {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, method)
	}

	request, err := s.sessionRepo.FindByID(ctx, sessionRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session request %d", apperrors.ErrNotFound, sessionRequestID)
		}
		return nil, fmt.Errorf("find session request: %w", err)
	}
	if request.StudentID != studentID {
		return nil, fmt.Errorf("%w: only the session's student may pay", apperrors.ErrAuthorization)
	}
	if request.Status != model.SessionStatusAccepted {
		return nil, fmt.Errorf("%w: only accepted sessions can be paid for", apperrors.ErrState)
	}

	profile, err := s.profileRepo.FindMentorByUserID(ctx, request.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mentor has not set an hourly rate", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("find mentor profile: %w", err)
	}
	if !profile.HourlyRate.IsPositive() {
		return nil, fmt.Errorf("%w: mentor has not set an hourly rate", apperrors.ErrValidation)
	}

	if _, err := s.paymentRepo.FindBySessionRequestID(ctx, sessionRequestID); err == nil {
		return nil, fmt.Errorf("%w: session already paid for", apperrors.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}

	payment := &model.Payment{
		SessionRequestID: sessionRequestID,
		StudentID:        studentID,
		MentorID:         request.MentorID,
		Amount:           profile.HourlyRate,
		Currency:         paymentCurrency,
		Method:           method,
		Status:           model.PaymentStatusCompleted,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: session already paid for", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.notifier.Notify(ctx, request.MentorID, fmt.Sprintf("Payment received for session %q", request.Topic))

	return payment, nil
}

// Refund reverses a completed payment. Either participant or an admin may do
// it; the compare-and-set transition keeps a double refund from going
// through.
func (s *paymentService) Refund(ctx context.Context, paymentID, actorID uint, admin bool) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", apperrors.ErrNotFound, paymentID)
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if !admin && !payment.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: only the payment's parties may refund it", apperrors.ErrAuthorization)
	}

	ok, err := s.paymentRepo.UpdateStatus(ctx, paymentID, model.PaymentStatusCompleted, model.PaymentStatusRefunded)
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: payment is not refundable", apperrors.ErrState)
	}
	payment.Status = model.PaymentStatusRefunded

	s.notifier.Notify(ctx, payment.StudentID, "Your session payment was refunded")

	return payment, nil
}

// ListForUser returns payments the user is party to, newest first.
func (s *paymentService) ListForUser(ctx context.Context, userID uint) ([]model.Payment, error) {
	return s.paymentRepo.ListForUser(ctx, userID)
}
