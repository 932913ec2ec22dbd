package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
)

// Decision is a mentor's answer to a pending session request.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// SessionService governs the session request lifecycle:
// pending -> accepted | declined, accepted -> completed.
type SessionService interface {
	Create(ctx context.Context, studentID, mentorID uint, topic, description string, scheduledAt time.Time) (*model.SessionRequest, error)
	Respond(ctx context.Context, requestID, actorID uint, decision Decision) (*model.SessionRequest, error)
	Complete(ctx context.Context, requestID, actorID uint) (*model.SessionRequest, error)
	ListForUser(ctx context.Context, userID uint) ([]model.SessionRequest, error)
	PendingForMentor(ctx context.Context, mentorID uint) ([]model.SessionRequest, error)
}

type sessionService struct {
	sessionRepo repository.SessionRequestRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessionRepo repository.SessionRequestRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Create files a new request in state pending. The mentor must actually hold
// the mentor role and the proposed time must lie in the future.
func (s *sessionService) Create(ctx context.Context, studentID, mentorID uint, topic, description string, scheduledAt time.Time) (*model.SessionRequest, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic must not be empty", apperrors.ErrValidation)
	}
	if !scheduledAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: proposed time must be in the future", apperrors.ErrValidation)
	}

	mentor, err := s.userRepo.FindByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mentor %d does not exist", apperrors.ErrValidation, mentorID)
		}
		return nil, fmt.Errorf("find mentor: %w", err)
	}
	if !mentor.IsMentor() {
		return nil, fmt.Errorf("%w: user %d is not a mentor", apperrors.ErrValidation, mentorID)
	}

	request := &model.SessionRequest{
		StudentID:   studentID,
		MentorID:    mentorID,
		Topic:       topic,
		Description: description,
		ScheduledAt: scheduledAt,
		Status:      model.SessionStatusPending,
	}
	if err := s.sessionRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create session request: %w", err)
	}

	s.notifier.Notify(ctx, mentorID, fmt.Sprintf("New session request: %s", topic))

	return request, nil
}

// Respond lets the mentor accept or decline a pending request. The transition
// runs as a compare-and-set update, so of two concurrent responders exactly
// one wins and the other observes ErrState.
func (s *sessionService) Respond(ctx context.Context, requestID, actorID uint, decision Decision) (*model.SessionRequest, error) {
	var target model.SessionStatus
	switch decision {
	case DecisionAccept:
		target = model.SessionStatusAccepted
	case DecisionDecline:
		target = model.SessionStatusDeclined
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, decision)
	}

	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.MentorID != actorID {
		return nil, fmt.Errorf("%w: only the requested mentor may respond", apperrors.ErrAuthorization)
	}

	ok, err := s.sessionRepo.UpdateStatus(ctx, requestID, model.SessionStatusPending, target)
	if err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: session request is no longer pending", apperrors.ErrState)
	}
	request.Status = target

	verb := "accepted"
	if target == model.SessionStatusDeclined {
		verb = "declined"
	}
	s.notifier.Notify(ctx, request.StudentID, fmt.Sprintf("Your session request %q was %s", request.Topic, verb))

	return request, nil
}

// Complete marks an accepted session as held. Either participant may do it.
func (s *sessionService) Complete(ctx context.Context, requestID, actorID uint) (*model.SessionRequest, error) {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !request.IsParticipant(actorID) {
		return nil, fmt.Errorf("%w: only the student or mentor may complete a session", apperrors.ErrAuthorization)
	}

	ok, err := s.sessionRepo.UpdateStatus(ctx, requestID, model.SessionStatusAccepted, model.SessionStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: only accepted sessions can be completed", apperrors.ErrState)
	}
	request.Status = model.SessionStatusCompleted

	other := request.StudentID
	if actorID == request.StudentID {
		other = request.MentorID
	}
	s.notifier.Notify(ctx, other, fmt.Sprintf("Session %q was marked completed", request.Topic))

	return request, nil
}

// ListForUser returns every request the user takes part in, newest first.
func (s *sessionService) ListForUser(ctx context.Context, userID uint) ([]model.SessionRequest, error) {
	return s.sessionRepo.ListForUser(ctx, userID)
}

// PendingForMentor returns the mentor's open inbox.
func (s *sessionService) PendingForMentor(ctx context.Context, mentorID uint) ([]model.SessionRequest, error) {
	return s.sessionRepo.ListPendingForMentor(ctx, mentorID)
}

func (s *sessionService) findRequest(ctx context.Context, requestID uint) (*model.SessionRequest, error) {
	request, err := s.sessionRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session request %d", apperrors.ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("find session request: %w", err)
	}
	return request, nil
}
