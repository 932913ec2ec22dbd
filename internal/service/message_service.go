package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
)

// MessageService handles direct messaging between users. Messages are
// immutable once sent.
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID uint, content string, sessionRequestID *uint) (*model.Message, error)
	History(ctx context.Context, userA, userB uint) ([]model.Message, error)
	Conversations(ctx context.Context, userID uint) ([]model.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	sessionRepo repository.SessionRequestRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// NewMessageService creates a new message service.
func NewMessageService(
	messageRepo repository.MessageRepository,
	sessionRepo repository.SessionRequestRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Send appends a message. When the message references a session request, both
// sender and receiver must be parties to it.
func (s *messageService) Send(ctx context.Context, senderID, receiverID uint, content string, sessionRequestID *uint) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message must not be empty", apperrors.ErrValidation)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot message yourself", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipient %d", apperrors.ErrNotFound, receiverID)
		}
		return nil, fmt.Errorf("find recipient: %w", err)
	}

	if sessionRequestID != nil {
		request, err := s.sessionRepo.FindByID(ctx, *sessionRequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: session request %d", apperrors.ErrNotFound, *sessionRequestID)
			}
			return nil, fmt.Errorf("find session request: %w", err)
		}
		if !request.IsParticipant(senderID) || !request.IsParticipant(receiverID) {
			return nil, fmt.Errorf("%w: message parties must belong to the session", apperrors.ErrAuthorization)
		}
	}

	message := &model.Message{
		SenderID:         senderID,
		ReceiverID:       receiverID,
		SessionRequestID: sessionRequestID,
		Content:          content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	s.notifier.Notify(ctx, receiverID, "You have a new message")

	return message, nil
}

// History returns the full thread between two users, oldest first.
func (s *messageService) History(ctx context.Context, userA, userB uint) ([]model.Message, error) {
	return s.messageRepo.ListConversation(ctx, userA, userB)
}

// Conversations returns the latest message of each thread the user is in.
func (s *messageService) Conversations(ctx context.Context, userID uint) ([]model.Message, error) {
	return s.messageRepo.ListLatestPerPartner(ctx, userID)
}
