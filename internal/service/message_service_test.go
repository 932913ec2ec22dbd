package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
)

func newMessageFixture() (*MockMessageRepository, *MockSessionRequestRepository, *MockUserRepository, *recordingNotifier, MessageService) {
	messageRepo := new(MockMessageRepository)
	sessionRepo := new(MockSessionRequestRepository)
	userRepo := new(MockUserRepository)
	notifier := &recordingNotifier{}
	svc := NewMessageService(messageRepo, sessionRepo, userRepo, notifier)
	return messageRepo, sessionRepo, userRepo, notifier, svc
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers message and notifies receiver", func(t *testing.T) {
		messageRepo, _, userRepo, notifier, svc := newMessageFixture()

		userRepo.On("FindByID", ctx, uint(2)).Return(&model.User{ID: 2, Role: model.RoleMentor}, nil)
		messageRepo.On("Create", ctx, mock.AnythingOfType("*model.Message")).Return(nil)

		message, err := svc.Send(ctx, 1, 2, "  Hello there  ", nil)

		assert.NoError(t, err)
		assert.Equal(t, "Hello there", message.Content)
		assert.Equal(t, []uint{2}, notifier.notified)
		messageRepo.AssertExpectations(t)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		messageRepo, _, _, _, svc := newMessageFixture()

		_, err := svc.Send(ctx, 1, 2, "   ", nil)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects messaging yourself", func(t *testing.T) {
		_, _, _, _, svc := newMessageFixture()

		_, err := svc.Send(ctx, 1, 1, "hi", nil)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("unknown recipient maps to not found", func(t *testing.T) {
		_, _, userRepo, _, svc := newMessageFixture()

		userRepo.On("FindByID", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Send(ctx, 1, 99, "hi", nil)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("session thread requires both parties on the session", func(t *testing.T) {
		_, sessionRepo, userRepo, _, svc := newMessageFixture()

		userRepo.On("FindByID", ctx, uint(7)).Return(&model.User{ID: 7, Role: model.RoleStudent}, nil)
		sessionID := uint(10)
		sessionRepo.On("FindByID", ctx, sessionID).Return(&model.SessionRequest{
			ID:        10,
			StudentID: 1,
			MentorID:  2,
		}, nil)

		_, err := svc.Send(ctx, 1, 7, "hi", &sessionID)

		assert.ErrorIs(t, err, apperrors.ErrAuthorization)
	})

	t.Run("session thread accepts its own parties", func(t *testing.T) {
		messageRepo, sessionRepo, userRepo, _, svc := newMessageFixture()

		userRepo.On("FindByID", ctx, uint(2)).Return(&model.User{ID: 2, Role: model.RoleMentor}, nil)
		sessionID := uint(10)
		sessionRepo.On("FindByID", ctx, sessionID).Return(&model.SessionRequest{
			ID:        10,
			StudentID: 1,
			MentorID:  2,
		}, nil)
		messageRepo.On("Create", ctx, mock.AnythingOfType("*model.Message")).Return(nil)

		message, err := svc.Send(ctx, 1, 2, "hi", &sessionID)

		assert.NoError(t, err)
		assert.Equal(t, &sessionID, message.SessionRequestID)
	})
}

func TestMessageService_History(t *testing.T) {
	ctx := context.Background()
	messageRepo, _, _, _, svc := newMessageFixture()

	thread := []model.Message{
		{ID: 1, SenderID: 1, ReceiverID: 2, Content: "hi"},
		{ID: 2, SenderID: 2, ReceiverID: 1, Content: "hello"},
	}
	messageRepo.On("ListConversation", ctx, uint(1), uint(2)).Return(thread, nil)

	messages, err := svc.History(ctx, 1, 2)

	assert.NoError(t, err)
	assert.Len(t, messages, 2)
}
