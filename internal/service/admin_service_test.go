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

func newAdminFixture() (*MockUserRepository, *MockSessionRequestRepository, *MockReviewRepository, *MockMessageRepository, *MockPaymentRepository, AdminService) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRequestRepository)
	reviewRepo := new(MockReviewRepository)
	messageRepo := new(MockMessageRepository)
	paymentRepo := new(MockPaymentRepository)
	svc := NewAdminService(userRepo, sessionRepo, reviewRepo, messageRepo, paymentRepo)
	return userRepo, sessionRepo, reviewRepo, messageRepo, paymentRepo, svc
}

func TestAdminService_DashboardStats(t *testing.T) {
	ctx := context.Background()
	userRepo, sessionRepo, reviewRepo, messageRepo, paymentRepo, svc := newAdminFixture()

	userRepo.On("Count", ctx).Return(int64(12), nil)
	userRepo.On("CountByRole", ctx, model.RoleMentor).Return(int64(4), nil)
	userRepo.On("CountByRole", ctx, model.RoleStudent).Return(int64(7), nil)
	sessionRepo.On("Count", ctx).Return(int64(20), nil)
	reviewRepo.On("Count", ctx).Return(int64(9), nil)
	messageRepo.On("Count", ctx).Return(int64(55), nil)
	paymentRepo.On("Count", ctx).Return(int64(6), nil)

	stats, err := svc.DashboardStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(4), stats.ActiveMentors)
	assert.Equal(t, int64(7), stats.Students)
	assert.Equal(t, int64(20), stats.Sessions)
	assert.Equal(t, int64(9), stats.Reviews)
	assert.Equal(t, int64(55), stats.Messages)
	assert.Equal(t, int64(6), stats.Payments)
}

func TestAdminService_DeactivateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites the role", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newAdminFixture()

		userRepo.On("FindByID", ctx, uint(3)).Return(&model.User{ID: 3, Role: model.RoleStudent}, nil)
		userRepo.On("UpdateRole", ctx, uint(3), model.RoleDeactivated).Return(nil)

		err := svc.DeactivateUser(ctx, 3)

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("unknown user maps to not found", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newAdminFixture()

		userRepo.On("FindByID", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.DeactivateUser(ctx, 99)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("admin accounts are protected", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newAdminFixture()

		userRepo.On("FindByID", ctx, uint(1)).Return(&model.User{ID: 1, Role: model.RoleAdmin}, nil)

		err := svc.DeactivateUser(ctx, 1)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deactivating twice is a state error", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newAdminFixture()

		userRepo.On("FindByID", ctx, uint(3)).Return(&model.User{ID: 3, Role: model.RoleDeactivated}, nil)

		err := svc.DeactivateUser(ctx, 3)

		assert.ErrorIs(t, err, apperrors.ErrState)
	})
}
