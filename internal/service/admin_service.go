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

// DashboardStats aggregates counts for the admin dashboard.
type DashboardStats struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveMentors int64 `json:"active_mentors"`
	Students      int64 `json:"students"`
	Sessions      int64 `json:"sessions"`
	Reviews       int64 `json:"reviews"`
	Messages      int64 `json:"messages"`
	Payments      int64 `json:"payments"`
}

// AdminService provides operational visibility and account moderation.
type AdminService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	RecentSessions(ctx context.Context, limit int) ([]model.SessionRequest, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeactivateUser(ctx context.Context, userID uint) error
}

type adminService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRequestRepository
	reviewRepo  repository.ReviewRepository
	messageRepo repository.MessageRepository
	paymentRepo repository.PaymentRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRequestRepository,
	reviewRepo repository.ReviewRepository,
	messageRepo repository.MessageRepository,
	paymentRepo repository.PaymentRepository,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		reviewRepo:  reviewRepo,
		messageRepo: messageRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.ActiveMentors, err = s.userRepo.CountByRole(ctx, model.RoleMentor); err != nil {
		return nil, fmt.Errorf("count mentors: %w", err)
	}
	if stats.Students, err = s.userRepo.CountByRole(ctx, model.RoleStudent); err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if stats.Sessions, err = s.sessionRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if stats.Reviews, err = s.reviewRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}
	if stats.Messages, err = s.messageRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	if stats.Payments, err = s.paymentRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	return stats, nil
}

func (s *adminService) RecentSessions(ctx context.Context, limit int) ([]model.SessionRequest, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.sessionRepo.ListRecent(ctx, limit)
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// DeactivateUser retires an account by rewriting its role. Admin accounts
// cannot be deactivated.
func (s *adminService) DeactivateUser(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.IsAdmin() {
		return fmt.Errorf("%w: admin accounts cannot be deactivated", apperrors.ErrValidation)
	}
	if user.Role == model.RoleDeactivated {
		return fmt.Errorf("%w: user already deactivated", apperrors.ErrState)
	}

	if err := s.userRepo.UpdateRole(ctx, userID, model.RoleDeactivated); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}
