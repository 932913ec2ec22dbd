package service

import (
	"context"
	"fmt"
	"time"

	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/repository"
)

// Notifier is the write side used by other services. Delivery is
// fire-and-forget; a lost notification never fails the triggering operation.
type Notifier interface {
	Notify(ctx context.Context, userID uint, message string)
}

// NotificationService handles in-app notifications.
type NotificationService interface {
	Notifier
	ListForUser(ctx context.Context, userID uint) ([]model.Notification, error)
	MarkRead(ctx context.Context, id, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	// Channel for async notification writes
	writeChannel chan model.Notification
}

// NewNotificationService creates a notification service and starts its
// background batch writer.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	service := &notificationService{
		repo:         repo,
		writeChannel: make(chan model.Notification, 100),
	}

	// Start async write worker
	go service.writeWorker(context.Background())

	return service
}

// writeWorker batches notification inserts off the request path.
func (s *notificationService) writeWorker(ctx context.Context) {
	batch := make([]model.Notification, 0, 10)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-s.writeChannel:
			if !ok {
				// Channel closed, flush remaining notifications
				if len(batch) > 0 {
					_ = s.repo.CreateBatch(ctx, batch)
				}
				return
			}
			batch = append(batch, n)
			if len(batch) >= 10 {
				_ = s.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			// Flush batch periodically
			if len(batch) > 0 {
				_ = s.repo.CreateBatch(ctx, batch)
				batch = batch[:0]
			}
		case <-ctx.Done():
			return
		}
	}
}

// Notify queues a notification for the user (non-blocking).
func (s *notificationService) Notify(ctx context.Context, userID uint, message string) {
	n := model.Notification{
		UserID:  userID,
		Message: message,
	}

	select {
	case s.writeChannel <- n:
	default:
		// Channel full, write synchronously as fallback
		_ = s.repo.Create(ctx, &n)
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.repo.ListForUser(ctx, userID)
}

// MarkRead acknowledges one of the user's own notifications.
func (s *notificationService) MarkRead(ctx context.Context, id, userID uint) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: notification not found", apperrors.ErrNotFound)
	}
	return nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
