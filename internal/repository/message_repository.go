package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"mentorconnect/internal/model"
)

// MessageRepository defines message persistence operations. Messages are
// append-only; there is no update or delete.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	ListConversation(ctx context.Context, userA, userB uint) ([]model.Message, error)
	ListLatestPerPartner(ctx context.Context, userID uint) ([]model.Message, error)
	Count(ctx context.Context) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository builds a GORM-backed repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListConversation returns both directions of the pair's thread, oldest first.
func (r *messageRepository) ListConversation(ctx context.Context, userA, userB uint) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListLatestPerPartner returns the newest message of each conversation the
// user takes part in, newest conversation first.
func (r *messageRepository) ListLatestPerPartner(ctx context.Context, userID uint) ([]model.Message, error) {
	// Group takes a single column expression; the id is a uint so inlining
	// it is safe.
	partner := fmt.Sprintf("CASE WHEN sender_id = %d THEN receiver_id ELSE sender_id END", userID)
	sub := r.db.Model(&model.Message{}).
		Select("MAX(id)").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group(partner)

	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Count(&count).Error
	return count, err
}
