package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorconnect/internal/model"
)

// SessionRequestRepository defines session request persistence operations.
type SessionRequestRepository interface {
	Create(ctx context.Context, request *model.SessionRequest) error
	FindByID(ctx context.Context, id uint) (*model.SessionRequest, error)
	// UpdateStatus performs a compare-and-set transition. It reports whether
	// the row actually moved from `from` to `to`; false means another writer
	// got there first or the request never was in `from`.
	UpdateStatus(ctx context.Context, id uint, from, to model.SessionStatus) (bool, error)
	ListForUser(ctx context.Context, userID uint) ([]model.SessionRequest, error)
	ListPendingForMentor(ctx context.Context, mentorID uint) ([]model.SessionRequest, error)
	ListRecent(ctx context.Context, limit int) ([]model.SessionRequest, error)
	Count(ctx context.Context) (int64, error)
}

type sessionRequestRepository struct {
	db *gorm.DB
}

// NewSessionRequestRepository builds a GORM-backed repository.
func NewSessionRequestRepository(db *gorm.DB) SessionRequestRepository {
	return &sessionRequestRepository{db: db}
}

func (r *sessionRequestRepository) Create(ctx context.Context, request *model.SessionRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *sessionRequestRepository) FindByID(ctx context.Context, id uint) (*model.SessionRequest, error) {
	var request model.SessionRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *sessionRequestRepository) UpdateStatus(ctx context.Context, id uint, from, to model.SessionStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.SessionRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *sessionRequestRepository) ListForUser(ctx context.Context, userID uint) ([]model.SessionRequest, error) {
	var requests []model.SessionRequest
	if err := r.db.WithContext(ctx).
		Where("student_id = ? OR mentor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *sessionRequestRepository) ListPendingForMentor(ctx context.Context, mentorID uint) ([]model.SessionRequest, error) {
	var requests []model.SessionRequest
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND status = ?", mentorID, model.SessionStatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *sessionRequestRepository) ListRecent(ctx context.Context, limit int) ([]model.SessionRequest, error) {
	var requests []model.SessionRequest
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *sessionRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SessionRequest{}).Count(&count).Error
	return count, err
}
