package repository

import (
	"context"

	"gorm.io/gorm"

	"mentorconnect/internal/model"
)

// PaymentRepository defines payment persistence operations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByID(ctx context.Context, id uint) (*model.Payment, error)
	FindBySessionRequestID(ctx context.Context, sessionRequestID uint) (*model.Payment, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Payment, error)
	// UpdateStatus performs a compare-and-set transition, mirroring the
	// session request repository. False means the payment was not in `from`.
	UpdateStatus(ctx context.Context, id uint, from, to model.PaymentStatus) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository builds a GORM-backed repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindBySessionRequestID(ctx context.Context, sessionRequestID uint) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).
		Where("session_request_id = ?", sessionRequestID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListForUser returns payments the user took part in on either side,
// newest first.
func (r *paymentRepository) ListForUser(ctx context.Context, userID uint) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).
		Where("student_id = ? OR mentor_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uint, from, to model.PaymentStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *paymentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).Count(&count).Error
	return count, err
}
