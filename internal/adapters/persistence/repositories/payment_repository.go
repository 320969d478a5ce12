package repositories

import (
	"context"
	"time"

	"fundtrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment claim
func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment by ID with its owning member
func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// List lists payments newest first, each joined with its owning member
func (r *paymentRepository) List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Member").
		Order("submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, total, err
}

// ListByMemberID lists a single member's payments newest first
func (r *paymentRepository) ListByMemberID(ctx context.Context, memberID string) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("submitted_at DESC").
		Find(&payments).Error
	return payments, err
}

// MarkVerifiedIfPending flips a payment to its terminal status, but only
// while it is still PENDING. The WHERE clause makes the update conditional:
// a second verifier racing on the same payment gets zero rows affected and
// must not apply any balance change.
func (r *paymentRepository) MarkVerifiedIfPending(tx *gorm.DB, id, status, verifiedBy string, at time.Time) (int64, error) {
	result := tx.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"verified_at": at,
			"verified_by": verifiedBy,
		})
	return result.RowsAffected, result.Error
}
