package repositories

import (
	"context"

	"fundtrack/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memberRepository implements MemberRepository interface
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// GetByID gets a member by ID
func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List lists all members ordered by name ascending
func (r *memberRepository) List(ctx context.Context) ([]*models.Member, error) {
	var members []*models.Member
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

// ExistsByEmail checks if a member with the email exists
func (r *memberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// CreateWithUser creates a member and its paired user account in one
// transaction: if the user write fails, the member row is rolled back so
// no orphan can be observed.
func (r *memberRepository) CreateWithUser(ctx context.Context, member *models.Member, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		user.MemberID = &member.ID
		return tx.Create(user).Error
	})
}

// DeleteCascade removes a member together with all of its payments and the
// paired user account. Returns gorm.ErrRecordNotFound when the member does
// not exist.
func (r *memberRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.Member
		if err := tx.Where("id = ?", id).First(&member).Error; err != nil {
			return err
		}

		if err := tx.Where("member_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(&member).Error
	})
}

// ApplyApprovedPayment increments the member's running totals for an
// approved payment: total_paid grows by the amount, total_due shrinks by
// the amount but never below zero. Both writes run as SQL expressions on
// the caller's transaction, so there is no read-modify-write window.
func (r *memberRepository) ApplyApprovedPayment(tx *gorm.DB, memberID string, amount decimal.Decimal) error {
	result := tx.Model(&models.Member{}).
		Where("id = ?", memberID).
		Updates(map[string]interface{}{
			"total_paid": gorm.Expr("total_paid + ?", amount),
			"total_due":  gorm.Expr("CASE WHEN total_due > ? THEN total_due - ? ELSE 0 END", amount, amount),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AccrueMonthlyDues adds one monthly amount to every active member's due
// balance. Returns the number of members accrued.
func (r *memberRepository) AccrueMonthlyDues(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Member{}).
		Where("is_active = ?", true).
		Update("total_due", gorm.Expr("total_due + monthly_amount"))
	return result.RowsAffected, result.Error
}
