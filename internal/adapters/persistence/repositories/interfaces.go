package repositories

import (
	"context"
	"time"

	"fundtrack/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmailAndRole(ctx context.Context, email, role string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// MemberRepository defines member repository interface. The tx-scoped
// methods take the *gorm.DB of an enclosing transaction so a caller can
// combine them with payment writes into one atomic unit.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*models.Member, error)
	List(ctx context.Context) ([]*models.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CreateWithUser(ctx context.Context, member *models.Member, user *models.User) error
	DeleteCascade(ctx context.Context, id string) error
	ApplyApprovedPayment(tx *gorm.DB, memberID string, amount decimal.Decimal) error
	AccrueMonthlyDues(ctx context.Context) (int64, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error)
	ListByMemberID(ctx context.Context, memberID string) ([]*models.Payment, error)
	MarkVerifiedIfPending(tx *gorm.DB, id, status, verifiedBy string, at time.Time) (int64, error)
}
