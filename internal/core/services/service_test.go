package services

import (
	"context"
	"testing"

	"fundtrack/internal/adapters/persistence/models"
	"fundtrack/internal/adapters/persistence/repositories"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory database with the full schema. A single
// connection keeps the in-memory database alive for the whole test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestMemberService wires a member service against the given database
func newTestMemberService(db *gorm.DB) *MemberService {
	return NewMemberService(repositories.NewMemberRepository(db), repositories.NewUserRepository(db))
}

// newTestPaymentService wires a payment service against the given database
func newTestPaymentService(db *gorm.DB) *PaymentService {
	return NewPaymentService(db, repositories.NewPaymentRepository(db), repositories.NewMemberRepository(db))
}

// createTestMember provisions a member with the given monthly amount and
// returns it together with its paired user.
func createTestMember(t *testing.T, db *gorm.DB, email, monthly string) (*models.Member, *models.User) {
	t.Helper()

	svc := newTestMemberService(db)
	out, err := svc.Create(context.Background(), &CreateMemberInput{
		Name:          "Test Member",
		Email:         email,
		MonthlyAmount: decimal.RequireFromString(monthly),
		Password:      "secret123",
	})
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	var user models.User
	if err := db.Where("member_id = ?", out.Member.ID).First(&user).Error; err != nil {
		t.Fatalf("Failed to load paired user: %v", err)
	}

	return out.Member, &user
}
