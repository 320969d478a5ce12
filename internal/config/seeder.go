package config

import (
	"log"

	"fundtrack/internal/adapters/persistence/models"
	"fundtrack/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAccountant(); err != nil {
		return err
	}

	if s.cfg.Seed.SampleData {
		if err := s.seedSampleData(); err != nil {
			log.Printf("⚠️ Sample data seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAccountant seeds the accountant user. Idempotent: does nothing when
// an ACCOUNTANT user already exists.
func (s *Seeder) seedAccountant() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAccountant).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(s.cfg.Seed.AccountantPassword)
	if err != nil {
		return err
	}

	accountant := &models.User{
		Email:    s.cfg.Seed.AccountantEmail,
		Name:     s.cfg.Seed.AccountantName,
		Password: hashed,
		Role:     models.RoleAccountant,
	}

	if err := s.db.Create(accountant).Error; err != nil {
		return err
	}

	log.Printf("✅ Accountant user created: %s", accountant.Email)
	return nil
}

// sampleMember describes one row of development sample data
type sampleMember struct {
	name    string
	email   string
	phone   string
	address string
	monthly int64
}

// seedSampleData seeds a few members with pending payments for development.
// Idempotent: does nothing when any member already exists.
func (s *Seeder) seedSampleData() error {
	var count int64
	s.db.Model(&models.Member{}).Count(&count)
	if count > 0 {
		return nil
	}

	samples := []sampleMember{
		{"আব্দুল করিম", "karim@email.com", "01712345678", "ঢাকা, বাংলাদেশ", 1000},
		{"রহিম উদ্দিন", "rahim@email.com", "01812345678", "চট্টগ্রাম, বাংলাদেশ", 1500},
		{"সালমা খাতুন", "salma@email.com", "01912345678", "রাজশাহী, বাংলাদেশ", 1200},
	}

	hashed, err := password.Hash("password123")
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i, sm := range samples {
			monthly := decimal.NewFromInt(sm.monthly)

			member := &models.Member{
				Name:          sm.name,
				Email:         sm.email,
				Phone:         sm.phone,
				Address:       sm.address,
				MonthlyAmount: monthly,
				TotalPaid:     decimal.Zero,
				TotalDue:      monthly,
				IsActive:      true,
			}
			if err := tx.Create(member).Error; err != nil {
				return err
			}

			user := &models.User{
				Email:    sm.email,
				Name:     sm.name,
				Password: hashed,
				Role:     models.RoleMember,
				MemberID: &member.ID,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}

			// First two members get a pending payment, matching a freshly
			// provisioned fund awaiting verification.
			if i < 2 {
				payment := &models.Payment{
					Amount:        monthly,
					PaymentMethod: models.PaymentMethodBkash,
					TransactionID: "TXN" + member.ID[:6],
					Notes:         "Monthly contribution",
					Status:        models.PaymentStatusPending,
					MemberID:      member.ID,
					SubmittedBy:   user.ID,
				}
				if err := tx.Create(payment).Error; err != nil {
					return err
				}
			}
		}

		log.Printf("✅ Sample data created: %d members", len(samples))
		return nil
	})
}
