package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"fundtrack/internal/adapters/persistence/models"
	"fundtrack/internal/adapters/persistence/repositories"
	"fundtrack/internal/pkg/password"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Member service errors
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrDuplicateEmail  = errors.New("member with this email already exists")
	ErrMissingName     = errors.New("name is required")
	ErrMissingEmail    = errors.New("email is required")
	ErrNegativeMonthly = errors.New("monthly amount must not be negative")
)

// MemberService handles member lifecycle and directory queries
type MemberService struct {
	memberRepo repositories.MemberRepository
	userRepo   repositories.UserRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository, userRepo repositories.UserRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

// CreateMemberInput represents create member input
type CreateMemberInput struct {
	Name          string          `json:"name" validate:"required"`
	Email         string          `json:"email" validate:"required,email"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	Password      string          `json:"password,omitempty"`
}

// CreateMemberOutput represents create member output. TempPassword is set
// only when no password was supplied; it is the single time the generated
// credential leaves the system.
type CreateMemberOutput struct {
	Member       *models.Member `json:"member"`
	TempPassword string         `json:"tempPassword,omitempty"`
}

// Create provisions a member and its paired MEMBER user account. Initial
// balances: totalDue = monthlyAmount, totalPaid = 0. The two inserts share
// one transaction so a half-provisioned account cannot be observed.
func (s *MemberService) Create(ctx context.Context, input *CreateMemberInput) (*CreateMemberOutput, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	if name == "" {
		return nil, ErrMissingName
	}
	if email == "" {
		return nil, ErrMissingEmail
	}
	if input.MonthlyAmount.IsNegative() {
		return nil, ErrNegativeMonthly
	}

	// Duplicate checks on both tables: the member email and the paired
	// user email are the same value.
	exists, err := s.memberRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	plain := input.Password
	tempPassword := ""
	if plain == "" {
		plain, err = password.GenerateTemp()
		if err != nil {
			return nil, err
		}
		tempPassword = plain
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		Name:          name,
		Email:         email,
		Phone:         strings.TrimSpace(input.Phone),
		Address:       strings.TrimSpace(input.Address),
		MonthlyAmount: input.MonthlyAmount,
		TotalPaid:     decimal.Zero,
		TotalDue:      input.MonthlyAmount,
		IsActive:      true,
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: hashed,
		Role:     models.RoleMember,
	}

	if err := s.memberRepo.CreateWithUser(ctx, member, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Member created: %s (%s)", member.Name, member.Email)

	return &CreateMemberOutput{
		Member:       member,
		TempPassword: tempPassword,
	}, nil
}

// List lists all members ordered by name ascending
func (s *MemberService) List(ctx context.Context) ([]*models.Member, error) {
	return s.memberRepo.List(ctx)
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// Delete removes a member together with all of its payments and the paired
// user account.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.memberRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	log.Printf("🗑️ Member deleted: %s (payments and user account removed)", id)
	return nil
}
