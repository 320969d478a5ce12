package services

import (
	"context"
	"errors"
	"log"
	"time"

	"fundtrack/internal/adapters/persistence/models"
	"fundtrack/internal/adapters/persistence/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment service errors
var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrAlreadyProcessed = errors.New("payment already processed")
	ErrInvalidAmount    = errors.New("amount must be greater than 0")
	ErrInvalidMethod    = errors.New("invalid payment method")
	ErrInvalidAction    = errors.New("action must be APPROVE or REJECT")
	ErrNoMemberRecord   = errors.New("user has no member record")
)

// PaymentService handles the payment claim and balance reconciliation
// workflow. It holds the *gorm.DB for the verify transaction boundary; all
// other access goes through the repositories.
type PaymentService struct {
	db          *gorm.DB
	paymentRepo repositories.PaymentRepository
	memberRepo  repositories.MemberRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, paymentRepo repositories.PaymentRepository, memberRepo repositories.MemberRepository) *PaymentService {
	return &PaymentService{
		db:          db,
		paymentRepo: paymentRepo,
		memberRepo:  memberRepo,
	}
}

// SubmitPaymentInput represents a member's payment claim
type SubmitPaymentInput struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	TransactionID string          `json:"transactionId,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Submit creates a PENDING payment claim for the caller's member record.
// Balances are untouched until an accountant verifies the claim.
func (s *PaymentService) Submit(ctx context.Context, input *SubmitPaymentInput, memberID, userID string) (*models.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !models.ValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidMethod
	}
	if memberID == "" {
		return nil, ErrNoMemberRecord
	}

	payment := &models.Payment{
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		TransactionID: input.TransactionID,
		Notes:         input.Notes,
		Status:        models.PaymentStatusPending,
		MemberID:      memberID,
		SubmittedBy:   userID,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	log.Printf("✅ Payment submitted: %s amount=%s member=%s", payment.ID, payment.Amount, memberID)
	return payment, nil
}

// Verify applies an accountant's APPROVE/REJECT decision to a pending
// payment. The status flip and the balance update are one atomic unit: the
// conditional update only matches a row still in PENDING, so a racing
// second verifier observes ErrAlreadyProcessed and no balance change is
// double-applied. On APPROVE the owning member's totalPaid grows by the
// amount and totalDue shrinks by the amount, floored at zero.
func (s *PaymentService) Verify(ctx context.Context, paymentID, action, verifierID string) (*models.Payment, error) {
	if action != models.VerifyActionApprove && action != models.VerifyActionReject {
		return nil, ErrInvalidAction
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if !payment.IsPending() {
		return nil, ErrAlreadyProcessed
	}

	status := models.PaymentStatusRejected
	if action == models.VerifyActionApprove {
		status = models.PaymentStatusApproved
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.paymentRepo.MarkVerifiedIfPending(tx, paymentID, status, verifierID, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost the race: someone else verified first
			return ErrAlreadyProcessed
		}

		if status == models.PaymentStatusApproved {
			return s.memberRepo.ApplyApprovedPayment(tx, payment.MemberID, payment.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Payment %s: %s by %s", action, paymentID, verifierID)

	// Reload so the response reflects the committed row
	return s.paymentRepo.GetByID(ctx, paymentID)
}

// List lists all payments newest first with their owning members
func (s *PaymentService) List(ctx context.Context, offset, limit int) ([]*models.Payment, int64, error) {
	return s.paymentRepo.List(ctx, offset, limit)
}

// ListByMember lists a single member's payments newest first
func (s *PaymentService) ListByMember(ctx context.Context, memberID string) ([]*models.Payment, error) {
	return s.paymentRepo.ListByMemberID(ctx, memberID)
}

// MemberBalance is a convenience view of a member's running totals
type MemberBalance struct {
	TotalPaid decimal.Decimal `json:"totalPaid"`
	TotalDue  decimal.Decimal `json:"totalDue"`
}

// Balance returns the member's current running totals
func (s *PaymentService) Balance(ctx context.Context, memberID string) (*MemberBalance, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &MemberBalance{
		TotalPaid: member.TotalPaid,
		TotalDue:  member.TotalDue,
	}, nil
}
