package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User roles
const (
	RoleAccountant = "ACCOUNTANT"
	RoleMember     = "MEMBER"
)

// Payment statuses
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusApproved = "APPROVED"
	PaymentStatusRejected = "REJECTED"
)

// Payment methods
const (
	PaymentMethodBkash = "BKASH"
	PaymentMethodNagad = "NAGAD"
	PaymentMethodCash  = "CASH"
)

// Verification actions
const (
	VerifyActionApprove = "APPROVE"
	VerifyActionReject  = "REJECT"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodBkash, PaymentMethodNagad, PaymentMethodCash:
		return true
	}
	return false
}

// ============================================================
// Identity
// ============================================================

// User represents users table. A MEMBER user is paired with exactly one
// Member row; the ACCOUNTANT user stands alone.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'MEMBER'" json:"role"`
	MemberID  *string   `gorm:"size:36;index" json:"member_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserResponse DTO
type UserResponse struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Member *Member `json:"member,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Member: u.Member,
	}
}

// ============================================================
// Fund ledger
// ============================================================

// Member represents members table, the financial record of a fund
// participant. TotalPaid/TotalDue are mutated only by approved payments
// (and the optional monthly accrual job).
type Member struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Email         string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone         string          `gorm:"size:20" json:"phone,omitempty"`
	Address       string          `gorm:"size:255" json:"address,omitempty"`
	MonthlyAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monthlyAmount"`
	TotalPaid     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalPaid"`
	TotalDue      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalDue"`
	IsActive      bool            `gorm:"not null;default:true" json:"isActive"`
	JoinDate      time.Time       `gorm:"not null" json:"joinDate"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.JoinDate.IsZero() {
		m.JoinDate = time.Now()
	}
	return nil
}

// Payment represents payments table, a contribution claim submitted by a
// member. Status transitions exactly once from PENDING to a terminal state.
type Payment struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"size:20;not null" json:"paymentMethod"`
	TransactionID string          `gorm:"size:100" json:"transactionId,omitempty"`
	Notes         string          `gorm:"size:255" json:"notes,omitempty"`
	Status        string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	SubmittedAt   time.Time       `gorm:"not null;index" json:"submittedAt"`
	VerifiedAt    *time.Time      `json:"verifiedAt,omitempty"`
	VerifiedBy    *string         `gorm:"size:36" json:"verifiedBy,omitempty"`
	MemberID      string          `gorm:"size:36;not null;index" json:"memberId"`
	SubmittedBy   string          `gorm:"size:36;not null" json:"submittedBy"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.SubmittedAt.IsZero() {
		p.SubmittedAt = time.Now()
	}
	return nil
}

// IsPending reports whether the payment still awaits verification.
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// PaymentResponse DTO: a payment row joined with its owning member's
// name/email for the accountant listing.
type PaymentResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	TransactionID string          `json:"transactionId,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Status        string          `json:"status"`
	SubmittedAt   time.Time       `json:"submittedAt"`
	VerifiedAt    *time.Time      `json:"verifiedAt,omitempty"`
	VerifiedBy    *string         `json:"verifiedBy,omitempty"`
	MemberID      string          `json:"memberId"`
	MemberName    string          `json:"memberName,omitempty"`
	MemberEmail   string          `json:"memberEmail,omitempty"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:            p.ID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		Status:        p.Status,
		SubmittedAt:   p.SubmittedAt,
		VerifiedAt:    p.VerifiedAt,
		VerifiedBy:    p.VerifiedBy,
		MemberID:      p.MemberID,
	}

	if p.Member != nil {
		resp.MemberName = p.Member.Name
		resp.MemberEmail = p.Member.Email
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Member{},
		&Payment{},
	)
}
