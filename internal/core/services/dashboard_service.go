package services

import (
	"context"
	"time"

	"fundtrack/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardService aggregates fund statistics for the accountant view
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardData represents the accountant dashboard
type DashboardData struct {
	// Member statistics
	TotalMembers  int64 `json:"total_members"`
	ActiveMembers int64 `json:"active_members"`

	// Payment statistics
	PendingPayments  int64 `json:"pending_payments"`
	ApprovedPayments int64 `json:"approved_payments"`
	RejectedPayments int64 `json:"rejected_payments"`

	// Fund totals
	TotalCollected     decimal.Decimal `json:"total_collected"`
	TotalOutstanding   decimal.Decimal `json:"total_outstanding"`
	CollectedThisMonth decimal.Decimal `json:"collected_this_month"`

	// Recent activity
	RecentPayments []*models.PaymentResponse `json:"recent_payments"`
}

type sumRow struct {
	Total decimal.Decimal
}

// GetDashboard returns the accountant dashboard data
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	db := s.db.WithContext(ctx)

	db.Model(&models.Member{}).Count(&data.TotalMembers)
	db.Model(&models.Member{}).Where("is_active = ?", true).Count(&data.ActiveMembers)

	db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusPending).Count(&data.PendingPayments)
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusApproved).Count(&data.ApprovedPayments)
	db.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusRejected).Count(&data.RejectedPayments)

	var row sumRow
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", models.PaymentStatusApproved).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	data.TotalCollected = row.Total

	if err := db.Model(&models.Member{}).
		Select("COALESCE(SUM(total_due), 0) AS total").
		Scan(&row).Error; err != nil {
		return nil, err
	}
	data.TotalOutstanding = row.Total

	monthStart := monthStart(time.Now())
	if err := db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("status = ? AND verified_at >= ?", models.PaymentStatusApproved, monthStart).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	data.CollectedThisMonth = row.Total

	var recent []*models.Payment
	if err := db.
		Preload("Member").
		Order("submitted_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	data.RecentPayments = make([]*models.PaymentResponse, 0, len(recent))
	for _, p := range recent {
		data.RecentPayments = append(data.RecentPayments, p.ToResponse())
	}

	return data, nil
}

// monthStart returns midnight on the first day of t's month
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
