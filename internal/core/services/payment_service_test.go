package services

import (
	"context"
	"errors"
	"testing"

	"fundtrack/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
)

func TestPaymentSubmit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db)
	member, user := createTestMember(t, db, "submit@test.com", "1000")

	ctx := context.Background()

	t.Run("Submit creates pending claim without touching balances", func(t *testing.T) {
		payment, err := svc.Submit(ctx, &SubmitPaymentInput{
			Amount:        decimal.RequireFromString("500"),
			PaymentMethod: models.PaymentMethodBkash,
			TransactionID: "TXN001",
		}, member.ID, user.ID)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		if payment.ID == "" {
			t.Error("Expected payment ID to be generated")
		}
		if payment.Status != models.PaymentStatusPending {
			t.Errorf("Status mismatch: got %s, want %s", payment.Status, models.PaymentStatusPending)
		}
		if payment.SubmittedAt.IsZero() {
			t.Error("Expected SubmittedAt to be set")
		}

		balance, err := svc.Balance(ctx, member.ID)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.TotalPaid.IsZero() {
			t.Errorf("TotalPaid changed on submit: got %s, want 0", balance.TotalPaid)
		}
		if !balance.TotalDue.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("TotalDue changed on submit: got %s, want 1000", balance.TotalDue)
		}
	})

	t.Run("Submit rejects non-positive amount", func(t *testing.T) {
		_, err := svc.Submit(ctx, &SubmitPaymentInput{
			Amount:        decimal.Zero,
			PaymentMethod: models.PaymentMethodCash,
		}, member.ID, user.ID)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("Submit rejects unknown payment method", func(t *testing.T) {
		_, err := svc.Submit(ctx, &SubmitPaymentInput{
			Amount:        decimal.RequireFromString("100"),
			PaymentMethod: "CHEQUE",
		}, member.ID, user.ID)
		if !errors.Is(err, ErrInvalidMethod) {
			t.Errorf("Expected ErrInvalidMethod, got %v", err)
		}
	})

	t.Run("Submit without member record fails", func(t *testing.T) {
		_, err := svc.Submit(ctx, &SubmitPaymentInput{
			Amount:        decimal.RequireFromString("100"),
			PaymentMethod: models.PaymentMethodCash,
		}, "", user.ID)
		if !errors.Is(err, ErrNoMemberRecord) {
			t.Errorf("Expected ErrNoMemberRecord, got %v", err)
		}
	})
}

func TestPaymentVerify(t *testing.T) {
	ctx := context.Background()

	submit := func(t *testing.T, svc *PaymentService, memberID, userID, amount string) *models.Payment {
		t.Helper()
		payment, err := svc.Submit(ctx, &SubmitPaymentInput{
			Amount:        decimal.RequireFromString(amount),
			PaymentMethod: models.PaymentMethodBkash,
		}, memberID, userID)
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		return payment
	}

	t.Run("Approve updates balances", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestPaymentService(db)
		member, user := createTestMember(t, db, "approve@test.com", "1000")
		payment := submit(t, svc, member.ID, user.ID, "1000")

		verified, err := svc.Verify(ctx, payment.ID, models.VerifyActionApprove, "accountant-1")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}

		if verified.Status != models.PaymentStatusApproved {
			t.Errorf("Status mismatch: got %s, want %s", verified.Status, models.PaymentStatusApproved)
		}
		if verified.VerifiedAt == nil {
			t.Error("Expected VerifiedAt to be set")
		}
		if verified.VerifiedBy == nil || *verified.VerifiedBy != "accountant-1" {
			t.Error("Expected VerifiedBy to record the verifier")
		}

		balance, err := svc.Balance(ctx, member.ID)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.TotalPaid.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("TotalPaid mismatch: got %s, want 1000", balance.TotalPaid)
		}
		if !balance.TotalDue.IsZero() {
			t.Errorf("TotalDue mismatch: got %s, want 0", balance.TotalDue)
		}
	})

	t.Run("Overpayment clamps due at zero", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestPaymentService(db)
		member, user := createTestMember(t, db, "overpay@test.com", "1000")
		payment := submit(t, svc, member.ID, user.ID, "1500")

		if _, err := svc.Verify(ctx, payment.ID, models.VerifyActionApprove, "accountant-1"); err != nil {
			t.Fatalf("Verify failed: %v", err)
		}

		balance, err := svc.Balance(ctx, member.ID)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.TotalPaid.Equal(decimal.RequireFromString("1500")) {
			t.Errorf("TotalPaid mismatch: got %s, want 1500", balance.TotalPaid)
		}
		if !balance.TotalDue.IsZero() {
			t.Errorf("TotalDue must never go negative: got %s", balance.TotalDue)
		}
	})

	t.Run("Second verify fails and balances stay put", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestPaymentService(db)
		member, user := createTestMember(t, db, "twice@test.com", "1000")
		payment := submit(t, svc, member.ID, user.ID, "1000")

		if _, err := svc.Verify(ctx, payment.ID, models.VerifyActionApprove, "accountant-1"); err != nil {
			t.Fatalf("First verify failed: %v", err)
		}

		_, err := svc.Verify(ctx, payment.ID, models.VerifyActionApprove, "accountant-2")
		if !errors.Is(err, ErrAlreadyProcessed) {
			t.Fatalf("Expected ErrAlreadyProcessed, got %v", err)
		}

		_, err = svc.Verify(ctx, payment.ID, models.VerifyActionReject, "accountant-2")
		if !errors.Is(err, ErrAlreadyProcessed) {
			t.Fatalf("Expected ErrAlreadyProcessed on reject after approve, got %v", err)
		}

		balance, err := svc.Balance(ctx, member.ID)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.TotalPaid.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("Approval applied more than once: TotalPaid=%s, want 1000", balance.TotalPaid)
		}
	})

	t.Run("Reject mutates nothing but the claim", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestPaymentService(db)
		member, user := createTestMember(t, db, "reject@test.com", "1000")
		payment := submit(t, svc, member.ID, user.ID, "800")

		verified, err := svc.Verify(ctx, payment.ID, models.VerifyActionReject, "accountant-1")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if verified.Status != models.PaymentStatusRejected {
			t.Errorf("Status mismatch: got %s, want %s", verified.Status, models.PaymentStatusRejected)
		}

		balance, err := svc.Balance(ctx, member.ID)
		if err != nil {
			t.Fatalf("Balance failed: %v", err)
		}
		if !balance.TotalPaid.IsZero() {
			t.Errorf("TotalPaid changed on reject: got %s, want 0", balance.TotalPaid)
		}
		if !balance.TotalDue.Equal(decimal.RequireFromString("1000")) {
			t.Errorf("TotalDue changed on reject: got %s, want 1000", balance.TotalDue)
		}
	})

	t.Run("Unknown action fails", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestPaymentService(db)

		_, err := svc.Verify(ctx, "whatever", "ARCHIVE", "accountant-1")
		if !errors.Is(err, ErrInvalidAction) {
			t.Errorf("Expected ErrInvalidAction, got %v", err)
		}
	})

	t.Run("Missing payment fails", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newTestPaymentService(db)

		_, err := svc.Verify(ctx, "no-such-payment", models.VerifyActionApprove, "accountant-1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Errorf("Expected ErrPaymentNotFound, got %v", err)
		}
	})
}

func TestPaymentList(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPaymentService(db)
	member, user := createTestMember(t, db, "list@test.com", "1000")
	other, otherUser := createTestMember(t, db, "other@test.com", "1000")

	ctx := context.Background()

	for _, amount := range []string{"100", "200", "300"} {
		if _, err := svc.Submit(ctx, &SubmitPaymentInput{
			Amount:        decimal.RequireFromString(amount),
			PaymentMethod: models.PaymentMethodCash,
		}, member.ID, user.ID); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	if _, err := svc.Submit(ctx, &SubmitPaymentInput{
		Amount:        decimal.RequireFromString("400"),
		PaymentMethod: models.PaymentMethodNagad,
	}, other.ID, otherUser.ID); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	t.Run("List returns all payments with total", func(t *testing.T) {
		payments, total, err := svc.List(ctx, 0, 50)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if total != 4 {
			t.Errorf("Total mismatch: got %d, want 4", total)
		}
		if len(payments) != 4 {
			t.Errorf("Payments count mismatch: got %d, want 4", len(payments))
		}
		for _, p := range payments {
			if p.Member == nil {
				t.Error("Expected owning member to be preloaded")
			}
		}
	})

	t.Run("List respects offset and limit", func(t *testing.T) {
		payments, total, err := svc.List(ctx, 2, 2)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if total != 4 {
			t.Errorf("Total mismatch: got %d, want 4", total)
		}
		if len(payments) != 2 {
			t.Errorf("Payments count mismatch: got %d, want 2", len(payments))
		}
	})

	t.Run("ListByMember returns only own payments", func(t *testing.T) {
		payments, err := svc.ListByMember(ctx, member.ID)
		if err != nil {
			t.Fatalf("ListByMember failed: %v", err)
		}
		if len(payments) != 3 {
			t.Errorf("Payments count mismatch: got %d, want 3", len(payments))
		}
		for _, p := range payments {
			if p.MemberID != member.ID {
				t.Errorf("Leaked payment of member %s", p.MemberID)
			}
		}
	})
}
