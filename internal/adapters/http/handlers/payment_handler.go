package handlers

import (
	"errors"

	"fundtrack/internal/adapters/persistence/models"
	"fundtrack/internal/core/services"
	"fundtrack/internal/pkg/pagination"
	"fundtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles payment submission and verification endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List lists all payments with their owning members
// @Summary List payments
// @Description List all payments newest first, joined with member name/email (Accountant only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /accountant/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	payments, total, err := h.paymentService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	result := make([]*models.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, p.ToResponse())
	}

	return response.Success(c, "Payments retrieved successfully", fiber.Map{
		"payments":   result,
		"pagination": pagination.GetMeta(params, total),
	})
}

// VerifyPaymentRequest represents the accountant's decision
type VerifyPaymentRequest struct {
	Action string `json:"action"`
}

// Verify approves or rejects a pending payment
// @Summary Verify payment
// @Description Approve or reject a pending payment (Accountant only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param body body VerifyPaymentRequest true "Action"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accountant/payments/{id} [patch]
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	id := c.Params("id")

	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Action == "" {
		return response.BadRequest(c, "Action is required")
	}

	userID, _ := c.Locals("userID").(string)

	payment, err := h.paymentService.Verify(c.Context(), id, req.Action, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAction):
			return response.BadRequest(c, "Action must be APPROVE or REJECT")
		case errors.Is(err, services.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, services.ErrAlreadyProcessed):
			return response.BadRequest(c, "Payment already processed")
		default:
			return response.InternalServerError(c, "Failed to verify payment")
		}
	}

	return response.Success(c, "Payment "+payment.Status, fiber.Map{
		"payment": payment.ToResponse(),
	})
}

// SubmitPaymentRequest represents a member's payment claim
type SubmitPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	TransactionID string          `json:"transactionId,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// Submit creates a pending payment claim for the calling member
// @Summary Submit payment
// @Description Submit a payment claim, pending accountant verification
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitPaymentRequest true "Payment claim"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /member/payments [post]
func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	memberID, ok := c.Locals("memberID").(string)
	if !ok || memberID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, _ := c.Locals("userID").(string)

	var req SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payment, err := h.paymentService.Submit(c.Context(), &services.SubmitPaymentInput{
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	}, memberID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount),
			errors.Is(err, services.ErrInvalidMethod):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to submit payment")
		}
	}

	return response.Created(c, "Payment submitted successfully", fiber.Map{
		"payment": payment,
	})
}

// ListMine lists the calling member's own payments
// @Summary My payments
// @Description List the current member's payments newest first
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /member/payments [get]
func (h *PaymentHandler) ListMine(c *fiber.Ctx) error {
	memberID, ok := c.Locals("memberID").(string)
	if !ok || memberID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	payments, err := h.paymentService.ListByMember(c.Context(), memberID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list payments")
	}

	if payments == nil {
		payments = []*models.Payment{}
	}

	return response.Success(c, "Payments retrieved successfully", fiber.Map{
		"payments": payments,
	})
}
