package handlers

import (
	"errors"

	"fundtrack/internal/core/services"
	"fundtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// MemberHandler handles member directory and profile endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List lists all members
// @Summary List members
// @Description List all members ordered by name (Accountant only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /accountant/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	members, err := h.memberService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully", fiber.Map{
		"members": members,
	})
}

// CreateMemberRequest represents create member request
type CreateMemberRequest struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	Password      string          `json:"password,omitempty"`
}

// Create creates a new member with a paired user account
// @Summary Create member
// @Description Create a member and its paired MEMBER user (Accountant only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateMemberRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /accountant/members [post]
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.memberService.Create(c.Context(), &services.CreateMemberInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		MonthlyAmount: req.MonthlyAmount,
		Password:      req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingName),
			errors.Is(err, services.ErrMissingEmail),
			errors.Is(err, services.ErrNegativeMonthly):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrDuplicateEmail):
			return response.BadRequest(c, "Member with this email already exists")
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	data := fiber.Map{"member": result.Member}
	if result.TempPassword != "" {
		data["tempPassword"] = result.TempPassword
	}

	return response.Created(c, "Member created successfully", data)
}

// Delete removes a member with all payments and the paired user account
// @Summary Delete member
// @Description Delete a member, its payments and its user account (Accountant only)
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accountant/members/{id} [delete]
func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.memberService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to delete member")
	}

	return response.Success(c, "Member deleted successfully", nil)
}

// GetProfile returns the calling member's own record
// @Summary Member profile
// @Description Get the current member's record
// @Tags Members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /member/profile [get]
func (h *MemberHandler) GetProfile(c *fiber.Ctx) error {
	memberID, ok := c.Locals("memberID").(string)
	if !ok || memberID == "" {
		return response.Unauthorized(c, "Unauthorized")
	}

	member, err := h.memberService.GetByID(c.Context(), memberID)
	if err != nil {
		if errors.Is(err, services.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to get profile")
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"member": member,
	})
}
