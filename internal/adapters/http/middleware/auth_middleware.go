package middleware

import (
	"strings"

	"fundtrack/internal/config"
	"fundtrack/internal/pkg/jwt"
	"fundtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. It resolves the bearer
// token to a user identity or rejects the request with 401.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			accessToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)
		if claims.MemberID != nil {
			c.Locals("memberID", *claims.MemberID)
		}

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware. A role
// mismatch is an authentication failure on this surface: wrong role → 401.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Unauthorized(c, "Unauthorized")
	}
}

// AccountantOnly middleware allows only the ACCOUNTANT role
func AccountantOnly() fiber.Handler {
	return RoleMiddleware("ACCOUNTANT")
}

// MemberOnly middleware allows only the MEMBER role
func MemberOnly() fiber.Handler {
	return RoleMiddleware("MEMBER")
}
