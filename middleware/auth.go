package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/hasangurel/clinic-backend/token"
	"github.com/hasangurel/clinic-backend/utils"
)

// Protected verifies the bearer token and stores the caller's identity in
// locals. Missing, malformed, expired, or badly signed tokens all produce
// 401; role enforcement happens separately in RequireRole.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   token.SigningKey(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			userToken, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
					Message: "Unauthorized",
					Error:   "no authentication token",
				})
			}

			claims, err := token.ExtractClaims(userToken.Raw)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
					Message: "Unauthorized",
					Error:   err.Error(),
				})
			}

			c.Locals("userID", claims.UserID)
			c.Locals("username", claims.Username)
			c.Locals("role", claims.Role)

			return c.Next()
		},
	})
}

// RequireRole gates an endpoint on the role claim set by Protected.
// A valid token with the wrong role is forbidden, not unauthorized.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || !strings.EqualFold(role, requiredRole) {
			return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
				Message: "Forbidden",
				Error:   requiredRole + " access required",
			})
		}
		return c.Next()
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{
		Message: "Unauthorized",
		Error:   "Invalid or expired token",
	})
}
