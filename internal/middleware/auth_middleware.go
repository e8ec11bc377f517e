package middleware

import (
	"strings"

	"quizbook/internal/domain"
	"quizbook/internal/logger"
	"quizbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserEmailKey        = "userEmail" // Key for storing the email in fiber.Ctx locals
	AdminKey            = "isAdmin"   // Set once AdminOnly has accepted the request
)

// Protected is a middleware function that protects routes by requiring a valid JWT.
// The email of the token is stored in locals and as the identity of the
// request's user context, which services read.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(AuthorizationHeader))
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		// A bare scheme arrives without its trailing space.
		if authHeader == strings.TrimSpace(BearerSchema) {
			authHeader = BearerSchema
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserEmailKey, claims.Email)
		c.SetUserContext(domain.ContextWithIdentity(c.UserContext(), domain.Identity{Email: claims.Email}))

		return c.Next()
	}
}

// AdminOnly rejects authenticated users that are not on the administrator
// allow-list. It must run after Protected.
func AdminOnly(policy service.AdminPolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, _ := c.Locals(UserEmailKey).(string)
		if email == "" {
			return domain.NewUnauthorizedError("Authentication required")
		}
		if !policy.IsAdmin(email) {
			logger.Get().Warn("Non-admin user attempted an admin route",
				zap.String("email", email),
				zap.String("path", c.Path()))
			return domain.NewForbiddenError("Administrator rights required")
		}
		c.Locals(AdminKey, true)
		return c.Next()
	}
}
