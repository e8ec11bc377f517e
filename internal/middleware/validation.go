package middleware

import (
	"quizbook/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedQuizIDKey = "validated_quiz_id"
	ValidatedSlugKey   = "validated_slug"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateQuizID validates the :id path parameter.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateQuizID(id); len(errs) > 0 {
			return errs // handled by ErrorHandler
		}
		c.Locals(ValidatedQuizIDKey, id)
		return c.Next()
	}
}

// ValidateSlug validates the :slug path parameter.
func (vm *ValidationMiddleware) ValidateSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if errs := vm.validator.ValidateSlug(slug); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedSlugKey, slug)
		return c.Next()
	}
}
