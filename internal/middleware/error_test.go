package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"quizbook/internal/domain"
	"quizbook/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedHTTP int
		expectedCode string
	}{
		{"not found", domain.NewNotFoundError("page"), fiber.StatusNotFound, string(domain.CodeNotFound)},
		{"quiz not found", domain.NewQuizNotFoundError("intro"), fiber.StatusNotFound, string(domain.CodeQuizNotFound)},
		{"invalid input", domain.NewInvalidInputError("bad body"), fiber.StatusBadRequest, string(domain.CodeInvalidInput)},
		{"unauthorized", domain.NewUnauthorizedError("login"), fiber.StatusUnauthorized, string(domain.CodeUnauthorized)},
		{"forbidden", domain.NewForbiddenError("admins only"), fiber.StatusForbidden, string(domain.CodeForbidden)},
		{"slug taken", domain.NewSlugTakenError("intro"), fiber.StatusConflict, string(domain.CodeSlugTaken)},
		{"store failure", domain.NewStoreError("Failed to save", errors.New("disk full")), fiber.StatusInternalServerError, string(domain.CodeStoreFailure)},
		{"wrapped domain error", fmt.Errorf("handler: %w", domain.NewForbiddenError("no")), fiber.StatusForbidden, string(domain.CodeForbidden)},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), fiber.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown error", errors.New("boom"), fiber.StatusInternalServerError, string(domain.CodeInternal)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedHTTP, resp.StatusCode)

			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.expectedCode, body.Code)
			assert.Equal(t, tc.expectedHTTP, body.Status)
		})
	}
}

func TestErrorHandler_StoreFailureMessage(t *testing.T) {
	storeErr := func(c *fiber.Ctx) error {
		return domain.NewStoreError("Failed to load quiz", errors.New(`password authentication failed for user "quiz_rw"`))
	}
	asAdmin := func(c *fiber.Ctx) error {
		c.Locals(middleware.AdminKey, true)
		return c.Next()
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/public", storeErr)
	app.Get("/admin", asAdmin, storeErr)

	tests := []struct {
		path    string
		message string
	}{
		{"/public", "Failed to load quiz"},
		{"/admin", `Failed to load quiz: password authentication failed for user "quiz_rw"`},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		errs := domain.ValidationErrors{
			{Field: "pages[0].questions[0].options", Message: "choice question needs at least one option"},
			{Field: "title", Message: "is required"},
		}
		return domain.NewError(domain.CodeValidation, "Quiz validation failed", errs)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeValidation), body.Code)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "title", body.Errors[1].Field)
}

func TestValidationMiddleware(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/quizzes/:slug", vm.ValidateSlug(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.ValidatedSlugKey).(string))
	})
	app.Get("/admin/:id", vm.ValidateQuizID(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		path         string
		expectedHTTP int
	}{
		{"/quizzes/go-basics", fiber.StatusOK},
		{"/quizzes/go%20basics", fiber.StatusBadRequest},
		{"/admin/01HZY8J8Q9X5F2R3T4V5W6X7Y8", fiber.StatusOK},
		{"/admin/not-a-ulid", fiber.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedHTTP, resp.StatusCode)
		})
	}
}
