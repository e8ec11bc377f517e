//go:build integration

package integration

import (
	"net/http"
	"testing"

	"quizbook/internal/domain"
	"quizbook/internal/handler"
	"quizbook/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCode   string
	}{
		{"no token", "", fiber.StatusUnauthorized, "MISSING_AUTH_HEADER"},
		{"malformed token", "not-a-jwt", fiber.StatusUnauthorized, "INVALID_TOKEN"},
		{"non-admin", studentToken, fiber.StatusForbidden, string(domain.CodeForbidden)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, http.MethodPost, "/api/admin/quizzes", tt.token, channelsQuiz())
			require.Equal(t, tt.wantStatus, resp.StatusCode, string(raw))
			assert.Equal(t, tt.wantCode, decode[middleware.ErrorResponse](t, raw).Code)
		})
	}

	var count int
	require.NoError(t, deps.DB.Get(&count, `SELECT COUNT(*) FROM quizzes`))
	assert.Zero(t, count)
}

func TestMe(t *testing.T) {
	resp, raw := doJSON(t, http.MethodGet, "/api/auth/me", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	me := decode[handler.MeResponse](t, raw)
	assert.Equal(t, adminEmail, me.Email)
	assert.True(t, me.IsAdmin)

	resp, raw = doJSON(t, http.MethodGet, "/api/auth/me", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.False(t, decode[handler.MeResponse](t, raw).IsAdmin)
}
