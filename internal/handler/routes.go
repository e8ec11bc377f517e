package handler

import (
	"quizbook/internal/middleware"
	"quizbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything mounted under /api. Auth and Assets may be nil
// when the corresponding feature is not configured.
type Handlers struct {
	Quiz        *QuizHandler
	Admin       *AdminQuizHandler
	Auth        *AuthHandler
	Assets      *AssetHandler
	AuthService service.AuthService
	Policy      service.AdminPolicy
}

// RegisterRoutes mounts the public and admin API on app.
func RegisterRoutes(app *fiber.App, h Handlers) {
	vm := middleware.NewValidationMiddleware()
	api := app.Group("/api")

	quizzes := api.Group("/quizzes")
	quizzes.Get("/", h.Quiz.ListQuizzes)
	quizzes.Get("/:slug", vm.ValidateSlug(), h.Quiz.GetQuiz)
	quizzes.Post("/:slug/pages/:pageID/check", vm.ValidateSlug(), h.Quiz.CheckPage)

	if h.Auth != nil {
		auth := api.Group("/auth")
		auth.Get("/google/login", h.Auth.GoogleLogin)
		auth.Get("/google/callback", h.Auth.GoogleCallback)
		auth.Get("/me", middleware.Protected(h.AuthService), h.Auth.Me)
	}

	admin := api.Group("/admin", middleware.Protected(h.AuthService), middleware.AdminOnly(h.Policy))
	admin.Post("/quizzes", h.Admin.CreateQuiz)
	admin.Get("/quizzes/:id", vm.ValidateQuizID(), h.Admin.GetQuiz)
	admin.Put("/quizzes/:id", vm.ValidateQuizID(), h.Admin.UpdateQuiz)
	admin.Delete("/quizzes/:id", vm.ValidateQuizID(), h.Admin.DeleteQuiz)

	if h.Assets != nil {
		admin.Post("/assets", h.Assets.Upload)
		admin.Delete("/assets", h.Assets.Delete)
	}
}
