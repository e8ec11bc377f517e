package handler

import (
	"quizbook/internal/domain"
	"quizbook/internal/dto"
	"quizbook/internal/logger"
	"quizbook/internal/service"
	"quizbook/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles public quiz HTTP requests
type QuizHandler struct {
	reader    service.QuizReaderService
	scoring   service.ScoringService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(reader service.QuizReaderService, scoring service.ScoringService) *QuizHandler {
	return &QuizHandler{
		reader:    reader,
		scoring:   scoring,
		validator: validation.NewValidator(),
	}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Description Returns all quizzes without their pages, newest first
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.ListQuizzesResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.reader.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListQuizzesResponse(quizzes))
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns the quiz with its pages, questions, options and theory blocks. Correct answers are not included.
// @Tags quiz
// @Produce json
// @Param slug path string true "Quiz slug"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{slug} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	slug := c.Params("slug")
	quiz, err := h.reader.GetQuizBySlug(c.UserContext(), slug)
	if err != nil {
		return err
	}
	if quiz == nil {
		return domain.NewQuizNotFoundError(slug)
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// CheckPage godoc
// @Summary Check the answers of one page
// @Description Scores the submitted answers. Unanswered questions count as incorrect.
// @Tags quiz
// @Accept json
// @Produce json
// @Param slug path string true "Quiz slug"
// @Param pageID path string true "Page ID (the quiz ID addresses legacy questions)"
// @Param answers body dto.CheckPageRequest true "Answers keyed by question ID"
// @Success 200 {object} dto.CheckPageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quizzes/{slug}/pages/{pageID}/check [post]
func (h *QuizHandler) CheckPage(c *fiber.Ctx) error {
	slug := c.Params("slug")
	pageID := c.Params("pageID")

	var req dto.CheckPageRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse check request", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	if errs := h.validator.ValidateCheckRequest(pageID, req.Answers); len(errs) > 0 {
		return errs
	}

	score, err := h.scoring.CheckPage(c.UserContext(), slug, pageID, req.Answers)
	if err != nil {
		return err
	}

	logger.Get().Debug("Page checked",
		zap.String("slug", slug),
		zap.String("pageID", pageID),
		zap.Int("correct", score.Correct),
		zap.Int("total", score.Total))
	return c.JSON(dto.NewCheckPageResponse(score))
}
