package handler

import (
	"quizbook/internal/domain"
	"quizbook/internal/logger"
	"quizbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminQuizHandler handles quiz authoring requests. Routes are mounted
// behind Protected and AdminOnly; the editor service checks the identity
// again before writing.
type AdminQuizHandler struct {
	editor service.QuizEditorService
	reader service.QuizReaderService
}

// NewAdminQuizHandler creates a new AdminQuizHandler instance
func NewAdminQuizHandler(editor service.QuizEditorService, reader service.QuizReaderService) *AdminQuizHandler {
	return &AdminQuizHandler{editor: editor, reader: reader}
}

// GetQuiz godoc
// @Summary Get a quiz for editing
// @Description Returns the full quiz tree including correct flags and accepted answers
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} domain.Quiz
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/quizzes/{id} [get]
func (h *AdminQuizHandler) GetQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	quiz, err := h.reader.GetQuizByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if quiz == nil {
		return domain.NewQuizNotFoundError(id)
	}
	return c.JSON(quiz)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Description Creates a quiz tree. A taken slug gets a numeric suffix.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz body domain.Quiz true "Quiz tree"
// @Success 201 {object} service.SaveResult
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes [post]
func (h *AdminQuizHandler) CreateQuiz(c *fiber.Ctx) error {
	quiz, err := parseQuizBody(c)
	if err != nil {
		return err
	}
	result, err := h.editor.CreateQuiz(c.UserContext(), quiz)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// UpdateQuiz godoc
// @Summary Update a quiz
// @Description Replaces the quiz tree. Children with known IDs are updated, others inserted, missing ones deleted.
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param quiz body domain.Quiz true "Quiz tree"
// @Success 200 {object} service.SaveResult
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes/{id} [put]
func (h *AdminQuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	quiz, err := parseQuizBody(c)
	if err != nil {
		return err
	}
	result, err := h.editor.UpdateQuiz(c.UserContext(), c.Params("id"), quiz)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Deletes the quiz with all pages, questions, options and theory blocks
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} service.SaveResult
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/quizzes/{id} [delete]
func (h *AdminQuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	result, err := h.editor.DeleteQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func parseQuizBody(c *fiber.Ctx) (*domain.Quiz, error) {
	var quiz domain.Quiz
	if err := c.BodyParser(&quiz); err != nil {
		logger.Get().Debug("Failed to parse quiz body", zap.Error(err))
		return nil, domain.NewInvalidInputError("Invalid request body")
	}
	return &quiz, nil
}
