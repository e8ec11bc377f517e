package service

import (
	"context"
	"fmt"

	"quizbook/internal/domain"
)

// loadTrees fills in pages, questions, options, theory blocks and legacy
// questions for quizzes with one batched query per level.
func loadTrees(ctx context.Context, repo domain.QuizRepository, quizzes []*domain.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	quizIDs := make([]string, len(quizzes))
	for i, q := range quizzes {
		quizIDs[i] = q.ID
	}

	var rows domain.TreeRows
	var err error

	if rows.Pages, err = repo.GetPagesByQuizIDs(ctx, quizIDs); err != nil {
		return fmt.Errorf("load pages: %w", err)
	}
	pageIDs := make([]string, len(rows.Pages))
	for i, p := range rows.Pages {
		pageIDs[i] = p.ID
	}

	if rows.Questions, err = repo.GetQuestionsByPageIDs(ctx, pageIDs); err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	if rows.LegacyQuestions, err = repo.GetLegacyQuestionsByQuizIDs(ctx, quizIDs); err != nil {
		return fmt.Errorf("load legacy questions: %w", err)
	}

	questionIDs := make([]string, 0, len(rows.Questions)+len(rows.LegacyQuestions))
	for _, q := range rows.Questions {
		questionIDs = append(questionIDs, q.ID)
	}
	for _, q := range rows.LegacyQuestions {
		questionIDs = append(questionIDs, q.ID)
	}

	if rows.Options, err = repo.GetOptionsByQuestionIDs(ctx, questionIDs); err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	if rows.TheoryBlocks, err = repo.GetTheoryBlocksByQuizIDs(ctx, quizIDs); err != nil {
		return fmt.Errorf("load theory blocks: %w", err)
	}

	domain.AssembleTree(quizzes, rows)
	return nil
}

// loadTreeByID returns the full tree of one quiz, or nil when it is absent.
func loadTreeByID(ctx context.Context, repo domain.QuizRepository, id string) (*domain.Quiz, error) {
	quiz, err := repo.GetQuizByID(ctx, id)
	if err != nil || quiz == nil {
		return nil, err
	}
	if err := loadTrees(ctx, repo, []*domain.Quiz{quiz}); err != nil {
		return nil, err
	}
	return quiz, nil
}
