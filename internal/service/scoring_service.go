package service

import (
	"context"
	"fmt"

	"quizbook/internal/domain"
)

// ScoringService checks submitted answers for one page of a quiz.
type ScoringService interface {
	CheckPage(ctx context.Context, slug, pageID string, answers map[string]*domain.Answer) (*domain.PageScore, error)
}

type scoringService struct {
	reader QuizReaderService
}

// NewScoringService creates a new instance of scoringService.
func NewScoringService(reader QuizReaderService) ScoringService {
	return &scoringService{reader: reader}
}

// CheckPage scores answers against the page. The legacy question list of a
// quiz is addressed with the quiz id as page id.
func (s *scoringService) CheckPage(ctx context.Context, slug, pageID string, answers map[string]*domain.Answer) (*domain.PageScore, error) {
	quiz, err := s.reader.GetQuizBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(slug)
	}

	page := quiz.PageByID(pageID)
	if page == nil && pageID == quiz.ID {
		page = quiz.LegacyPage()
	}
	if page == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Page %s not found in quiz %s", pageID, slug))
	}

	score := domain.ScorePage(page, answers)
	return &score, nil
}
