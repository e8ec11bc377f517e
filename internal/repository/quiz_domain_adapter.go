package repository

import (
	"quizbook/internal/domain"
	"quizbook/internal/repository/models"
	"quizbook/internal/util"
)

// Converters between row models and domain entities.

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description.String,
		Slug:        m.Slug,
		CreatedAt:   m.CreatedAt,
	}
}

func toDomainPage(m *models.Page) *domain.Page {
	return &domain.Page{
		ID:         m.ID,
		QuizID:     m.QuizID,
		Type:       domain.PageType(m.PageType),
		Title:      m.Title.String,
		OrderIndex: m.OrderIndex,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	return &domain.Question{
		ID:          m.ID,
		PageID:      m.PageID.String,
		QuizID:      m.QuizID.String,
		Title:       m.Title,
		Explanation: m.Explanation.String,
		OrderIndex:  m.OrderIndex,
	}
}

// toDomainOption maps a NULL gap index to gap 0.
func toDomainOption(m *models.Option) *domain.Option {
	o := &domain.Option{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		Text:       m.Text,
		IsCorrect:  m.IsCorrect,
		OrderIndex: m.OrderIndex,
	}
	if m.GapIndex.Valid {
		o.GapIndex = int(m.GapIndex.Int64)
	}
	return o
}

func toDomainTheoryBlock(m *models.TheoryBlock) *domain.TheoryBlock {
	return &domain.TheoryBlock{
		ID:         m.ID,
		QuizID:     m.QuizID,
		Type:       domain.TheoryType(m.BlockType),
		Content:    m.Content,
		OrderIndex: m.OrderIndex,
	}
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:          q.ID,
		Title:       q.Title,
		Description: util.StringToNullString(q.Description),
		Slug:        q.Slug,
		CreatedAt:   q.CreatedAt,
	}
}

func toModelPage(p *domain.Page) *models.Page {
	return &models.Page{
		ID:         p.ID,
		QuizID:     p.QuizID,
		PageType:   string(p.Type),
		Title:      util.StringToNullString(p.Title),
		OrderIndex: p.OrderIndex,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:          q.ID,
		PageID:      util.StringToNullString(q.PageID),
		QuizID:      util.StringToNullString(q.QuizID),
		Title:       q.Title,
		Explanation: util.StringToNullString(q.Explanation),
		OrderIndex:  q.OrderIndex,
	}
}

func toModelOption(o *domain.Option, persistGap bool) *models.Option {
	return &models.Option{
		ID:         o.ID,
		QuestionID: o.QuestionID,
		Text:       o.Text,
		IsCorrect:  o.IsCorrect,
		GapIndex:   util.IntToNullInt64(o.GapIndex, persistGap),
		OrderIndex: o.OrderIndex,
	}
}

func toModelTheoryBlock(b *domain.TheoryBlock) *models.TheoryBlock {
	return &models.TheoryBlock{
		ID:         b.ID,
		QuizID:     b.QuizID,
		BlockType:  string(b.Type),
		Content:    b.Content,
		OrderIndex: b.OrderIndex,
	}
}
