package service

import (
	"context"
	"testing"

	"quizbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringService_CheckPage(t *testing.T) {
	repo := newMemRepository()
	seedQuiz(t, repo)
	reader := NewQuizReaderService(repo, nil, 0)
	scoring := NewScoringService(reader)
	ctx := context.Background()

	quiz, err := reader.GetQuizBySlug(ctx, "go-basics")
	require.NoError(t, err)

	t.Run("single choice page", func(t *testing.T) {
		page := quiz.Pages[0]
		answers := map[string]*domain.Answer{
			page.Questions[0].ID: {OptionID: page.Questions[0].Options[0].ID},
			page.Questions[1].ID: {OptionID: page.Questions[1].Options[1].ID},
		}
		score, err := scoring.CheckPage(ctx, "go-basics", page.ID, answers)
		require.NoError(t, err)
		assert.Equal(t, 1, score.Correct)
		assert.Equal(t, 3, score.Total)
	})

	t.Run("input page normalizes", func(t *testing.T) {
		page := quiz.Pages[1]
		for _, text := range []string{"PARIS", "paris", "  Paris  "} {
			answers := map[string]*domain.Answer{page.Questions[0].ID: {Text: text}}
			score, err := scoring.CheckPage(ctx, "go-basics", page.ID, answers)
			require.NoError(t, err)
			assert.Equal(t, 1, score.Correct, text)
		}
		score, err := scoring.CheckPage(ctx, "go-basics", page.ID, map[string]*domain.Answer{page.Questions[0].ID: {Text: ""}})
		require.NoError(t, err)
		assert.Equal(t, 0, score.Correct)
	})

	t.Run("unknown quiz and page", func(t *testing.T) {
		_, err := scoring.CheckPage(ctx, "missing", "p", nil)
		assert.True(t, domain.HasCode(err, domain.CodeQuizNotFound))

		_, err = scoring.CheckPage(ctx, "go-basics", "01J0NOPAGE", nil)
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})
}

func TestScoringService_LegacyQuestions(t *testing.T) {
	repo := newMemRepository()
	repo.quizzes["q1"] = domain.Quiz{ID: "q1", Title: "Old", Slug: "old"}
	repo.questions["lq1"] = domain.Question{ID: "lq1", QuizID: "q1", Title: "Legacy?"}
	repo.options["o1"] = domain.Option{ID: "o1", QuestionID: "lq1", Text: "yes", IsCorrect: true}
	repo.options["o2"] = domain.Option{ID: "o2", QuestionID: "lq1", Text: "no"}

	scoring := NewScoringService(NewQuizReaderService(repo, nil, 0))
	score, err := scoring.CheckPage(context.Background(), "old", "q1", map[string]*domain.Answer{"lq1": {OptionID: "o1"}})
	require.NoError(t, err)
	assert.Equal(t, 1, score.Correct)
	assert.Equal(t, 1, score.Total)
}
