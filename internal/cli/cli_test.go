package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizbook/internal/bootstrap"
	"quizbook/internal/config"
	"quizbook/internal/domain"
	"quizbook/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const quizYAML = `title: Go basics
slug: go-basics
pages:
  - type: single
    title: Warm-up
    questions:
      - title: Zero value of int?
        options:
          - text: "0"
            is_correct: true
          - text: nil
            is_correct: false
  - type: input
    questions:
      - title: A [[]] holds key/value pairs
        explanation: Maps are hash tables.
        options:
          - text: map
            is_correct: true
theory_blocks:
  - type: text
    content: Go is statically typed.
`

type mockReader struct{ mock.Mock }

func (m *mockReader) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	args := m.Called(ctx)
	quizzes, _ := args.Get(0).([]*domain.Quiz)
	return quizzes, args.Error(1)
}

func (m *mockReader) GetQuizBySlug(ctx context.Context, slug string) (*domain.Quiz, error) {
	args := m.Called(ctx, slug)
	quiz, _ := args.Get(0).(*domain.Quiz)
	return quiz, args.Error(1)
}

func (m *mockReader) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	quiz, _ := args.Get(0).(*domain.Quiz)
	return quiz, args.Error(1)
}

type mockEditor struct{ mock.Mock }

func (m *mockEditor) CreateQuiz(ctx context.Context, quiz *domain.Quiz) (*service.SaveResult, error) {
	args := m.Called(ctx, quiz)
	res, _ := args.Get(0).(*service.SaveResult)
	return res, args.Error(1)
}

func (m *mockEditor) UpdateQuiz(ctx context.Context, id string, quiz *domain.Quiz) (*service.SaveResult, error) {
	args := m.Called(ctx, id, quiz)
	res, _ := args.Get(0).(*service.SaveResult)
	return res, args.Error(1)
}

func (m *mockEditor) DeleteQuiz(ctx context.Context, id string) (*service.SaveResult, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*service.SaveResult)
	return res, args.Error(1)
}

func TestDecodeQuiz(t *testing.T) {
	quiz, err := decodeQuiz(strings.NewReader(quizYAML))
	require.NoError(t, err)

	assert.Equal(t, "go-basics", quiz.Slug)
	require.Len(t, quiz.Pages, 2)
	assert.Equal(t, domain.PageTypeInput, quiz.Pages[1].Type)
	assert.Equal(t, "map", quiz.Pages[1].Questions[0].Options[0].Text)
	assert.Equal(t, "Maps are hash tables.", quiz.Pages[1].Questions[0].Explanation)
	require.NoError(t, quiz.Validate())
}

func TestDecodeQuiz_RejectsUnknownFields(t *testing.T) {
	_, err := decodeQuiz(strings.NewReader("title: x\nquestionz: []\n"))
	assert.Error(t, err)
}

func TestEncodeQuiz_CanBeImportedAgain(t *testing.T) {
	quiz, err := decodeQuiz(strings.NewReader(quizYAML))
	require.NoError(t, err)
	quiz.ID = "01HZY8J8Q9X5F2R3T4V5W6X7Y8"
	quiz.Pages[0].ID = "01HZY8J8Q9X5F2R3T4V5W6X7Y9"

	var buf bytes.Buffer
	require.NoError(t, encodeQuiz(&buf, quiz))
	assert.NotContains(t, buf.String(), "order_index")

	again, err := decodeQuiz(&buf)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, again.ID)
	assert.Equal(t, quiz.Pages[0].ID, again.Pages[0].ID)
	assert.Equal(t, quiz.Pages[1].Questions[0].Title, again.Pages[1].Questions[0].Title)
}

func TestImportQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("id updates", func(t *testing.T) {
		reader, editor := new(mockReader), new(mockEditor)
		quiz := &domain.Quiz{ID: "Q1", Title: "T"}
		editor.On("UpdateQuiz", ctx, "Q1", quiz).Return(&service.SaveResult{QuizID: "Q1"}, nil)

		res, err := importQuiz(ctx, reader, editor, quiz)
		require.NoError(t, err)
		assert.Equal(t, "Q1", res.QuizID)
		reader.AssertNotCalled(t, "GetQuizBySlug", mock.Anything, mock.Anything)
		editor.AssertExpectations(t)
	})

	t.Run("existing slug updates", func(t *testing.T) {
		reader, editor := new(mockReader), new(mockEditor)
		quiz := &domain.Quiz{Title: "T", Slug: "go-basics"}
		reader.On("GetQuizBySlug", ctx, "go-basics").Return(&domain.Quiz{ID: "Q7", Slug: "go-basics"}, nil)
		editor.On("UpdateQuiz", ctx, "Q7", quiz).Return(&service.SaveResult{QuizID: "Q7"}, nil)

		_, err := importQuiz(ctx, reader, editor, quiz)
		require.NoError(t, err)
		editor.AssertExpectations(t)
	})

	t.Run("slug is normalized before lookup", func(t *testing.T) {
		reader, editor := new(mockReader), new(mockEditor)
		quiz := &domain.Quiz{Title: "T", Slug: "Go Basics"}
		reader.On("GetQuizBySlug", ctx, "go-basics").Return(&domain.Quiz{ID: "Q7", Slug: "go-basics"}, nil)
		editor.On("UpdateQuiz", ctx, "Q7", quiz).Return(&service.SaveResult{QuizID: "Q7"}, nil)

		res, err := importQuiz(ctx, reader, editor, quiz)
		require.NoError(t, err)
		assert.Equal(t, "Q7", res.QuizID)
		assert.Equal(t, "go-basics", quiz.Slug)
		editor.AssertNotCalled(t, "CreateQuiz", mock.Anything, mock.Anything)
		editor.AssertExpectations(t)
	})

	t.Run("new slug creates", func(t *testing.T) {
		reader, editor := new(mockReader), new(mockEditor)
		quiz := &domain.Quiz{Title: "T", Slug: "fresh"}
		reader.On("GetQuizBySlug", ctx, "fresh").Return(nil, nil)
		editor.On("CreateQuiz", ctx, quiz).Return(&service.SaveResult{QuizID: "Q9", Slug: "fresh"}, nil)

		res, err := importQuiz(ctx, reader, editor, quiz)
		require.NoError(t, err)
		assert.Equal(t, "fresh", res.Slug)
		editor.AssertExpectations(t)
	})
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte(quizYAML), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("title: x\npages:\n  - type: single\n    questions:\n      - title: q\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"validate", "-f", good})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "ok (2 pages, 1 theory blocks)")

	cmd = newRootCmd(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"validate", "-f", bad})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pages[0].questions[0].options")
}

func TestExportCommand(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ADMIN_CLI_EMAIL", "cli@example.com")

	reader := new(mockReader)
	quiz, err := decodeQuiz(strings.NewReader(quizYAML))
	require.NoError(t, err)
	reader.On("GetQuizBySlug", mock.MatchedBy(func(ctx context.Context) bool {
		id, ok := domain.IdentityFromContext(ctx)
		return ok && id.Email == "cli@example.com"
	}), "go-basics").Return(quiz, nil)

	open := func(ctx context.Context, cfg *config.Config) (*bootstrap.Container, error) {
		return &bootstrap.Container{Reader: reader}, nil
	}

	var out bytes.Buffer
	cmd := newRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"export", "go-basics"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "slug: go-basics")
	assert.Contains(t, out.String(), "type: input")
	assert.Contains(t, out.String(), "text: map")
	reader.AssertExpectations(t)
}

func TestLoadSeedDir(t *testing.T) {
	files, err := loadSeedDir("../../configs/seed_data")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "go-basics", files[0].quiz.Slug)
	assert.Equal(t, "concurrency-in-go", files[1].quiz.Slug)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(quizYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("title: \"\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	_, err = loadSeedDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.yml")

	_, err = loadSeedDir(t.TempDir())
	assert.Error(t, err)
}

func TestSeedQuizzes(t *testing.T) {
	ctx := context.Background()
	reader, editor := new(mockReader), new(mockEditor)
	first := &domain.Quiz{Title: "A", Slug: "a"}
	second := &domain.Quiz{Title: "B", Slug: "b"}

	reader.On("GetQuizBySlug", ctx, "a").Return(&domain.Quiz{ID: "QA", Slug: "a"}, nil)
	reader.On("GetQuizBySlug", ctx, "b").Return(nil, nil)
	editor.On("UpdateQuiz", ctx, "QA", first).Return(&service.SaveResult{QuizID: "QA", Slug: "a"}, nil)
	editor.On("CreateQuiz", ctx, second).Return(&service.SaveResult{QuizID: "QB", Slug: "b"}, nil)

	var out bytes.Buffer
	err := seedQuizzes(ctx, reader, editor, []seedFile{{name: "1.yaml", quiz: first}, {name: "2.yaml", quiz: second}}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "quiz a (QA)")
	assert.Contains(t, out.String(), "quiz b (QB)")
	assert.Contains(t, out.String(), "seeded 2 quizzes")
	editor.AssertExpectations(t)
}
