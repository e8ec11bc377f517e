package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizbook/internal/domain"
	"quizbook/internal/repository/models"
	"quizbook/internal/util"

	"github.com/jmoiron/sqlx"
)

// inChunkSize bounds the number of bind variables in one IN list. Oracle
// rejects lists longer than 1000 entries.
const inChunkSize = 500

const slugSavepoint = "quiz_slug"

const quizColumns = `id "id", title "title", description "description", slug "slug", created_at "created_at"`

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx. Queries are
// written with ? placeholders and rebound for the connected driver.
type QuizDatabaseAdapter struct {
	db DBTX
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// ListQuizzes returns quiz roots, newest first, without children.
func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)
	query := `SELECT ` + quizColumns + ` FROM quizzes ORDER BY created_at DESC, id DESC`

	var rows []models.Quiz
	if err := exec.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	out := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuiz(&rows[i]))
	}
	return out, nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	return a.getQuiz(ctx, "id", id)
}

// GetQuizBySlug implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizBySlug(ctx context.Context, slug string) (*domain.Quiz, error) {
	return a.getQuiz(ctx, "slug", slug)
}

func (a *QuizDatabaseAdapter) getQuiz(ctx context.Context, column, value string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`SELECT ` + quizColumns + ` FROM quizzes WHERE ` + column + ` = ?`)

	var row models.Quiz
	if err := exec.GetContext(ctx, &row, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by %s %s: %w", column, value, err)
	}
	return toDomainQuiz(&row), nil
}

// GetPagesByQuizIDs implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetPagesByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.Page, error) {
	query := `SELECT id "id", quiz_id "quiz_id", page_type "page_type", title "title", order_index "order_index"
	FROM quiz_pages
	WHERE quiz_id IN (?)
	ORDER BY order_index, id`

	rows, err := selectIn[models.Page](ctx, GetExecutor(ctx, a.db), query, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	out := make([]*domain.Page, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainPage(&rows[i]))
	}
	return out, nil
}

// GetQuestionsByPageIDs implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuestionsByPageIDs(ctx context.Context, pageIDs []string) ([]*domain.Question, error) {
	query := `SELECT id "id", page_id "page_id", quiz_id "quiz_id", title "title", explanation "explanation", order_index "order_index"
	FROM quiz_questions
	WHERE page_id IN (?)
	ORDER BY order_index, id`

	return a.selectQuestions(ctx, query, pageIDs)
}

// GetLegacyQuestionsByQuizIDs returns questions attached directly to a quiz.
func (a *QuizDatabaseAdapter) GetLegacyQuestionsByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.Question, error) {
	query := `SELECT id "id", page_id "page_id", quiz_id "quiz_id", title "title", explanation "explanation", order_index "order_index"
	FROM quiz_questions
	WHERE page_id IS NULL AND quiz_id IN (?)
	ORDER BY order_index, id`

	return a.selectQuestions(ctx, query, quizIDs)
}

func (a *QuizDatabaseAdapter) selectQuestions(ctx context.Context, query string, ids []string) ([]*domain.Question, error) {
	rows, err := selectIn[models.Question](ctx, GetExecutor(ctx, a.db), query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	out := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainQuestion(&rows[i]))
	}
	return out, nil
}

// GetOptionsByQuestionIDs returns options in their stored order.
func (a *QuizDatabaseAdapter) GetOptionsByQuestionIDs(ctx context.Context, questionIDs []string) ([]*domain.Option, error) {
	query := `SELECT id "id", question_id "question_id", option_text "option_text", is_correct "is_correct", gap_index "gap_index", order_index "order_index"
	FROM question_options
	WHERE question_id IN (?)
	ORDER BY order_index, id`

	rows, err := selectIn[models.Option](ctx, GetExecutor(ctx, a.db), query, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}
	out := make([]*domain.Option, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainOption(&rows[i]))
	}
	return out, nil
}

// GetTheoryBlocksByQuizIDs implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetTheoryBlocksByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.TheoryBlock, error) {
	query := `SELECT id "id", quiz_id "quiz_id", block_type "block_type", content "content", order_index "order_index"
	FROM theory_blocks
	WHERE quiz_id IN (?)
	ORDER BY order_index, id`

	rows, err := selectIn[models.TheoryBlock](ctx, GetExecutor(ctx, a.db), query, quizIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get theory blocks: %w", err)
	}
	out := make([]*domain.TheoryBlock, 0, len(rows))
	for i := range rows {
		out = append(out, toDomainTheoryBlock(&rows[i]))
	}
	return out, nil
}

// ReferencedImageURLs implements domain.QuizRepository. Oracle cannot compare
// CLOB columns with =, so image contents are matched here.
func (a *QuizDatabaseAdapter) ReferencedImageURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(urls) == 0 {
		return found, nil
	}
	exec := GetExecutor(ctx, a.db)
	var contents []string
	query := exec.Rebind(`SELECT content FROM theory_blocks WHERE block_type = ?`)
	if err := exec.SelectContext(ctx, &contents, query, string(domain.TheoryTypeImage)); err != nil {
		return nil, fmt.Errorf("failed to get image references: %w", err)
	}
	want := make(map[string]bool, len(urls))
	for _, u := range urls {
		want[u] = true
	}
	for _, c := range contents {
		if want[c] {
			found[c] = true
		}
	}
	return found, nil
}

// CreateQuiz inserts the quiz root. A slug collision returns an error wrapping
// domain.ErrSlugConflict; inside a transaction the insert runs under a
// savepoint so the transaction stays usable for a retry.
func (a *QuizDatabaseAdapter) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot create nil quiz")
	}
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	m := toModelQuiz(quiz)

	exec := GetExecutor(ctx, a.db)
	_, inTx := exec.(*sqlx.Tx)
	if inTx {
		if _, err := exec.ExecContext(ctx, "SAVEPOINT "+slugSavepoint); err != nil {
			return fmt.Errorf("failed to set savepoint: %w", err)
		}
	}

	query := exec.Rebind(`INSERT INTO quizzes (id, title, description, slug, created_at) VALUES (?, ?, ?, ?, ?)`)
	_, err := exec.ExecContext(ctx, query, m.ID, m.Title, m.Description, m.Slug, m.CreatedAt)
	if err != nil {
		if inTx {
			if _, rbErr := exec.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+slugSavepoint); rbErr != nil {
				return fmt.Errorf("failed to roll back to savepoint: %v (original error: %w)", rbErr, err)
			}
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q: %w", quiz.Slug, domain.ErrSlugConflict)
		}
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// UpdateQuiz updates title, description and slug.
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	m := toModelQuiz(quiz)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`UPDATE quizzes SET title = ?, description = ?, slug = ? WHERE id = ?`)

	res, err := exec.ExecContext(ctx, query, m.Title, m.Description, m.Slug, m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q: %w", quiz.Slug, domain.ErrSlugConflict)
		}
		return fmt.Errorf("failed to update quiz %s: %w", m.ID, err)
	}
	return expectAffected(res, "quiz", m.ID)
}

// DeleteQuiz removes the quiz root. Children go with it through ON DELETE
// CASCADE.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	return a.deleteByID(ctx, "quizzes", id)
}

// CreatePage implements domain.QuizRepository
func (a *QuizDatabaseAdapter) CreatePage(ctx context.Context, page *domain.Page) error {
	if page.ID == "" {
		page.ID = util.NewULID()
	}
	m := toModelPage(page)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO quiz_pages (id, quiz_id, page_type, title, order_index) VALUES (?, ?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query, m.ID, m.QuizID, m.PageType, m.Title, m.OrderIndex); err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	return nil
}

// UpdatePage implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdatePage(ctx context.Context, page *domain.Page) error {
	m := toModelPage(page)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`UPDATE quiz_pages SET page_type = ?, title = ?, order_index = ? WHERE id = ?`)

	res, err := exec.ExecContext(ctx, query, m.PageType, m.Title, m.OrderIndex, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update page %s: %w", m.ID, err)
	}
	return expectAffected(res, "page", m.ID)
}

// DeletePage implements domain.QuizRepository
func (a *QuizDatabaseAdapter) DeletePage(ctx context.Context, id string) error {
	return a.deleteByID(ctx, "quiz_pages", id)
}

// CreateQuestion implements domain.QuizRepository
func (a *QuizDatabaseAdapter) CreateQuestion(ctx context.Context, question *domain.Question) error {
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	m := toModelQuestion(question)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO quiz_questions (id, page_id, quiz_id, title, explanation, order_index) VALUES (?, ?, ?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query, m.ID, m.PageID, m.QuizID, m.Title, m.Explanation, m.OrderIndex); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

// UpdateQuestion implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	m := toModelQuestion(question)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`UPDATE quiz_questions SET title = ?, explanation = ?, order_index = ? WHERE id = ?`)

	res, err := exec.ExecContext(ctx, query, m.Title, m.Explanation, m.OrderIndex, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update question %s: %w", m.ID, err)
	}
	return expectAffected(res, "question", m.ID)
}

// DeleteQuestion implements domain.QuizRepository
func (a *QuizDatabaseAdapter) DeleteQuestion(ctx context.Context, id string) error {
	return a.deleteByID(ctx, "quiz_questions", id)
}

// CreateOption implements domain.QuizRepository
func (a *QuizDatabaseAdapter) CreateOption(ctx context.Context, option *domain.Option, persistGap bool) error {
	if option.ID == "" {
		option.ID = util.NewULID()
	}
	m := toModelOption(option, persistGap)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO question_options (id, question_id, option_text, is_correct, gap_index, order_index) VALUES (?, ?, ?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query, m.ID, m.QuestionID, m.Text, m.IsCorrect, m.GapIndex, m.OrderIndex); err != nil {
		return fmt.Errorf("failed to create option: %w", err)
	}
	return nil
}

// UpdateOption implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateOption(ctx context.Context, option *domain.Option, persistGap bool) error {
	m := toModelOption(option, persistGap)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`UPDATE question_options SET option_text = ?, is_correct = ?, gap_index = ?, order_index = ? WHERE id = ?`)

	res, err := exec.ExecContext(ctx, query, m.Text, m.IsCorrect, m.GapIndex, m.OrderIndex, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update option %s: %w", m.ID, err)
	}
	return expectAffected(res, "option", m.ID)
}

// DeleteOption implements domain.QuizRepository
func (a *QuizDatabaseAdapter) DeleteOption(ctx context.Context, id string) error {
	return a.deleteByID(ctx, "question_options", id)
}

// CreateTheoryBlock implements domain.QuizRepository
func (a *QuizDatabaseAdapter) CreateTheoryBlock(ctx context.Context, block *domain.TheoryBlock) error {
	if block.ID == "" {
		block.ID = util.NewULID()
	}
	m := toModelTheoryBlock(block)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO theory_blocks (id, quiz_id, block_type, content, order_index) VALUES (?, ?, ?, ?, ?)`)

	if _, err := exec.ExecContext(ctx, query, m.ID, m.QuizID, m.BlockType, m.Content, m.OrderIndex); err != nil {
		return fmt.Errorf("failed to create theory block: %w", err)
	}
	return nil
}

// UpdateTheoryBlock implements domain.QuizRepository
func (a *QuizDatabaseAdapter) UpdateTheoryBlock(ctx context.Context, block *domain.TheoryBlock) error {
	m := toModelTheoryBlock(block)
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`UPDATE theory_blocks SET block_type = ?, content = ?, order_index = ? WHERE id = ?`)

	res, err := exec.ExecContext(ctx, query, m.BlockType, m.Content, m.OrderIndex, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update theory block %s: %w", m.ID, err)
	}
	return expectAffected(res, "theory block", m.ID)
}

// DeleteTheoryBlock implements domain.QuizRepository
func (a *QuizDatabaseAdapter) DeleteTheoryBlock(ctx context.Context, id string) error {
	return a.deleteByID(ctx, "theory_blocks", id)
}

func (a *QuizDatabaseAdapter) deleteByID(ctx context.Context, table, id string) error {
	exec := GetExecutor(ctx, a.db)
	query := exec.Rebind(`DELETE FROM ` + table + ` WHERE id = ?`)
	if _, err := exec.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete from %s id %s: %w", table, id, err)
	}
	return nil
}

// selectIn runs query, which must contain one IN (?) clause, for ids in
// chunks and concatenates the results. Chunk results are ordered
// independently.
func selectIn[T any](ctx context.Context, exec DBTX, query string, ids []string) ([]T, error) {
	var out []T
	for start := 0; start < len(ids); start += inChunkSize {
		end := min(start+inChunkSize, len(ids))

		q, args, err := sqlx.In(query, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("failed to expand IN clause: %w", err)
		}
		var chunk []T
		if err := exec.SelectContext(ctx, &chunk, exec.Rebind(q), args...); err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

func expectAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected for %s %s: %w", what, id, err)
	}
	if n == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("%s %s not found", what, id))
	}
	return nil
}
