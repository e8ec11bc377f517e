package models

import (
	"database/sql"
	"time"
)

// Quiz maps a row of the quizzes table.
type Quiz struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Slug        string         `db:"slug"`
	CreatedAt   time.Time      `db:"created_at"`
}

// Page maps a row of the quiz_pages table.
type Page struct {
	ID         string         `db:"id"`
	QuizID     string         `db:"quiz_id"`
	PageType   string         `db:"page_type"`
	Title      sql.NullString `db:"title"`
	OrderIndex int            `db:"order_index"`
}

// Question maps a row of the quiz_questions table. Paged questions have
// PageID set; legacy flat questions have QuizID set and no page.
type Question struct {
	ID          string         `db:"id"`
	PageID      sql.NullString `db:"page_id"`
	QuizID      sql.NullString `db:"quiz_id"`
	Title       string         `db:"title"`
	Explanation sql.NullString `db:"explanation"`
	OrderIndex  int            `db:"order_index"`
}

// Option maps a row of the question_options table.
type Option struct {
	ID         string        `db:"id"`
	QuestionID string        `db:"question_id"`
	Text       string        `db:"option_text"`
	IsCorrect  bool          `db:"is_correct"`
	GapIndex   sql.NullInt64 `db:"gap_index"`
	OrderIndex int           `db:"order_index"`
}

// TheoryBlock maps a row of the theory_blocks table.
type TheoryBlock struct {
	ID         string `db:"id"`
	QuizID     string `db:"quiz_id"`
	BlockType  string `db:"block_type"`
	Content    string `db:"content"`
	OrderIndex int    `db:"order_index"`
}
