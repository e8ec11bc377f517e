package domain

import (
	"context"
	"io"
)

// QuizRepository defines the interface for quiz persistence. Readers return
// (nil, nil) when a row does not exist. Batched readers take parent ids and
// return children for all of them in one round trip.
type QuizRepository interface {
	ListQuizzes(ctx context.Context) ([]*Quiz, error)
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	GetQuizBySlug(ctx context.Context, slug string) (*Quiz, error)

	GetPagesByQuizIDs(ctx context.Context, quizIDs []string) ([]*Page, error)
	GetQuestionsByPageIDs(ctx context.Context, pageIDs []string) ([]*Question, error)
	GetLegacyQuestionsByQuizIDs(ctx context.Context, quizIDs []string) ([]*Question, error)
	GetOptionsByQuestionIDs(ctx context.Context, questionIDs []string) ([]*Option, error)
	GetTheoryBlocksByQuizIDs(ctx context.Context, quizIDs []string) ([]*TheoryBlock, error)
	// ReferencedImageURLs reports which of urls are still the content of an
	// image block in any quiz.
	ReferencedImageURLs(ctx context.Context, urls []string) (map[string]bool, error)

	// CreateQuiz returns an error wrapping ErrSlugConflict when the slug is
	// taken; inside a transaction the transaction stays usable.
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	UpdateQuiz(ctx context.Context, quiz *Quiz) error
	DeleteQuiz(ctx context.Context, id string) error

	CreatePage(ctx context.Context, page *Page) error
	UpdatePage(ctx context.Context, page *Page) error
	DeletePage(ctx context.Context, id string) error

	CreateQuestion(ctx context.Context, question *Question) error
	UpdateQuestion(ctx context.Context, question *Question) error
	DeleteQuestion(ctx context.Context, id string) error

	// persistGap controls whether GapIndex is written or stored as NULL.
	CreateOption(ctx context.Context, option *Option, persistGap bool) error
	UpdateOption(ctx context.Context, option *Option, persistGap bool) error
	DeleteOption(ctx context.Context, id string) error

	CreateTheoryBlock(ctx context.Context, block *TheoryBlock) error
	UpdateTheoryBlock(ctx context.Context, block *TheoryBlock) error
	DeleteTheoryBlock(ctx context.Context, id string) error
}

// TransactionManager runs fn inside one store transaction. Repository calls
// made with the ctx passed to fn join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BlobStore stores theory images addressed by path.
type BlobStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)
	PublicURL(path string) string
	// PathFromURL resolves a public URL issued by this store back to its
	// storage path. ok is false for foreign URLs.
	PathFromURL(url string) (path string, ok bool)
	Delete(ctx context.Context, path string) error
}
