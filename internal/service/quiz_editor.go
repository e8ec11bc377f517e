package service

import (
	"context"
	"errors"

	"quizbook/internal/cache"
	"quizbook/internal/domain"
	"quizbook/internal/logger"
	"quizbook/internal/util"

	"go.uber.org/zap"
)

// maxSlugAttempts bounds the suffix search on slug conflicts.
const maxSlugAttempts = 100

// QuizEditorService defines the administrator operations on quiz trees.
// Every call requires an administrator identity in ctx.
type QuizEditorService interface {
	CreateQuiz(ctx context.Context, quiz *domain.Quiz) (*SaveResult, error)
	UpdateQuiz(ctx context.Context, id string, quiz *domain.Quiz) (*SaveResult, error)
	DeleteQuiz(ctx context.Context, id string) (*SaveResult, error)
}

type quizEditorService struct {
	repo   domain.QuizRepository
	tx     domain.TransactionManager
	policy AdminPolicy
	blobs  domain.BlobStore
	cache  domain.Cache
}

// NewQuizEditorService creates a new instance of quizEditorService. blobs and
// cache may be nil.
func NewQuizEditorService(
	repo domain.QuizRepository,
	tx domain.TransactionManager,
	policy AdminPolicy,
	blobs domain.BlobStore,
	cache domain.Cache,
) QuizEditorService {
	return &quizEditorService{repo: repo, tx: tx, policy: policy, blobs: blobs, cache: cache}
}

// CreateQuiz inserts a new quiz tree. A taken slug is resolved by appending
// -2, -3, ... until an insert succeeds.
func (s *quizEditorService) CreateQuiz(ctx context.Context, quiz *domain.Quiz) (*SaveResult, error) {
	who, err := authorizeAdmin(ctx, s.policy)
	if err != nil {
		return nil, err
	}
	if err := validateTree(quiz); err != nil {
		return nil, err
	}

	base := quiz.Slug
	if base == "" {
		base = quiz.Title
	}
	base = util.Slugify(base)

	result := &SaveResult{}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		quiz.ID = ""
		if err := s.insertWithFreeSlug(ctx, quiz, base); err != nil {
			return err
		}
		result.Quiz.Inserted = 1
		return newTreeReconciler(s.repo, nil, result).reconcileQuiz(ctx, quiz, nil)
	})
	if err != nil {
		return nil, storeError("Failed to create quiz", err)
	}

	result.QuizID = quiz.ID
	result.Slug = quiz.Slug
	s.invalidate(ctx, quiz.Slug)

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("slug", quiz.Slug),
		zap.String("by", who.Email))
	return result, nil
}

func (s *quizEditorService) insertWithFreeSlug(ctx context.Context, quiz *domain.Quiz, base string) error {
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		quiz.Slug = base
		if attempt > 1 {
			quiz.Slug = util.SuffixSlug(base, attempt)
		}
		err := s.repo.CreateQuiz(ctx, quiz)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrSlugConflict) {
			return err
		}
		logger.Get().Debug("Slug taken, retrying with suffix", zap.String("slug", quiz.Slug))
	}
	return domain.NewSlugTakenError(base)
}

// UpdateQuiz replaces the stored tree of quiz id with quiz. An empty slug
// keeps the current one; a slug used by another quiz is SLUG_TAKEN.
func (s *quizEditorService) UpdateQuiz(ctx context.Context, id string, quiz *domain.Quiz) (*SaveResult, error) {
	who, err := authorizeAdmin(ctx, s.policy)
	if err != nil {
		return nil, err
	}
	if err := validateTree(quiz); err != nil {
		return nil, err
	}

	result := &SaveResult{}
	var existing *domain.Quiz
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var loadErr error
		existing, loadErr = loadTreeByID(ctx, s.repo, id)
		if loadErr != nil {
			return loadErr
		}
		if existing == nil {
			return domain.NewQuizNotFoundError(id)
		}

		quiz.ID = existing.ID
		quiz.CreatedAt = existing.CreatedAt
		if quiz.Slug == "" {
			quiz.Slug = existing.Slug
		} else {
			quiz.Slug = util.Slugify(quiz.Slug)
		}
		if err := s.repo.UpdateQuiz(ctx, quiz); err != nil {
			if errors.Is(err, domain.ErrSlugConflict) {
				return domain.NewSlugTakenError(quiz.Slug)
			}
			return err
		}
		result.Quiz.Updated = 1
		return newTreeReconciler(s.repo, existing, result).reconcileQuiz(ctx, quiz, existing)
	})
	if err != nil {
		return nil, storeError("Failed to update quiz", err)
	}

	result.QuizID = quiz.ID
	result.Slug = quiz.Slug
	s.removeAssets(ctx, removedImageURLs(existing, quiz), result)
	s.invalidate(ctx, existing.Slug, quiz.Slug)

	logger.Get().Info("Quiz updated",
		zap.String("quizID", quiz.ID),
		zap.String("slug", quiz.Slug),
		zap.String("by", who.Email),
		zap.Any("pages", result.Pages),
		zap.Any("questions", result.Questions),
		zap.Any("options", result.Options))
	return result, nil
}

// DeleteQuiz removes the quiz and, through cascading deletes, its tree.
// Counts report the rows removed transitively.
func (s *quizEditorService) DeleteQuiz(ctx context.Context, id string) (*SaveResult, error) {
	who, err := authorizeAdmin(ctx, s.policy)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{}
	var existing *domain.Quiz
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var loadErr error
		existing, loadErr = loadTreeByID(ctx, s.repo, id)
		if loadErr != nil {
			return loadErr
		}
		if existing == nil {
			return domain.NewQuizNotFoundError(id)
		}
		return s.repo.DeleteQuiz(ctx, id)
	})
	if err != nil {
		return nil, storeError("Failed to delete quiz", err)
	}

	result.QuizID = existing.ID
	result.Slug = existing.Slug
	result.Quiz.Deleted = 1
	result.Pages.Deleted = len(existing.Pages)
	result.TheoryBlocks.Deleted = len(existing.TheoryBlocks)
	for _, p := range existing.Pages {
		result.Questions.Deleted += len(p.Questions)
		for _, q := range p.Questions {
			result.Options.Deleted += len(q.Options)
		}
	}
	s.removeAssets(ctx, removedImageURLs(existing, nil), result)
	s.invalidate(ctx, existing.Slug)

	logger.Get().Info("Quiz deleted", zap.String("quizID", id), zap.String("by", who.Email))
	return result, nil
}

// removeAssets deletes blobs of dropped image blocks that no other block
// still shows. Failures are collected in result and never fail the save.
func (s *quizEditorService) removeAssets(ctx context.Context, urls []string, result *SaveResult) {
	if s.blobs == nil || len(urls) == 0 {
		return
	}
	appLogger := logger.Get()
	inUse, err := s.repo.ReferencedImageURLs(ctx, urls)
	if err != nil {
		appLogger.Warn("Skipping image cleanup, reference check failed", zap.Error(err))
		for _, url := range urls {
			result.AssetErrors = append(result.AssetErrors, AssetError{Path: url, Error: err.Error()})
		}
		return
	}
	for _, url := range urls {
		if inUse[url] {
			appLogger.Debug("Image still referenced, keeping asset", zap.String("url", url))
			continue
		}
		path, ok := s.blobs.PathFromURL(url)
		if !ok {
			appLogger.Debug("Image URL is not managed by the blob store", zap.String("url", url))
			continue
		}
		if err := s.blobs.Delete(ctx, path); err != nil {
			appLogger.Warn("Failed to delete image asset", zap.String("path", path), zap.Error(err))
			result.AssetErrors = append(result.AssetErrors, AssetError{Path: path, Error: err.Error()})
			continue
		}
		result.RemovedAssets = append(result.RemovedAssets, path)
	}
}

func (s *quizEditorService) invalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	keys := []string{cache.QuizListKey()}
	for _, slug := range slugs {
		keys = append(keys, cache.QuizTreeKey(slug))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Get().Warn("Failed to invalidate quiz cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func validateTree(quiz *domain.Quiz) error {
	if quiz == nil {
		return domain.NewInvalidInputError("Quiz is required")
	}
	if err := quiz.Validate(); err != nil {
		return domain.NewError(domain.CodeValidation, "Quiz validation failed", err)
	}
	return nil
}

// storeError keeps domain errors and wraps anything else as a store failure.
func storeError(message string, err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domain.NewStoreError(message, err)
}
