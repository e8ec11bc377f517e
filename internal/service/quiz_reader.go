package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quizbook/internal/cache"
	"quizbook/internal/domain"
	"quizbook/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizReaderService defines the read side of quizzes. Absent quizzes are
// returned as (nil, nil).
type QuizReaderService interface {
	ListQuizzes(ctx context.Context) ([]*domain.Quiz, error)
	GetQuizBySlug(ctx context.Context, slug string) (*domain.Quiz, error)
	GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error)
}

// sharedLoadTimeout bounds a store load shared by concurrent callers.
const sharedLoadTimeout = 15 * time.Second

type quizReaderService struct {
	repo  domain.QuizRepository
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewQuizReaderService creates a new instance of quizReaderService. A nil
// cache disables caching.
func NewQuizReaderService(repo domain.QuizRepository, cache domain.Cache, ttl time.Duration) QuizReaderService {
	return &quizReaderService{repo: repo, cache: cache, ttl: ttl}
}

// ListQuizzes returns quiz roots without children, newest first.
func (s *quizReaderService) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	key := cache.QuizListKey()
	var quizzes []*domain.Quiz
	if s.fromCache(ctx, key, &quizzes) {
		return quizzes, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		ctx, cancel := sharedLoadContext(ctx)
		defer cancel()
		quizzes, err := s.repo.ListQuizzes(ctx)
		if err != nil {
			return nil, domain.NewStoreError("Failed to list quizzes", err)
		}
		s.toCache(ctx, key, quizzes)
		return quizzes, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Quiz), nil
}

// GetQuizBySlug returns the full tree of the quiz with slug. Trees are cached
// per slug and concurrent misses share one load.
func (s *quizReaderService) GetQuizBySlug(ctx context.Context, slug string) (*domain.Quiz, error) {
	key := cache.QuizTreeKey(slug)
	var cached domain.Quiz
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		ctx, cancel := sharedLoadContext(ctx)
		defer cancel()
		quiz, err := s.repo.GetQuizBySlug(ctx, slug)
		if err != nil {
			return nil, domain.NewStoreError("Failed to load quiz", err)
		}
		if quiz == nil {
			return nil, nil
		}
		if err := loadTrees(ctx, s.repo, []*domain.Quiz{quiz}); err != nil {
			return nil, domain.NewStoreError("Failed to load quiz", err)
		}
		s.toCache(ctx, key, quiz)
		return quiz, nil
	})
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*domain.Quiz), nil
}

// sharedLoadContext detaches a coalesced load from the caller that started it,
// so one disconnecting client does not fail every waiter.
func sharedLoadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
}

// GetQuizByID returns the full tree straight from the store.
func (s *quizReaderService) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := loadTreeByID(ctx, s.repo, id)
	if err != nil {
		return nil, domain.NewStoreError("Failed to load quiz", err)
	}
	return quiz, nil
}

func (s *quizReaderService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Quiz cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Get().Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *quizReaderService) toCache(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Get().Error("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.String("key", key), zap.Error(err))
	}
}
