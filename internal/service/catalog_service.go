package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

// PublicQuizzesCacheKey - ключ кеша списка опубликованных викторин
const PublicQuizzesCacheKey = "quizzes:public"

// CatalogService - чтение опубликованных викторин для участников
type CatalogService struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository // может быть nil, если Redis отключен
	cacheTTL  time.Duration
	log       *logger.Logger
}

// NewCatalogService создает CatalogService. cacheRepo может быть nil.
func NewCatalogService(quizRepo repository.QuizRepository, cacheRepo repository.CacheRepository, cacheTTL time.Duration, log *logger.Logger) *CatalogService {
	return &CatalogService{
		quizRepo:  quizRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		log:       log.With("service", "CatalogService"),
	}
}

// ListPublishedQuizzes возвращает опубликованные викторины с числом вопросов, без содержимого
func (s *CatalogService) ListPublishedQuizzes(ctx context.Context) ([]entity.Quiz, error) {
	if s.cacheRepo != nil {
		var cached []entity.Quiz
		err := s.cacheRepo.GetJSON(ctx, PublicQuizzesCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.log.Warn("cache read failed", "key", PublicQuizzesCacheKey, "error", err)
		}
	}

	quizzes, err := s.quizRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published quizzes: %w", err)
	}

	if s.cacheRepo != nil && s.cacheTTL > 0 {
		if err := s.cacheRepo.SetJSON(ctx, PublicQuizzesCacheKey, quizzes, s.cacheTTL); err != nil {
			s.log.Warn("cache write failed", "key", PublicQuizzesCacheKey, "error", err)
		}
	}
	return quizzes, nil
}

// GetPublishedQuiz возвращает викторину с вопросами и вариантами.
// Неопубликованная викторина недоступна: apperrors.ErrNotPublished.
func (s *CatalogService) GetPublishedQuiz(ctx context.Context, quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(ctx, quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", quizID, apperrors.ErrNotFound)
		}
		return nil, err
	}
	if !quiz.Published {
		return nil, fmt.Errorf("quiz %d: %w", quizID, apperrors.ErrNotPublished)
	}
	return quiz, nil
}

// InvalidatePublished сбрасывает кеш списка после публикации или снятия с публикации
func (s *CatalogService) InvalidatePublished(ctx context.Context) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(ctx, PublicQuizzesCacheKey); err != nil {
		s.log.Warn("cache invalidation failed", "key", PublicQuizzesCacheKey, "error", err)
	}
}
