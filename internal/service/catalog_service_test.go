package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

func TestCatalogService_ListPublished_CacheHit(t *testing.T) {
	// Arrange
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	cached := []entity.Quiz{{ID: 1, Title: "Cached", Published: true, QuestionCount: 3}}
	cacheRepo.On("GetJSON", mock.Anything, PublicQuizzesCacheKey, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*[]entity.Quiz)
			*dest = cached
		}).
		Return(nil)
	svc := NewCatalogService(quizRepo, cacheRepo, time.Minute, logger.Nop())

	// Act
	quizzes, err := svc.ListPublishedQuizzes(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, cached, quizzes)
	quizRepo.AssertNotCalled(t, "ListPublished", mock.Anything)
}

func TestCatalogService_ListPublished_CacheMissFillsCache(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	fromDB := []entity.Quiz{{ID: 2, Title: "JS Basics", Published: true}}
	cacheRepo.On("GetJSON", mock.Anything, PublicQuizzesCacheKey, mock.Anything).Return(apperrors.ErrNotFound)
	quizRepo.On("ListPublished", mock.Anything).Return(fromDB, nil)
	cacheRepo.On("SetJSON", mock.Anything, PublicQuizzesCacheKey, fromDB, time.Minute).Return(nil)
	svc := NewCatalogService(quizRepo, cacheRepo, time.Minute, logger.Nop())

	quizzes, err := svc.ListPublishedQuizzes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fromDB, quizzes)
	quizRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}

func TestCatalogService_ListPublished_CacheErrorsIgnored(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cacheRepo := new(MockCacheRepository)
	fromDB := []entity.Quiz{{ID: 2, Title: "JS Basics", Published: true}}
	cacheRepo.On("GetJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	cacheRepo.On("SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	quizRepo.On("ListPublished", mock.Anything).Return(fromDB, nil)
	svc := NewCatalogService(quizRepo, cacheRepo, time.Minute, logger.Nop())

	quizzes, err := svc.ListPublishedQuizzes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fromDB, quizzes)
}

func TestCatalogService_ListPublished_WithoutCache(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("ListPublished", mock.Anything).Return(nil, errors.New("db down"))
	svc := NewCatalogService(quizRepo, nil, 0, logger.Nop())

	_, err := svc.ListPublishedQuizzes(context.Background())

	assert.Error(t, err)
}

func TestCatalogService_GetPublishedQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	quizRepo.On("GetWithQuestions", mock.Anything, uint(1)).Return(&entity.Quiz{ID: 1, Published: true}, nil)
	quizRepo.On("GetWithQuestions", mock.Anything, uint(2)).Return(&entity.Quiz{ID: 2, Published: false}, nil)
	quizRepo.On("GetWithQuestions", mock.Anything, uint(3)).Return(nil, apperrors.ErrNotFound)
	svc := NewCatalogService(quizRepo, nil, 0, logger.Nop())
	ctx := context.Background()

	quiz, err := svc.GetPublishedQuiz(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), quiz.ID)

	_, err = svc.GetPublishedQuiz(ctx, 2)
	assert.ErrorIs(t, err, apperrors.ErrNotPublished)

	_, err = svc.GetPublishedQuiz(ctx, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCatalogService_InvalidatePublished(t *testing.T) {
	cacheRepo := new(MockCacheRepository)
	cacheRepo.On("Delete", mock.Anything, []string{PublicQuizzesCacheKey}).Return(nil).Once()
	svc := NewCatalogService(new(MockQuizRepository), cacheRepo, time.Minute, logger.Nop())

	svc.InvalidatePublished(context.Background())

	cacheRepo.AssertExpectations(t)

	// без кеша вызов ничего не делает
	NewCatalogService(new(MockQuizRepository), nil, 0, logger.Nop()).InvalidatePublished(context.Background())
}
