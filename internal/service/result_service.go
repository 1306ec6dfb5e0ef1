package service

import (
	"context"
	"fmt"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/service/scoring"
)

// QuizResults - отчет по викторине для ее автора
type QuizResults struct {
	Quiz       *entity.Quiz
	Statistics scoring.Stats
	Attempts   []entity.Attempt
}

// ResultService - отчеты по завершенным попыткам
type ResultService struct {
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
}

// NewResultService создает ResultService
func NewResultService(quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) *ResultService {
	return &ResultService{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

// GetQuizResults возвращает рейтинг и статистику. Доступно только автору викторины.
func (s *ResultService) GetQuizResults(ctx context.Context, quizID, requestingAdminID uint) (*QuizResults, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOwnedBy(requestingAdminID) {
		return nil, apperrors.ErrForbidden
	}

	attempts, err := s.attemptRepo.ListFinishedByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("list results for quiz %d: %w", quizID, err)
	}

	scores := make([]float64, 0, len(attempts))
	for _, a := range attempts {
		scores = append(scores, a.Score)
	}
	return &QuizResults{
		Quiz:       quiz,
		Statistics: scoring.Summarize(scores),
		Attempts:   attempts,
	}, nil
}

// GetUserResults возвращает завершенные попытки пользователя, новые первыми
func (s *ResultService) GetUserResults(ctx context.Context, userID uint) ([]entity.Attempt, error) {
	return s.attemptRepo.ListFinishedByUser(ctx, userID)
}
