package repository

import (
	"context"
	"time"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"gorm.io/gorm"
)

// FinishUpdate - данные, записываемые при завершении попытки
type FinishUpdate struct {
	Score          float64
	TotalQuestions int
	CorrectAnswers int
	FinishedAt     time.Time
}

// AttemptRepository определяет методы для работы с попытками прохождения
type AttemptRepository interface {
	// Create вставляет активную попытку. При наличии другой активной попытки
	// той же пары (user, quiz) возвращает ErrDuplicate.
	Create(ctx context.Context, tx *gorm.DB, attempt *entity.Attempt) error
	// FindActive ищет незавершенную попытку. Возвращает apperrors.ErrNotFound, если ее нет.
	FindActive(ctx context.Context, tx *gorm.DB, userID, quizID uint, lock LockStrength) (*entity.Attempt, error)
	// MarkFinished завершает попытку, только если она еще активна.
	// Возвращает apperrors.ErrNotFound, если обновлять нечего.
	MarkFinished(ctx context.Context, tx *gorm.DB, attemptID uint, upd FinishUpdate) error
	// FindLatestFinished возвращает последнюю завершенную попытку пользователя по викторине
	FindLatestFinished(ctx context.Context, userID, quizID uint) (*entity.Attempt, error)
	// ListFinishedByQuiz возвращает завершенные попытки с пользователями: score desc, finished_at asc
	ListFinishedByQuiz(ctx context.Context, quizID uint) ([]entity.Attempt, error)
	// ListFinishedByUser возвращает завершенные попытки пользователя с викторинами, новые первыми
	ListFinishedByUser(ctx context.Context, userID uint) ([]entity.Attempt, error)
}
