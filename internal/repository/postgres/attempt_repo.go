package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create вставляет попытку. Частичный уникальный индекс idx_attempts_active
// не дает создать вторую активную попытку: 23505 → repository.ErrDuplicate.
func (r *AttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *entity.Attempt) error {
	return translateWrite(conn(ctx, r.db, tx).Omit("User", "Quiz").Create(attempt).Error)
}

// FindActive ищет незавершенную попытку пользователя по викторине
func (r *AttemptRepo) FindActive(ctx context.Context, tx *gorm.DB, userID, quizID uint, lock repository.LockStrength) (*entity.Attempt, error) {
	var attempt entity.Attempt
	q := conn(ctx, r.db, tx).
		Where("user_id = ? AND quiz_id = ? AND finished_at IS NULL", userID, quizID)
	if err := withLock(q, lock).First(&attempt).Error; err != nil {
		return nil, notFound(err)
	}
	return &attempt, nil
}

// MarkFinished записывает результат. Условие finished_at IS NULL делает
// повторное завершение невозможным даже при гонке.
func (r *AttemptRepo) MarkFinished(ctx context.Context, tx *gorm.DB, attemptID uint, upd repository.FinishUpdate) error {
	result := conn(ctx, r.db, tx).Model(&entity.Attempt{}).
		Where("id = ? AND finished_at IS NULL", attemptID).
		Updates(map[string]interface{}{
			"score":           upd.Score,
			"total_questions": upd.TotalQuestions,
			"correct_answers": upd.CorrectAnswers,
			"finished_at":     upd.FinishedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLatestFinished возвращает последнюю завершенную попытку
func (r *AttemptRepo) FindLatestFinished(ctx context.Context, userID, quizID uint) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ? AND finished_at IS NOT NULL", userID, quizID).
		Order("finished_at DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &attempt, nil
}

// ListFinishedByQuiz возвращает рейтинг завершенных попыток викторины
func (r *AttemptRepo) ListFinishedByQuiz(ctx context.Context, quizID uint) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("quiz_id = ? AND finished_at IS NOT NULL", quizID).
		Order("score DESC, finished_at ASC, id ASC").
		Find(&attempts).Error
	return attempts, err
}

// ListFinishedByUser возвращает историю завершенных попыток пользователя
func (r *AttemptRepo) ListFinishedByUser(ctx context.Context, userID uint) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.WithContext(ctx).
		Preload("Quiz").
		Where("user_id = ? AND finished_at IS NOT NULL", userID).
		Order("finished_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}
