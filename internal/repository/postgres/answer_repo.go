package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// Create сохраняет ответ. Уникальный индекс (user_id, question_id) → repository.ErrDuplicate.
func (r *AnswerRepo) Create(ctx context.Context, tx *gorm.DB, answer *entity.Answer) error {
	return translateWrite(conn(ctx, r.db, tx).Omit("Option").Create(answer).Error)
}

// GetByUserAndQuestion возвращает ответ пользователя на вопрос
func (r *AnswerRepo) GetByUserAndQuestion(ctx context.Context, userID, questionID uint) (*entity.Answer, error) {
	var answer entity.Answer
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &answer, nil
}

// CountCorrect считает правильные ответы пользователя в рамках викторины
func (r *AnswerRepo) CountCorrect(ctx context.Context, tx *gorm.DB, userID, quizID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db, tx).Model(&entity.Answer{}).
		Joins("JOIN questions ON questions.id = answers.question_id").
		Joins("JOIN options ON options.id = answers.option_id").
		Where("answers.user_id = ? AND questions.quiz_id = ? AND options.is_correct = ?", userID, quizID, true).
		Count(&count).Error
	return count, err
}

// ListByUserAndQuiz возвращает ответы пользователя на вопросы викторины
func (r *AnswerRepo) ListByUserAndQuiz(ctx context.Context, userID, quizID uint) ([]entity.Answer, error) {
	var answers []entity.Answer
	err := r.db.WithContext(ctx).
		Select("answers.*").
		Joins("JOIN questions ON questions.id = answers.question_id").
		Where("answers.user_id = ? AND questions.quiz_id = ?", userID, quizID).
		Order("answers.id ASC").
		Find(&answers).Error
	return answers, err
}
