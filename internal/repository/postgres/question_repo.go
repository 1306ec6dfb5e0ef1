package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает вопрос вместе с переданными вариантами
func (r *QuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *entity.Question) error {
	return translateWrite(conn(ctx, r.db, tx).Create(question).Error)
}

// GetWithOptions возвращает вопрос с вариантами ответа
func (r *QuestionRepo) GetWithOptions(ctx context.Context, tx *gorm.DB, id uint) (*entity.Question, error) {
	var question entity.Question
	err := conn(ctx, r.db, tx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id ASC")
		}).
		First(&question, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &question, nil
}

// CountByQuiz возвращает количество вопросов викторины
func (r *QuestionRepo) CountByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db, tx).Model(&entity.Question{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error
	return count, err
}

// CreateOption добавляет вариант ответа к вопросу
func (r *QuestionRepo) CreateOption(ctx context.Context, tx *gorm.DB, option *entity.Option) error {
	return translateWrite(conn(ctx, r.db, tx).Create(option).Error)
}
