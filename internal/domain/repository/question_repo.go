package repository

import (
	"context"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"gorm.io/gorm"
)

// QuestionRepository определяет методы для работы с вопросами и вариантами ответов
type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *entity.Question) error
	// GetWithOptions загружает вопрос вместе с вариантами; tx может быть nil
	GetWithOptions(ctx context.Context, tx *gorm.DB, id uint) (*entity.Question, error)
	// CountByQuiz считает вопросы викторины; внутри tx видит состояние этой транзакции
	CountByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) (int64, error)
	CreateOption(ctx context.Context, tx *gorm.DB, option *entity.Option) error
}
