package repository

import (
	"context"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"gorm.io/gorm"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *entity.Quiz) error
	GetByID(ctx context.Context, id uint) (*entity.Quiz, error)
	// GetWithQuestions загружает викторину с категорией, автором, вопросами и вариантами в порядке создания
	GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error)
	// ListPublished возвращает опубликованные викторины (новые первыми) с числом вопросов, без содержимого
	ListPublished(ctx context.Context) ([]entity.Quiz, error)
	// ListByCreator возвращает викторины автора с числом вопросов и попыток
	ListByCreator(ctx context.Context, creatorID uint) ([]entity.Quiz, error)
	// GetLocked читает строку викторины внутри tx с блокировкой FOR SHARE / FOR UPDATE
	GetLocked(ctx context.Context, tx *gorm.DB, id uint, lock LockStrength) (*entity.Quiz, error)
	// LoadQuestions заполняет quiz.Questions вопросами с вариантами в порядке создания
	LoadQuestions(ctx context.Context, tx *gorm.DB, quiz *entity.Quiz) error
	SetPublished(ctx context.Context, tx *gorm.DB, quizID uint, published bool) error
}
