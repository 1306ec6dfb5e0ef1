package repository

import (
	"context"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"gorm.io/gorm"
)

// AnswerRepository определяет методы для работы с ответами
type AnswerRepository interface {
	// Create возвращает ErrDuplicate, если пользователь уже отвечал на этот вопрос
	Create(ctx context.Context, tx *gorm.DB, answer *entity.Answer) error
	GetByUserAndQuestion(ctx context.Context, userID, questionID uint) (*entity.Answer, error)
	// CountCorrect считает ответы пользователя на вопросы викторины с правильным вариантом
	CountCorrect(ctx context.Context, tx *gorm.DB, userID, quizID uint) (int64, error)
	ListByUserAndQuiz(ctx context.Context, userID, quizID uint) ([]entity.Answer, error)
}
