package repository

import (
	"context"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"gorm.io/gorm"
)

// CategoryRepository определяет методы для работы с категориями
type CategoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, category *entity.Category) error
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	// ListWithQuizCount возвращает категории по имени вместе с числом викторин
	ListWithQuizCount(ctx context.Context) ([]entity.Category, error)
}
