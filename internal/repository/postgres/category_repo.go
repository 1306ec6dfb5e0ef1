package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, tx *gorm.DB, category *entity.Category) error {
	return translateWrite(conn(ctx, r.db, tx).Create(category).Error)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *CategoryRepo) ListWithQuizCount(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).
		Model(&entity.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM quizzes WHERE quizzes.category_id = categories.id) AS quiz_count").
		Order("categories.name ASC").
		Find(&categories).Error
	return categories, err
}
