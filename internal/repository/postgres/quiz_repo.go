package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
)

const (
	selectQuestionCount = "(SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id) AS question_count"
	selectAttemptCount  = "(SELECT COUNT(*) FROM attempts WHERE attempts.quiz_id = quizzes.id) AS attempt_count"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину
func (r *QuizRepo) Create(ctx context.Context, tx *gorm.DB, quiz *entity.Quiz) error {
	return translateWrite(conn(ctx, r.db, tx).Omit("Category", "Creator", "Questions").Create(quiz).Error)
}

// GetByID возвращает викторину по ID без вложенных сущностей
func (r *QuizRepo) GetByID(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	if err := r.db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами и вариантами
func (r *QuizRepo) GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Creator").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.created_at ASC, questions.id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &quiz, nil
}

// GetLocked возвращает викторину, заблокировав ее строку до конца транзакции
func (r *QuizRepo) GetLocked(ctx context.Context, tx *gorm.DB, id uint, lock repository.LockStrength) (*entity.Quiz, error) {
	var quiz entity.Quiz
	if err := withLock(conn(ctx, r.db, tx), lock).First(&quiz, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &quiz, nil
}

// LoadQuestions перечитывает вопросы и варианты викторины
func (r *QuizRepo) LoadQuestions(ctx context.Context, tx *gorm.DB, quiz *entity.Quiz) error {
	var questions []entity.Question
	err := conn(ctx, r.db, tx).
		Where("quiz_id = ?", quiz.ID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id ASC")
		}).
		Order("questions.created_at ASC, questions.id ASC").
		Find(&questions).Error
	if err != nil {
		return err
	}
	quiz.Questions = questions
	return nil
}

// ListPublished возвращает опубликованные викторины с количеством вопросов
func (r *QuizRepo) ListPublished(ctx context.Context) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.WithContext(ctx).
		Model(&entity.Quiz{}).
		Select("quizzes.*, " + selectQuestionCount).
		Where("quizzes.published = ?", true).
		Preload("Category").
		Preload("Creator").
		Order("quizzes.created_at DESC, quizzes.id DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// ListByCreator возвращает викторины автора со счетчиками вопросов и попыток
func (r *QuizRepo) ListByCreator(ctx context.Context, creatorID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.WithContext(ctx).
		Model(&entity.Quiz{}).
		Select("quizzes.*, "+selectQuestionCount+", "+selectAttemptCount).
		Where("quizzes.created_by = ?", creatorID).
		Preload("Category").
		Order("quizzes.created_at DESC, quizzes.id DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// SetPublished переключает флаг публикации
func (r *QuizRepo) SetPublished(ctx context.Context, tx *gorm.DB, quizID uint, published bool) error {
	result := conn(ctx, r.db, tx).Model(&entity.Quiz{}).
		Where("id = ?", quizID).
		Update("published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
