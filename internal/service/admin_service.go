package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

// CreateCategoryInput - данные новой категории
type CreateCategoryInput struct {
	Name        string
	Description string
}

// CreateQuizInput - данные новой викторины
type CreateQuizInput struct {
	Title       string
	Description string
	CategoryID  *uint
}

// OptionInput - вариант ответа
type OptionInput struct {
	Text      string
	IsCorrect bool
}

// AddQuestionInput - новый вопрос, варианты можно передать сразу
type AddQuestionInput struct {
	Text    string
	Type    string
	Options []OptionInput
}

// AdminService - авторинг викторин: категории, викторины, вопросы, публикация
type AdminService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	catalog      *CatalogService
	audit        *AuditLogger
	log          *logger.Logger
}

// NewAdminService создает AdminService
func NewAdminService(
	db *gorm.DB,
	categoryRepo repository.CategoryRepository,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	catalog *CatalogService,
	audit *AuditLogger,
	log *logger.Logger,
) *AdminService {
	return &AdminService{
		db:           db,
		categoryRepo: categoryRepo,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		catalog:      catalog,
		audit:        audit,
		log:          log.With("service", "AdminService"),
	}
}

// CreateCategory создает категорию. Имя уникально.
func (s *AdminService) CreateCategory(ctx context.Context, adminID uint, in CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}
	category := &entity.Category{Name: name, Description: strings.TrimSpace(in.Description)}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.categoryRepo.Create(ctx, tx, category); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: category %q already exists", apperrors.ErrConflict, name)
			}
			return err
		}
		s.audit.Record(ctx, tx, adminID, entity.AuditCreateCategory, entity.EntityCategory, category.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories возвращает категории с количеством викторин
func (s *AdminService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.ListWithQuizCount(ctx)
}

// CreateQuiz создает неопубликованную викторину от имени администратора
func (s *AdminService) CreateQuiz(ctx context.Context, adminID uint, in CreateQuizInput) (*entity.Quiz, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: quiz title is required", apperrors.ErrValidation)
	}

	var category *entity.Category
	if in.CategoryID != nil {
		c, err := s.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("category %d: %w", *in.CategoryID, apperrors.ErrNotFound)
			}
			return nil, err
		}
		category = c
	}

	quiz := &entity.Quiz{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		CreatedBy:   adminID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.quizRepo.Create(ctx, tx, quiz); err != nil {
			return err
		}
		s.audit.Record(ctx, tx, adminID, entity.AuditCreateQuiz, entity.EntityQuiz, quiz.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	quiz.Category = category
	return quiz, nil
}

// ListMyQuizzes возвращает викторины администратора со счетчиками
func (s *AdminService) ListMyQuizzes(ctx context.Context, adminID uint) ([]entity.Quiz, error) {
	return s.quizRepo.ListByCreator(ctx, adminID)
}

// GetQuiz возвращает викторину владельцу целиком, включая правильные ответы и черновики
func (s *AdminService) GetQuiz(ctx context.Context, adminID, quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOwnedBy(adminID) {
		return nil, apperrors.ErrForbidden
	}
	return quiz, nil
}

// AddQuestion добавляет вопрос в неопубликованную викторину.
// Строка викторины держится FOR SHARE, поэтому публикация не проходит между проверкой и вставкой.
func (s *AdminService) AddQuestion(ctx context.Context, adminID, quizID uint, in AddQuestionInput) (*entity.Question, error) {
	var question *entity.Question
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, err := s.lockDraft(ctx, tx, adminID, quizID, repository.LockShare)
		if err != nil {
			return err
		}

		text := strings.TrimSpace(in.Text)
		if text == "" {
			return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
		}
		qType := in.Type
		if qType == "" {
			qType = entity.QuestionTypeMCQ
		}
		if !entity.IsValidQuestionType(qType) {
			return fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, in.Type)
		}

		question = &entity.Question{QuizID: quiz.ID, Text: text, Type: qType}
		for _, o := range in.Options {
			opt, err := newOption(question, o)
			if err != nil {
				return err
			}
			question.Options = append(question.Options, *opt)
		}

		if err := s.questionRepo.Create(ctx, tx, question); err != nil {
			return err
		}
		s.audit.Record(ctx, tx, adminID, entity.AuditAddQuestion, entity.EntityQuestion, question.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return question, nil
}

// AddOption добавляет вариант ответа к вопросу неопубликованной викторины.
// Викторина блокируется FOR UPDATE: правила вариантов проверяются по перечитанному вопросу,
// и параллельные добавления в одну викторину выполняются по очереди.
func (s *AdminService) AddOption(ctx context.Context, adminID, questionID uint, in OptionInput) (*entity.Option, error) {
	var option *entity.Option
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		question, err := s.questionRepo.GetWithOptions(ctx, tx, questionID)
		if err != nil {
			return err
		}
		if _, err := s.lockDraft(ctx, tx, adminID, question.QuizID, repository.LockUpdate); err != nil {
			return err
		}
		// варианты могли измениться, пока ждали блокировку
		if question, err = s.questionRepo.GetWithOptions(ctx, tx, questionID); err != nil {
			return err
		}

		option, err = newOption(question, in)
		if err != nil {
			return err
		}
		option.QuestionID = question.ID

		if err := s.questionRepo.CreateOption(ctx, tx, option); err != nil {
			return err
		}
		s.audit.Record(ctx, tx, adminID, entity.AuditAddOption, entity.EntityOption, option.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return option, nil
}

// ValidateForPublish проверяет, можно ли опубликовать викторину
func (s *AdminService) ValidateForPublish(ctx context.Context, quizID uint) error {
	quiz, err := s.quizRepo.GetWithQuestions(ctx, quizID)
	if err != nil {
		return err
	}
	return ValidateForPublish(quiz)
}

// PublishQuiz открывает викторину участникам. Проверка полноты и смена флага
// выполняются в одной транзакции под FOR UPDATE на строке викторины.
func (s *AdminService) PublishQuiz(ctx context.Context, adminID, quizID uint) (*entity.Quiz, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz, err := s.lockOwned(ctx, tx, adminID, quizID)
		if err != nil {
			return err
		}
		if err := s.quizRepo.LoadQuestions(ctx, tx, quiz); err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		if err := ValidateForPublish(quiz); err != nil {
			return err
		}
		if err := s.quizRepo.SetPublished(ctx, tx, quizID, true); err != nil {
			return err
		}
		s.audit.Record(ctx, tx, adminID, entity.AuditPublishQuiz, entity.EntityQuiz, quizID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.catalog.InvalidatePublished(ctx)
	s.log.Info("quiz published", "quiz_id", quizID, "admin_id", adminID)
	return s.quizRepo.GetWithQuestions(ctx, quizID)
}

// UnpublishQuiz снимает викторину с публикации. Проверок полноты нет.
func (s *AdminService) UnpublishQuiz(ctx context.Context, adminID, quizID uint) (*entity.Quiz, error) {
	var quiz *entity.Quiz
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if quiz, err = s.lockOwned(ctx, tx, adminID, quizID); err != nil {
			return err
		}
		if err := s.quizRepo.SetPublished(ctx, tx, quizID, false); err != nil {
			return err
		}
		s.audit.Record(ctx, tx, adminID, entity.AuditUnpublishQuiz, entity.EntityQuiz, quizID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.catalog.InvalidatePublished(ctx)
	quiz.Published = false
	s.log.Info("quiz unpublished", "quiz_id", quizID, "admin_id", adminID)
	return quiz, nil
}

// lockOwned блокирует викторину FOR UPDATE и проверяет владельца
func (s *AdminService) lockOwned(ctx context.Context, tx *gorm.DB, adminID, quizID uint) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetLocked(ctx, tx, quizID, repository.LockUpdate)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOwnedBy(adminID) {
		return nil, apperrors.ErrForbidden
	}
	return quiz, nil
}

// lockDraft блокирует викторину и проверяет, что она принадлежит админу и еще не опубликована
func (s *AdminService) lockDraft(ctx context.Context, tx *gorm.DB, adminID, quizID uint, lock repository.LockStrength) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetLocked(ctx, tx, quizID, lock)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOwnedBy(adminID) {
		return nil, apperrors.ErrForbidden
	}
	if quiz.Published {
		return nil, fmt.Errorf("%w: unpublish the quiz before editing it", apperrors.ErrConflict)
	}
	return quiz, nil
}

// newOption проверяет вариант с учетом типа вопроса и уже добавленных вариантов
func newOption(question *entity.Question, in OptionInput) (*entity.Option, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: option text is required", apperrors.ErrValidation)
	}
	if question.Type == entity.QuestionTypeTrueFalse && len(question.Options) >= 2 {
		return nil, fmt.Errorf("%w: true/false question accepts only two options", apperrors.ErrValidation)
	}
	if in.IsCorrect && question.Type != entity.QuestionTypeMultipleChoice && question.HasCorrectOption() {
		return nil, fmt.Errorf("%w: single choice question already has a correct option", apperrors.ErrValidation)
	}
	return &entity.Option{Text: text, IsCorrect: in.IsCorrect}, nil
}
