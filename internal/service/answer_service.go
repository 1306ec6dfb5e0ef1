package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

// SubmitResult - результат записи ответа
type SubmitResult struct {
	AnswerID    uint
	QuestionID  uint
	OptionID    uint
	IsCorrect   bool
	SubmittedAt time.Time
}

// AnswerService записывает ответы участников. Ответ неизменяем: обновления нет.
type AnswerService struct {
	db           *gorm.DB
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	audit        *AuditLogger
	log          *logger.Logger
}

// NewAnswerService создает AnswerService
func NewAnswerService(
	db *gorm.DB,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	audit *AuditLogger,
	log *logger.Logger,
) *AnswerService {
	return &AnswerService{
		db:           db,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		audit:        audit,
		log:          log.With("service", "AnswerService"),
	}
}

// Submit записывает ответ. Проверки идут строго по порядку:
// вопрос существует → вариант принадлежит вопросу → есть активная попытка → ответа еще не было.
func (s *AnswerService) Submit(ctx context.Context, userID, questionID, optionID uint) (*SubmitResult, error) {
	question, err := s.questionRepo.GetWithOptions(ctx, nil, questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("question %d: %w", questionID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	option := question.FindOption(optionID)
	if option == nil {
		return nil, apperrors.ErrInvalidOption
	}

	answer := &entity.Answer{
		UserID:     userID,
		QuestionID: questionID,
		OptionID:   optionID,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.attemptRepo.FindActive(ctx, tx, userID, question.QuizID, repository.LockShare); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNoActiveSession
			}
			return fmt.Errorf("find active attempt: %w", err)
		}
		if err := s.answerRepo.Create(ctx, tx, answer); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.ErrAlreadyAnswered
			}
			return fmt.Errorf("save answer: %w", err)
		}
		s.audit.Record(ctx, tx, userID, entity.AuditSubmitAnswer, entity.EntityQuestion, questionID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("answer recorded",
		"answer_id", answer.ID, "user_id", userID, "question_id", questionID, "correct", option.IsCorrect)
	return &SubmitResult{
		AnswerID:    answer.ID,
		QuestionID:  questionID,
		OptionID:    optionID,
		IsCorrect:   option.IsCorrect,
		SubmittedAt: answer.CreatedAt,
	}, nil
}
