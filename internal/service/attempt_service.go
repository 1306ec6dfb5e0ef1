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
	"github.com/Salis02/quiz-app-backend/internal/service/scoring"
)

// StartResult - результат начала попытки
type StartResult struct {
	AttemptID uint
	Quiz      *entity.Quiz
	StartedAt time.Time
}

// FinishResult - итог завершенной попытки
type FinishResult struct {
	AttemptID      uint
	QuizID         uint
	QuizTitle      string
	TotalQuestions int
	CorrectAnswers int
	Score          float64
	StartedAt      time.Time
	FinishedAt     time.Time
}

// ReviewResult - разбор завершенной попытки: викторина с правильными ответами
// и выбранный пользователем вариант по каждому вопросу
type ReviewResult struct {
	Attempt *entity.Attempt
	Quiz    *entity.Quiz
	// ChosenOptions: question_id -> option_id
	ChosenOptions map[uint]uint
}

// AttemptService управляет жизненным циклом попытки: начало, завершение, разбор
type AttemptService struct {
	db           *gorm.DB
	catalog      *CatalogService
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	audit        *AuditLogger
	log          *logger.Logger
	now          func() time.Time
}

// NewAttemptService создает AttemptService
func NewAttemptService(
	db *gorm.DB,
	catalog *CatalogService,
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	audit *AuditLogger,
	log *logger.Logger,
) *AttemptService {
	return &AttemptService{
		db:           db,
		catalog:      catalog,
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		audit:        audit,
		log:          log.With("service", "AttemptService"),
		now:          time.Now,
	}
}

// Start начинает попытку прохождения опубликованной викторины.
// Проверка "нет активной попытки" и вставка - одна операция: ее обеспечивает
// частичный уникальный индекс, нарушение которого превращается в ErrAlreadyActive.
func (s *AttemptService) Start(ctx context.Context, userID, quizID uint) (*StartResult, error) {
	quiz, err := s.catalog.GetPublishedQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt := &entity.Attempt{
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: s.now().UTC(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.Create(ctx, tx, attempt); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.ErrAlreadyActive
			}
			return fmt.Errorf("create attempt: %w", err)
		}
		s.audit.Record(ctx, tx, userID, entity.AuditStartQuiz, entity.EntityQuiz, quizID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("attempt started", "attempt_id", attempt.ID, "user_id", userID, "quiz_id", quizID)
	return &StartResult{AttemptID: attempt.ID, Quiz: quiz, StartedAt: attempt.StartedAt}, nil
}

// Finish завершает активную попытку и фиксирует балл.
// Счетчики перечитываются внутри той же транзакции, что пишет балл; строка попытки
// блокируется FOR UPDATE, а запись ответа держит FOR SHARE на ней же, поэтому
// итог всегда соответствует набору ответов, учтенному в результате.
func (s *AttemptService) Finish(ctx context.Context, userID, quizID uint) (*FinishResult, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// без викторины не может быть и активной попытки
			return nil, apperrors.ErrNoActiveSession
		}
		return nil, err
	}

	var result *FinishResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attempt, err := s.attemptRepo.FindActive(ctx, tx, userID, quizID, repository.LockUpdate)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNoActiveSession
			}
			return fmt.Errorf("find active attempt: %w", err)
		}

		total, err := s.questionRepo.CountByQuiz(ctx, tx, quizID)
		if err != nil {
			return fmt.Errorf("count questions: %w", err)
		}
		correct, err := s.answerRepo.CountCorrect(ctx, tx, userID, quizID)
		if err != nil {
			return fmt.Errorf("count correct answers: %w", err)
		}

		upd := repository.FinishUpdate{
			Score:          scoring.Score(int(total), int(correct)),
			TotalQuestions: int(total),
			CorrectAnswers: int(correct),
			FinishedAt:     s.now().UTC(),
		}
		if err := s.attemptRepo.MarkFinished(ctx, tx, attempt.ID, upd); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrNoActiveSession
			}
			return fmt.Errorf("finish attempt: %w", err)
		}
		s.audit.Record(ctx, tx, userID, entity.AuditFinishQuiz, entity.EntityQuiz, quizID)

		result = &FinishResult{
			AttemptID:      attempt.ID,
			QuizID:         quizID,
			QuizTitle:      quiz.Title,
			TotalQuestions: upd.TotalQuestions,
			CorrectAnswers: upd.CorrectAnswers,
			Score:          upd.Score,
			StartedAt:      attempt.StartedAt,
			FinishedAt:     upd.FinishedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("attempt finished",
		"attempt_id", result.AttemptID, "user_id", userID, "quiz_id", quizID,
		"total", result.TotalQuestions, "correct", result.CorrectAnswers, "score", result.Score)
	return result, nil
}

// Review возвращает разбор последней завершенной попытки. Пока есть активная
// попытка или ни одна не завершена, разбор недоступен: ErrConflict.
func (s *AttemptService) Review(ctx context.Context, userID, quizID uint) (*ReviewResult, error) {
	_, err := s.attemptRepo.FindActive(ctx, nil, userID, quizID, repository.LockNone)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: finish the active attempt before reviewing answers", apperrors.ErrConflict)
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("find active attempt: %w", err)
	}

	attempt, err := s.attemptRepo.FindLatestFinished(ctx, userID, quizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: finish the quiz before reviewing answers", apperrors.ErrConflict)
		}
		return nil, err
	}

	quiz, err := s.quizRepo.GetWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.ListByUserAndQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	chosen := make(map[uint]uint, len(answers))
	for _, a := range answers {
		chosen[a.QuestionID] = a.OptionID
	}
	return &ReviewResult{Attempt: attempt, Quiz: quiz, ChosenOptions: chosen}, nil
}
