package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/testdb"
)

func TestAttemptService_Start_Success(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)

	// Act
	res, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, res.AttemptID)
	assert.False(t, res.StartedAt.IsZero())
	require.Len(t, res.Quiz.Questions, 2, "Снимок викторины должен содержать вопросы")
	assert.Len(t, res.Quiz.Questions[0].Options, 4)
	assert.Len(t, res.Quiz.Questions[1].Options, 2)
	assert.Equal(t, int64(1), env.countActive(t, env.user1.ID, quiz.ID))
	assert.Equal(t, []string{entity.AuditStartQuiz}, env.auditActions(t))
}

func TestAttemptService_Start_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attempts.Start(context.Background(), env.user1.ID, 999)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, env.auditActions(t), "Неудачная операция не пишет аудит")
}

func TestAttemptService_Start_NotPublished(t *testing.T) {
	env := newTestEnv(t)
	draft := testdb.CreateQuiz(t, env.db, env.admin1.ID, "Draft", false,
		testdb.QuestionSpec{Text: "Q", Options: []string{"a", "b"}, Correct: 0})

	_, err := env.attempts.Start(context.Background(), env.user1.ID, draft.ID)

	assert.ErrorIs(t, err, apperrors.ErrNotPublished)
	assert.Equal(t, int64(0), env.countActive(t, env.user1.ID, draft.ID))
	assert.Empty(t, env.auditActions(t))
}

func TestAttemptService_Start_AlreadyActive(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	// Act
	_, err = env.attempts.Start(ctx, env.user1.ID, quiz.ID)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAlreadyActive)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, int64(1), env.countActive(t, env.user1.ID, quiz.ID))
	assert.Equal(t, []string{entity.AuditStartQuiz}, env.auditActions(t), "Второй старт не пишет аудит")

	// Другой пользователь начинает независимо
	_, err = env.attempts.Start(ctx, env.user2.ID, quiz.ID)
	assert.NoError(t, err)
}

func TestAttemptService_Start_ConcurrentOnlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)

	var succeeded, conflicted atomic.Int32
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrAlreadyActive):
				conflicted.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), succeeded.Load(), "Ровно один старт должен пройти")
	assert.Equal(t, int32(7), conflicted.Load())
	assert.Equal(t, int64(1), env.countActive(t, env.user1.ID, quiz.ID))
}

func TestAttemptService_Start_AfterFinishAllowed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	first, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.attempts.Finish(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	second, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)

	require.NoError(t, err)
	assert.NotEqual(t, first.AttemptID, second.AttemptID)
}

func TestAttemptService_Finish_JSBasicsScenario(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1, q2 := quiz.Questions[0], quiz.Questions[1]
	started, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	// A для Q1 (верно), "True" для Q2 (неверно)
	r1, err := env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[0].ID)
	require.NoError(t, err)
	assert.True(t, r1.IsCorrect)
	r2, err := env.answers.Submit(ctx, env.user1.ID, q2.ID, q2.Options[0].ID)
	require.NoError(t, err)
	assert.False(t, r2.IsCorrect)

	// Act
	res, err := env.attempts.Finish(ctx, env.user1.ID, quiz.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, started.AttemptID, res.AttemptID)
	assert.Equal(t, 2, res.TotalQuestions)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 50.00, res.Score)
	assert.Equal(t, "JS Basics", res.QuizTitle)
	assert.False(t, res.FinishedAt.Before(res.StartedAt))

	var stored entity.Attempt
	require.NoError(t, env.db.First(&stored, res.AttemptID).Error)
	require.NotNil(t, stored.FinishedAt)
	assert.Equal(t, 50.00, stored.Score)
	assert.Equal(t, 2, stored.TotalQuestions)
	assert.Equal(t, 1, stored.CorrectAnswers)
	assert.Equal(t, []string{
		entity.AuditStartQuiz, entity.AuditSubmitAnswer, entity.AuditSubmitAnswer, entity.AuditFinishQuiz,
	}, env.auditActions(t))
}

func TestAttemptService_Finish_NoActiveAttempt(t *testing.T) {
	env := newTestEnv(t)
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)

	_, err := env.attempts.Finish(context.Background(), env.user1.ID, quiz.ID)

	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	assert.Empty(t, env.auditActions(t))
}

func TestAttemptService_Finish_UnknownQuiz(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.attempts.Finish(context.Background(), env.user1.ID, 404)

	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestAttemptService_Finish_TwiceKeepsFirstScore(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[0].ID)
	require.NoError(t, err)
	first, err := env.attempts.Finish(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	// Act
	_, err = env.attempts.Finish(ctx, env.user1.ID, quiz.ID)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	var stored entity.Attempt
	require.NoError(t, env.db.First(&stored, first.AttemptID).Error)
	assert.Equal(t, first.Score, stored.Score, "Повторное завершение не пересчитывает балл")
	assert.Equal(t, first.FinishedAt.Unix(), stored.FinishedAt.Unix())
}

func TestAttemptService_Finish_CountsQuestionsAtFinishTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[0].ID)
	require.NoError(t, err)

	// вопрос добавлен после старта попытки
	late := entity.Question{QuizID: quiz.ID, Text: "Late", Type: entity.QuestionTypeMCQ,
		Options: []entity.Option{{Text: "x", IsCorrect: true}}}
	require.NoError(t, env.db.Create(&late).Error)

	res, err := env.attempts.Finish(ctx, env.user1.ID, quiz.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalQuestions)
	assert.Equal(t, 1, res.CorrectAnswers)
	assert.Equal(t, 33.33, res.Score)
}

func TestAttemptService_Finish_QuizWithoutQuestionsScoresZero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.CreateQuiz(t, env.db, env.admin1.ID, "Empty", true)
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	res, err := env.attempts.Finish(ctx, env.user1.ID, quiz.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalQuestions)
	assert.Equal(t, 0.0, res.Score)
}

func TestAttemptService_Review(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q2 := quiz.Questions[1]
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.answers.Submit(ctx, env.user1.ID, q2.ID, q2.Options[0].ID)
	require.NoError(t, err)

	// до завершения разбор недоступен
	_, err = env.attempts.Review(ctx, env.user1.ID, quiz.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = env.attempts.Finish(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	review, err := env.attempts.Review(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]uint{q2.ID: q2.Options[0].ID}, review.ChosenOptions)
	require.Len(t, review.Quiz.Questions, 2)
	assert.True(t, review.Quiz.Questions[1].Options[1].IsCorrect, "В разборе виден правильный ответ")
	assert.Equal(t, 0.0, review.Attempt.Score)
}

func TestAttemptService_Review_UnavailableDuringRetake(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]

	// первая попытка: второй вопрос пропущен
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[0].ID)
	require.NoError(t, err)
	first, err := env.attempts.Finish(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, first.Score)

	review, err := env.attempts.Review(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, map[uint]uint{q1.ID: q1.Options[0].ID}, review.ChosenOptions)

	// во время повторной попытки разбор закрыт
	_, err = env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.attempts.Review(ctx, env.user1.ID, quiz.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = env.attempts.Finish(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.attempts.Review(ctx, env.user1.ID, quiz.ID)
	assert.NoError(t, err)
}

func TestAttemptService_Finish_ConcurrentWithSubmits(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	specs := make([]testdb.QuestionSpec, 6)
	for i := range specs {
		specs[i] = testdb.QuestionSpec{Text: "Q" + string(rune('1'+i)), Options: []string{"right", "wrong"}, Correct: 0}
	}
	quiz := testdb.CreateQuiz(t, env.db, env.admin1.ID, "Race", true, specs...)
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	// Act
	var accepted, rejected atomic.Int32
	var finished *FinishResult
	var g errgroup.Group
	g.Go(func() error {
		res, err := env.attempts.Finish(ctx, env.user1.ID, quiz.ID)
		finished = res
		return err
	})
	for _, q := range quiz.Questions {
		questionID, optionID := q.ID, q.Options[0].ID
		g.Go(func() error {
			_, err := env.answers.Submit(ctx, env.user1.ID, questionID, optionID)
			switch {
			case err == nil:
				accepted.Add(1)
			case errors.Is(err, apperrors.ErrNoActiveSession):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Assert
	require.NotNil(t, finished)
	assert.Equal(t, int32(len(quiz.Questions)), accepted.Load()+rejected.Load())
	assert.Equal(t, int(accepted.Load()), finished.CorrectAnswers, "Каждый принятый ответ учтен в итоге")

	var stored entity.Attempt
	require.NoError(t, env.db.First(&stored, finished.AttemptID).Error)
	assert.Equal(t, int(accepted.Load()), stored.CorrectAnswers)
	var answers int64
	require.NoError(t, env.db.Model(&entity.Answer{}).Where("user_id = ?", env.user1.ID).Count(&answers).Error)
	assert.Equal(t, int64(accepted.Load()), answers, "Отклоненные ответы не сохраняются")
}
