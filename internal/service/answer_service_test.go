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

func TestAnswerService_Submit_Success(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q2 := quiz.Questions[1]
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	// Act
	res, err := env.answers.Submit(ctx, env.user1.ID, q2.ID, q2.Options[1].ID)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, res.AnswerID)
	assert.Equal(t, q2.ID, res.QuestionID)
	assert.Equal(t, q2.Options[1].ID, res.OptionID)
	assert.True(t, res.IsCorrect)

	var stored entity.Answer
	require.NoError(t, env.db.First(&stored, res.AnswerID).Error)
	assert.Equal(t, env.user1.ID, stored.UserID)
	assert.Equal(t, q2.Options[1].ID, stored.OptionID)
}

func TestAnswerService_Submit_QuestionNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.answers.Submit(context.Background(), env.user1.ID, 777, 1)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAnswerService_Submit_InvalidOptionCheckedBeforeSession(t *testing.T) {
	env := newTestEnv(t)
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	// попытки нет, но вариант чужого вопроса отклоняется раньше
	_, err := env.answers.Submit(context.Background(), env.user1.ID, q1.ID, q2.Options[0].ID)

	assert.ErrorIs(t, err, apperrors.ErrInvalidOption)
	assert.NotErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestAnswerService_Submit_NoActiveSession(t *testing.T) {
	env := newTestEnv(t)
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]

	_, err := env.answers.Submit(context.Background(), env.user1.ID, q1.ID, q1.Options[0].ID)

	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	var count int64
	require.NoError(t, env.db.Model(&entity.Answer{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, env.auditActions(t))
}

func TestAnswerService_Submit_AlreadyAnsweredKeepsFirst(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	first, err := env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[0].ID)
	require.NoError(t, err)

	// Act
	_, err = env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[2].ID)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrAlreadyAnswered)
	var stored []entity.Answer
	require.NoError(t, env.db.Where("user_id = ? AND question_id = ?", env.user1.ID, q1.ID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, first.OptionID, stored[0].OptionID, "Первый ответ не перезаписывается")
}

func TestAnswerService_Submit_AfterFinish(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.attempts.Finish(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	_, err = env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[0].ID)

	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
}

func TestAnswerService_Submit_ConcurrentSameQuestion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)

	var succeeded, duplicates atomic.Int32
	var g errgroup.Group
	for i := 0; i < len(q1.Options); i++ {
		optionID := q1.Options[i].ID
		g.Go(func() error {
			_, err := env.answers.Submit(ctx, env.user1.ID, q1.ID, optionID)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrAlreadyAnswered):
				duplicates.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(len(q1.Options)-1), duplicates.Load())
}
