package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/testdb"
)

// play проходит викторину, отвечая на вопросы вариантами по индексам
func play(t *testing.T, env *testEnv, user *entity.User, quiz *entity.Quiz, choices ...int) *FinishResult {
	t.Helper()
	ctx := context.Background()
	_, err := env.attempts.Start(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	for i, c := range choices {
		q := quiz.Questions[i]
		_, err := env.answers.Submit(ctx, user.ID, q.ID, q.Options[c].ID)
		require.NoError(t, err)
	}
	res, err := env.attempts.Finish(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	return res
}

func TestResultService_GetQuizResults(t *testing.T) {
	// Arrange
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	play(t, env, env.user1, quiz, 0, 0) // 50
	play(t, env, env.user2, quiz, 0, 1) // 100
	// незавершенная попытка в отчет не попадает
	user3 := testdb.CreateUser(t, env.db, "user3@quiz.com", entity.RoleUser)
	_, err := env.attempts.Start(ctx, user3.ID, quiz.ID)
	require.NoError(t, err)

	// Act
	res, err := env.results.GetQuizResults(ctx, quiz.ID, env.admin1.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "JS Basics", res.Quiz.Title)
	require.Len(t, res.Attempts, 2)
	assert.Equal(t, env.user2.ID, res.Attempts[0].UserID, "Рейтинг по убыванию балла")
	assert.Equal(t, 100.0, res.Attempts[0].Score)
	require.NotNil(t, res.Attempts[0].User)
	assert.Equal(t, env.user2.Email, res.Attempts[0].User.Email)
	assert.Equal(t, 2, res.Statistics.TotalAttempts)
	assert.Equal(t, 75.0, res.Statistics.AverageScore)
	assert.Equal(t, 100.0, res.Statistics.HighestScore)
	assert.Equal(t, 50.0, res.Statistics.LowestScore)
}

func TestResultService_GetQuizResults_Empty(t *testing.T) {
	env := newTestEnv(t)
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)

	res, err := env.results.GetQuizResults(context.Background(), quiz.ID, env.admin1.ID)

	require.NoError(t, err)
	assert.Empty(t, res.Attempts)
	assert.Equal(t, 0, res.Statistics.TotalAttempts)
	assert.Equal(t, 0.0, res.Statistics.AverageScore)
}

func TestResultService_GetQuizResults_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	other := testdb.CreateUser(t, env.db, "other@quiz.com", entity.RoleAdmin)

	_, err := env.results.GetQuizResults(ctx, quiz.ID, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = env.results.GetQuizResults(ctx, 9999, env.admin1.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResultService_GetUserResults(t *testing.T) {
	env := newTestEnv(t)
	jsQuiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	goQuiz := testdb.CreateQuiz(t, env.db, env.admin1.ID, "Go Basics", true,
		testdb.QuestionSpec{Text: "go keyword starts?", Options: []string{"goroutine", "thread"}, Correct: 0})
	first := play(t, env, env.user1, jsQuiz, 0, 1)
	second := play(t, env, env.user1, goQuiz, 1)

	list, err := env.results.GetUserResults(context.Background(), env.user1.ID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.AttemptID, list[0].ID, "Новые попытки первыми")
	assert.Equal(t, first.AttemptID, list[1].ID)
	assert.Equal(t, 0.0, list[0].Score)
	assert.Equal(t, 100.0, list[1].Score)
	require.NotNil(t, list[1].Quiz)
	assert.Equal(t, "JS Basics", list[1].Quiz.Title)

	others, err := env.results.GetUserResults(context.Background(), env.user2.ID)
	require.NoError(t, err)
	assert.Empty(t, others)
}
