package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/internal/pkg/testdb"
)

func TestAuditLogger_FailureDoesNotAbortOperation(t *testing.T) {
	// Arrange
	auditRepo := new(MockAuditRepository)
	auditRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("audit table is gone"))
	env := newTestEnvWithAudit(t, auditRepo)
	ctx := context.Background()
	quiz := testdb.JSBasics(t, env.db, env.admin1.ID)
	q1 := quiz.Questions[0]

	// Act
	_, err := env.attempts.Start(ctx, env.user1.ID, quiz.ID)
	require.NoError(t, err)
	_, err = env.answers.Submit(ctx, env.user1.ID, q1.ID, q1.Options[0].ID)
	require.NoError(t, err)
	res, err := env.attempts.Finish(ctx, env.user1.ID, quiz.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50.00, res.Score)
	auditRepo.AssertNumberOfCalls(t, "Create", 3)

	var stored entity.Attempt
	require.NoError(t, env.db.First(&stored, res.AttemptID).Error)
	assert.NotNil(t, stored.FinishedAt, "Сбой аудита не откатывает завершение")
}

func TestAuditLogger_RecordsActionFields(t *testing.T) {
	auditRepo := new(MockAuditRepository)
	auditRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(e *entity.AuditLog) bool {
		return e.UserID == 7 && e.Action == entity.AuditLogin && e.EntityType == entity.EntityUser && e.EntityID == 7
	})).Return(nil).Once()
	audit := NewAuditLogger(auditRepo, logger.Nop())

	audit.Record(context.Background(), nil, 7, entity.AuditLogin, entity.EntityUser, 7)

	auditRepo.AssertExpectations(t)
}
