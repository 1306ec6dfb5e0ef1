package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/internal/pkg/testdb"
	"github.com/Salis02/quiz-app-backend/internal/repository/postgres"
)

// testEnv собирает сервисы поверх реальных gorm-репозиториев и SQLite
type testEnv struct {
	db       *gorm.DB
	catalog  *CatalogService
	attempts *AttemptService
	answers  *AnswerService
	admin    *AdminService
	results  *ResultService

	admin1 *entity.User
	user1  *entity.User
	user2  *entity.User
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithAudit(t, nil)
}

// newTestEnvWithAudit позволяет подменить репозиторий аудита (nil - настоящий)
func newTestEnvWithAudit(t *testing.T, auditRepo repository.AuditRepository) *testEnv {
	t.Helper()
	db := testdb.New(t)
	log := logger.Nop()

	if auditRepo == nil {
		auditRepo = postgres.NewAuditRepo(db)
	}
	audit := NewAuditLogger(auditRepo, log)

	quizRepo := postgres.NewQuizRepo(db)
	questionRepo := postgres.NewQuestionRepo(db)
	attemptRepo := postgres.NewAttemptRepo(db)
	answerRepo := postgres.NewAnswerRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)

	catalog := NewCatalogService(quizRepo, nil, 0, log)
	env := &testEnv{
		db:       db,
		catalog:  catalog,
		attempts: NewAttemptService(db, catalog, quizRepo, questionRepo, attemptRepo, answerRepo, audit, log),
		answers:  NewAnswerService(db, questionRepo, attemptRepo, answerRepo, audit, log),
		admin:    NewAdminService(db, categoryRepo, quizRepo, questionRepo, catalog, audit, log),
		results:  NewResultService(quizRepo, attemptRepo),
	}
	env.admin1 = testdb.CreateUser(t, db, "admin@quiz.com", entity.RoleAdmin)
	env.user1 = testdb.CreateUser(t, db, "user1@quiz.com", entity.RoleUser)
	env.user2 = testdb.CreateUser(t, db, "user2@quiz.com", entity.RoleUser)
	return env
}

func (e *testEnv) auditActions(t *testing.T) []string {
	t.Helper()
	var actions []string
	if err := e.db.Model(&entity.AuditLog{}).Order("id").Pluck("action", &actions).Error; err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	return actions
}

func (e *testEnv) countActive(t *testing.T, userID, quizID uint) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&entity.Attempt{}).
		Where("user_id = ? AND quiz_id = ? AND finished_at IS NULL", userID, quizID).
		Count(&n).Error; err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	return n
}
