package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

// AuditLogger - единая точка записи в журнал аудита.
// Запись best-effort: ошибка логируется и никогда не откатывает основную операцию.
type AuditLogger struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewAuditLogger создает AuditLogger
func NewAuditLogger(repo repository.AuditRepository, log *logger.Logger) *AuditLogger {
	return &AuditLogger{repo: repo, log: log.With("component", "AuditLogger")}
}

// Record пишет событие. Внутри транзакции tx запись идет в точке сохранения (SAVEPOINT),
// поэтому ее сбой откатывает только саму запись аудита, а не транзакцию.
func (a *AuditLogger) Record(ctx context.Context, tx *gorm.DB, actorID uint, action, entityType string, entityID uint) {
	entry := &entity.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	var err error
	if tx != nil {
		err = tx.Transaction(func(sp *gorm.DB) error {
			return a.repo.Create(ctx, sp, entry)
		})
	} else {
		err = a.repo.Create(ctx, nil, entry)
	}
	if err != nil {
		a.log.Warn("audit write failed",
			"actor_id", actorID, "action", action,
			"entity_type", entityType, "entity_id", entityID, "error", err)
	}
}
