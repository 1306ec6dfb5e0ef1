package repository

import (
	"context"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"gorm.io/gorm"
)

// AuditRepository принимает записи журнала аудита
type AuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *entity.AuditLog) error
}
