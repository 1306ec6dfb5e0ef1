package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

// AuditRepo реализует repository.AuditRepository
type AuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Create(ctx context.Context, tx *gorm.DB, entry *entity.AuditLog) error {
	return conn(ctx, r.db, tx).Create(entry).Error
}
