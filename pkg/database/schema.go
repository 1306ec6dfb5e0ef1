package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

// Индексы, которые gorm не выражает тегами. Синтаксис общий для PostgreSQL и SQLite.
var partialIndexes = []string{
	// не более одной активной попытки на пару (user, quiz)
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_attempts_active ON attempts (user_id, quiz_id) WHERE finished_at IS NULL`,
}

// Models возвращает все таблицы схемы в порядке зависимостей
func Models() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.Category{},
		&entity.Quiz{},
		&entity.Question{},
		&entity.Option{},
		&entity.Attempt{},
		&entity.Answer{},
		&entity.AuditLog{},
	}
}

// AutoMigrate создает схему средствами gorm. Используется в тестах (SQLite)
// и для локального запуска без golang-migrate; в production схема ведется миграциями.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
