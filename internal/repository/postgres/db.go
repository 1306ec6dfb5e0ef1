package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
)

// conn возвращает транзакцию, если она передана, иначе базовое соединение
func conn(ctx context.Context, db, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// withLock добавляет FOR SHARE / FOR UPDATE. SQLite блокировки строк не поддерживает,
// его диалект пропускает это выражение.
func withLock(q *gorm.DB, lock repository.LockStrength) *gorm.DB {
	switch lock {
	case repository.LockShare:
		return q.Clauses(clause.Locking{Strength: "SHARE"})
	case repository.LockUpdate:
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	default:
		return q
	}
}

// notFound переводит gorm.ErrRecordNotFound в apperrors.ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

// translateWrite переводит нарушение уникальности в repository.ErrDuplicate
func translateWrite(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}

// isUniqueViolation проверяет unique violation (23505) для pgconn и lib/pq драйверов,
// а также переведенную gorm ошибку (TranslateError: true)
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
