package repository

import "errors"

// ErrDuplicate возвращается реализациями при нарушении уникального ограничения.
// Сервисы переводят ее в доменный конфликт (AlreadyActive, AlreadyAnswered и т.д.).
var ErrDuplicate = errors.New("duplicate key violates unique constraint")

// LockStrength задает блокировку строки при чтении внутри транзакции
type LockStrength int

const (
	LockNone LockStrength = iota
	// LockShare - FOR SHARE: запись ответа не пересекается с завершением попытки
	LockShare
	// LockUpdate - FOR UPDATE: завершение попытки
	LockUpdate
)
