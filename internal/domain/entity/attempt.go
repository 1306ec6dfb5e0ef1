package entity

import (
	"time"
)

// Attempt - одно прохождение викторины пользователем.
// Для пары (user_id, quiz_id) может существовать не более одной попытки с finished_at IS NULL,
// это гарантирует частичный уникальный индекс idx_attempts_active.
type Attempt struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	QuizID         uint       `gorm:"not null;index" json:"quiz_id"`
	Quiz           *Quiz      `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	Score          float64    `gorm:"not null;default:0" json:"score"`
	TotalQuestions int        `gorm:"not null;default:0" json:"total_questions"`
	CorrectAnswers int        `gorm:"not null;default:0" json:"correct_answers"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt     *time.Time `gorm:"index" json:"finished_at"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}

// IsActive возвращает true, пока попытка не завершена
func (a *Attempt) IsActive() bool {
	return a.FinishedAt == nil
}

// Duration возвращает длительность завершенной попытки
func (a *Attempt) Duration() time.Duration {
	if a.FinishedAt == nil {
		return 0
	}
	return a.FinishedAt.Sub(a.StartedAt)
}
