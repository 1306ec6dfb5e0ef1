package entity

import (
	"time"
)

// Quiz представляет викторину
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000;not null;default:''" json:"description"`
	CategoryID  *uint      `gorm:"index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedBy   uint       `gorm:"not null;index" json:"created_by"`
	Creator     *User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Вычисляемые поля, заполняются подзапросами в списках
	QuestionCount int64 `gorm:"->;-:migration" json:"question_count"`
	AttemptCount  int64 `gorm:"->;-:migration" json:"attempt_count"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// IsOwnedBy проверяет, создана ли викторина указанным пользователем
func (q *Quiz) IsOwnedBy(userID uint) bool {
	return q.CreatedBy == userID
}
