package entity

import (
	"time"
)

// Answer - неизменяемый ответ пользователя на вопрос.
// Уникальность (user_id, question_id) обеспечивается индексом idx_answers_user_question.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_answers_user_question" json:"user_id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_answers_user_question;index" json:"question_id"`
	OptionID   uint      `gorm:"not null;index" json:"option_id"`
	Option     *Option   `gorm:"foreignKey:OptionID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Answer) TableName() string {
	return "answers"
}
