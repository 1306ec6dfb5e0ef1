package entity

import (
	"time"
)

// Типы вопросов
const (
	QuestionTypeMCQ            = "MCQ"
	QuestionTypeTrueFalse      = "TRUE_FALSE"
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"
)

// Question представляет вопрос в викторине
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	Text      string    `gorm:"size:1000;not null" json:"text"`
	Type      string    `gorm:"size:20;not null;default:'MCQ'" json:"type"`
	Options   []Option  `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsValidQuestionType проверяет допустимость типа вопроса
func IsValidQuestionType(t string) bool {
	switch t {
	case QuestionTypeMCQ, QuestionTypeTrueFalse, QuestionTypeMultipleChoice:
		return true
	}
	return false
}

// FindOption возвращает вариант ответа этого вопроса по ID или nil
func (q *Question) FindOption(optionID uint) *Option {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// HasCorrectOption проверяет, отмечен ли хотя бы один вариант правильным
func (q *Question) HasCorrectOption() bool {
	for _, o := range q.Options {
		if o.IsCorrect {
			return true
		}
	}
	return false
}
