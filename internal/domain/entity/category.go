package entity

import "time"

// Category группирует викторины по теме
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:500;not null;default:''" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// QuizCount заполняется только выборкой списка категорий
	QuizCount int64 `gorm:"->;-:migration" json:"quiz_count"`
}

// TableName определяет имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}
