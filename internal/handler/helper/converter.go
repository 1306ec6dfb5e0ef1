package helper

import (
	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

// QuestionOption - вариант ответа в том виде, в каком его видит участник: без признака правильности
type QuestionOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// ConvertOptionsToObjects отбрасывает is_correct. Участнику варианты отдаются только через эту функцию.
func ConvertOptionsToObjects(options []entity.Option) []QuestionOption {
	converted := make([]QuestionOption, len(options))
	for i, opt := range options {
		converted[i] = QuestionOption{ID: opt.ID, Text: opt.Text}
	}
	return converted
}
