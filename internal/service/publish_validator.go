package service

import (
	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
)

// ValidateForPublish проверяет полноту викторины перед публикацией.
// Правила проверяются по порядку, возвращается первое нарушенное:
//  1. есть хотя бы один вопрос;
//  2. у каждого вопроса есть хотя бы один вариант;
//  3. у каждого вопроса есть хотя бы один правильный вариант.
//
// quiz должен быть загружен с вопросами и вариантами.
func ValidateForPublish(quiz *entity.Quiz) error {
	if len(quiz.Questions) == 0 {
		return &apperrors.PublishValidationError{Rule: apperrors.RuleNoQuestions}
	}
	for _, q := range quiz.Questions {
		if len(q.Options) == 0 {
			return &apperrors.PublishValidationError{
				Rule:         apperrors.RuleNoOptions,
				QuestionID:   q.ID,
				QuestionText: q.Text,
			}
		}
	}
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if !q.HasCorrectOption() {
			return &apperrors.PublishValidationError{
				Rule:         apperrors.RuleNoCorrectOption,
				QuestionID:   q.ID,
				QuestionText: q.Text,
			}
		}
	}
	return nil
}
