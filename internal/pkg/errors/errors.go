package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок аутентификации (нет токена, неверный пароль).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия
	// (например, админ пытается читать результаты чужой викторины).
	ErrForbidden = errors.New("permission denied")

	// ErrValidation используется для ошибок валидации входных данных и проверки перед публикацией.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния.
	ErrConflict = errors.New("resource state conflict")

	// ErrNotPublished - викторина существует, но недоступна участникам.
	ErrNotPublished = errors.New("quiz is not published")

	// ErrInvalidOption - выбранный вариант не принадлежит вопросу.
	ErrInvalidOption = errors.New("invalid option for this question")
)

// Уточнения ErrConflict. errors.Is(err, ErrConflict) для них возвращает true.
var (
	ErrAlreadyActive   = fmt.Errorf("%w: you already have an active attempt for this quiz", ErrConflict)
	ErrAlreadyAnswered = fmt.Errorf("%w: question already answered", ErrConflict)
	ErrNoActiveSession = fmt.Errorf("%w: no active quiz session", ErrConflict)
)

// Стабильные коды ошибок для поля error_type в ответах API.
const (
	KindNotFound         = "not_found"
	KindNotPublished     = "not_published"
	KindPermissionDenied = "permission_denied"
	KindUnauthorized     = "unauthorized"
	KindAlreadyActive    = "already_active"
	KindAlreadyAnswered  = "already_answered"
	KindNoActiveSession  = "no_active_session"
	KindConflict         = "conflict"
	KindValidation       = "validation_failed"
	KindInvalidOption    = "invalid_option"
	KindInternal         = "internal"
)

// Kind возвращает код ошибки. Более специфичные ошибки проверяются раньше общих.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotPublished):
		return KindNotPublished
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindPermissionDenied
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrAlreadyActive):
		return KindAlreadyActive
	case errors.Is(err, ErrAlreadyAnswered):
		return KindAlreadyAnswered
	case errors.Is(err, ErrNoActiveSession):
		return KindNoActiveSession
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidOption):
		return KindInvalidOption
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindInternal
	}
}

// Правила проверки викторины перед публикацией.
const (
	RuleNoQuestions     = "NO_QUESTIONS"
	RuleNoOptions       = "NO_OPTIONS"
	RuleNoCorrectOption = "NO_CORRECT_OPTION"
)

// PublishValidationError описывает первое нарушенное правило публикации.
type PublishValidationError struct {
	Rule         string
	QuestionID   uint
	QuestionText string
}

func (e *PublishValidationError) Error() string {
	switch e.Rule {
	case RuleNoQuestions:
		return "quiz must have at least one question"
	case RuleNoOptions:
		return fmt.Sprintf("question %q must have at least one option", e.QuestionText)
	case RuleNoCorrectOption:
		return fmt.Sprintf("question %q must have at least one correct answer", e.QuestionText)
	default:
		return "quiz is not ready for publishing"
	}
}

func (e *PublishValidationError) Unwrap() error { return ErrValidation }
