package dto

import (
	"time"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/handler/helper"
)

// CategoryResponse представляет категорию
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	QuizCount   int64     `json:"quiz_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryRef - краткая ссылка на категорию внутри викторины
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// QuizSummaryResponse - элемент списка викторин, без вопросов
type QuizSummaryResponse struct {
	ID            uint         `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Category      *CategoryRef `json:"category,omitempty"`
	Published     bool         `json:"published"`
	QuestionCount int64        `json:"question_count"`
	AttemptCount  int64        `json:"attempt_count,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// QuestionResponse - вопрос для участника. Варианты без is_correct.
type QuestionResponse struct {
	ID      uint                    `json:"id"`
	Text    string                  `json:"text"`
	Type    string                  `json:"type"`
	Options []helper.QuestionOption `json:"options"`
}

// QuizResponse - викторина для участника
type QuizResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Category    *CategoryRef       `json:"category,omitempty"`
	Questions   []QuestionResponse `json:"questions"`
}

// AdminOptionResponse - вариант с признаком правильности (автор, разбор после завершения)
type AdminOptionResponse struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// AdminQuestionResponse - вопрос с правильными ответами
type AdminQuestionResponse struct {
	ID      uint                  `json:"id"`
	QuizID  uint                  `json:"quiz_id"`
	Text    string                `json:"text"`
	Type    string                `json:"type"`
	Options []AdminOptionResponse `json:"options"`
}

// AdminQuizResponse - полная викторина для автора
type AdminQuizResponse struct {
	QuizSummaryResponse
	Questions []AdminQuestionResponse `json:"questions"`
}

// NewCategoryResponse создает DTO категории
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		QuizCount:   c.QuizCount,
		CreatedAt:   c.CreatedAt,
	}
}

// NewCategoryListResponse создает список DTO категорий
func NewCategoryListResponse(categories []entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}

func newCategoryRef(c *entity.Category) *CategoryRef {
	if c == nil {
		return nil
	}
	return &CategoryRef{ID: c.ID, Name: c.Name}
}

// NewQuizSummaryResponse создает DTO для списков
func NewQuizSummaryResponse(q *entity.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		Category:      newCategoryRef(q.Category),
		Published:     q.Published,
		QuestionCount: q.QuestionCount,
		AttemptCount:  q.AttemptCount,
		CreatedAt:     q.CreatedAt,
	}
}

// NewQuizListResponse создает список DTO викторин
func NewQuizListResponse(quizzes []entity.Quiz) []QuizSummaryResponse {
	out := make([]QuizSummaryResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, NewQuizSummaryResponse(&quizzes[i]))
	}
	return out
}

// NewQuestionResponse создает вопрос для участника
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:      q.ID,
		Text:    q.Text,
		Type:    q.Type,
		Options: helper.ConvertOptionsToObjects(q.Options),
	}
}

// NewQuizResponse создает викторину для участника
func NewQuizResponse(quiz *entity.Quiz) *QuizResponse {
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, NewQuestionResponse(&quiz.Questions[i]))
	}
	return &QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Category:    newCategoryRef(quiz.Category),
		Questions:   questions,
	}
}

// NewAdminOptionResponse создает вариант с признаком правильности
func NewAdminOptionResponse(o *entity.Option) AdminOptionResponse {
	return AdminOptionResponse{ID: o.ID, Text: o.Text, IsCorrect: o.IsCorrect}
}

// NewAdminQuestionResponse создает вопрос с правильными ответами
func NewAdminQuestionResponse(q *entity.Question) AdminQuestionResponse {
	options := make([]AdminOptionResponse, 0, len(q.Options))
	for i := range q.Options {
		options = append(options, NewAdminOptionResponse(&q.Options[i]))
	}
	return AdminQuestionResponse{ID: q.ID, QuizID: q.QuizID, Text: q.Text, Type: q.Type, Options: options}
}

// NewAdminQuizResponse создает полную викторину для автора
func NewAdminQuizResponse(quiz *entity.Quiz) *AdminQuizResponse {
	questions := make([]AdminQuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		questions = append(questions, NewAdminQuestionResponse(&quiz.Questions[i]))
	}
	summary := NewQuizSummaryResponse(quiz)
	summary.QuestionCount = int64(len(quiz.Questions))
	return &AdminQuizResponse{QuizSummaryResponse: summary, Questions: questions}
}
