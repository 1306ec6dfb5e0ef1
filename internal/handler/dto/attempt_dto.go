package dto

import (
	"time"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/handler/helper"
	"github.com/Salis02/quiz-app-backend/internal/service"
	"github.com/Salis02/quiz-app-backend/internal/service/scoring"
)

// StartAttemptResponse - ответ на начало попытки
type StartAttemptResponse struct {
	AttemptID uint          `json:"attempt_id"`
	StartedAt time.Time     `json:"started_at"`
	Quiz      *QuizResponse `json:"quiz"`
}

// SubmitAnswerResponse - ответ на запись ответа
type SubmitAnswerResponse struct {
	AnswerID    uint      `json:"answer_id"`
	QuestionID  uint      `json:"question_id"`
	OptionID    uint      `json:"option_id"`
	IsCorrect   bool      `json:"is_correct"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FinishAttemptResponse - итог попытки
type FinishAttemptResponse struct {
	AttemptID      uint      `json:"attempt_id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Score          float64   `json:"score"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

// ReviewQuestionResponse - вопрос в разборе. Правильность вариантов раскрывается
// только для вопросов, на которые пользователь уже ответил.
type ReviewQuestionResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"`
	// Options: []AdminOptionResponse для отвеченного вопроса, []helper.QuestionOption для остальных
	Options           interface{} `json:"options"`
	Answered          bool        `json:"answered"`
	ChosenOptionID    *uint       `json:"chosen_option_id"`
	AnsweredCorrectly bool        `json:"answered_correctly"`
}

// ReviewResponse - разбор завершенной попытки
type ReviewResponse struct {
	AttemptID      uint                     `json:"attempt_id"`
	QuizID         uint                     `json:"quiz_id"`
	QuizTitle      string                   `json:"quiz_title"`
	Score          float64                  `json:"score"`
	TotalQuestions int                      `json:"total_questions"`
	CorrectAnswers int                      `json:"correct_answers"`
	Questions      []ReviewQuestionResponse `json:"questions"`
}

// AttemptResultResponse - строка рейтинга по викторине
type AttemptResultResponse struct {
	Rank           int        `json:"rank"`
	AttemptID      uint       `json:"attempt_id"`
	UserID         uint       `json:"user_id"`
	UserName       string     `json:"user_name"`
	UserEmail      string     `json:"user_email"`
	Score          float64    `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
}

// QuizResultsResponse - отчет по викторине для автора
type QuizResultsResponse struct {
	Quiz       QuizSummaryResponse     `json:"quiz"`
	Statistics scoring.Stats           `json:"statistics"`
	Attempts   []AttemptResultResponse `json:"attempts"`
}

// MyResultResponse - завершенная попытка в истории пользователя
type MyResultResponse struct {
	AttemptID      uint       `json:"attempt_id"`
	QuizID         uint       `json:"quiz_id"`
	QuizTitle      string     `json:"quiz_title"`
	Score          float64    `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	StartedAt      time.Time  `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
}

// NewStartAttemptResponse создает ответ на начало попытки
func NewStartAttemptResponse(res *service.StartResult) *StartAttemptResponse {
	return &StartAttemptResponse{
		AttemptID: res.AttemptID,
		StartedAt: res.StartedAt,
		Quiz:      NewQuizResponse(res.Quiz),
	}
}

// NewSubmitAnswerResponse создает ответ на запись ответа
func NewSubmitAnswerResponse(res *service.SubmitResult) *SubmitAnswerResponse {
	return &SubmitAnswerResponse{
		AnswerID:    res.AnswerID,
		QuestionID:  res.QuestionID,
		OptionID:    res.OptionID,
		IsCorrect:   res.IsCorrect,
		SubmittedAt: res.SubmittedAt,
	}
}

// NewFinishAttemptResponse создает итог попытки
func NewFinishAttemptResponse(res *service.FinishResult) *FinishAttemptResponse {
	return &FinishAttemptResponse{
		AttemptID:      res.AttemptID,
		QuizID:         res.QuizID,
		QuizTitle:      res.QuizTitle,
		TotalQuestions: res.TotalQuestions,
		CorrectAnswers: res.CorrectAnswers,
		Score:          res.Score,
		StartedAt:      res.StartedAt,
		FinishedAt:     res.FinishedAt,
	}
}

// NewReviewResponse создает разбор попытки
func NewReviewResponse(res *service.ReviewResult) *ReviewResponse {
	questions := make([]ReviewQuestionResponse, 0, len(res.Quiz.Questions))
	for i := range res.Quiz.Questions {
		q := &res.Quiz.Questions[i]
		item := ReviewQuestionResponse{ID: q.ID, Text: q.Text, Type: q.Type}
		chosen, ok := res.ChosenOptions[q.ID]
		if !ok {
			// неотвеченный вопрос еще можно пройти в новой попытке
			item.Options = helper.ConvertOptionsToObjects(q.Options)
			questions = append(questions, item)
			continue
		}
		item.Options = NewAdminQuestionResponse(q).Options
		item.Answered = true
		item.ChosenOptionID = &chosen
		if opt := q.FindOption(chosen); opt != nil {
			item.AnsweredCorrectly = opt.IsCorrect
		}
		questions = append(questions, item)
	}
	return &ReviewResponse{
		AttemptID:      res.Attempt.ID,
		QuizID:         res.Quiz.ID,
		QuizTitle:      res.Quiz.Title,
		Score:          res.Attempt.Score,
		TotalQuestions: res.Attempt.TotalQuestions,
		CorrectAnswers: res.Attempt.CorrectAnswers,
		Questions:      questions,
	}
}

// NewAttemptResultResponse создает строку рейтинга. rank начинается с 1.
func NewAttemptResultResponse(rank int, a *entity.Attempt) AttemptResultResponse {
	res := AttemptResultResponse{
		Rank:           rank,
		AttemptID:      a.ID,
		UserID:         a.UserID,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		CorrectAnswers: a.CorrectAnswers,
		StartedAt:      a.StartedAt,
		FinishedAt:     a.FinishedAt,
	}
	if a.User != nil {
		res.UserName = a.User.Name
		res.UserEmail = a.User.Email
	}
	return res
}

// NewQuizResultsResponse создает отчет по викторине
func NewQuizResultsResponse(res *service.QuizResults) *QuizResultsResponse {
	attempts := make([]AttemptResultResponse, 0, len(res.Attempts))
	for i := range res.Attempts {
		attempts = append(attempts, NewAttemptResultResponse(i+1, &res.Attempts[i]))
	}
	return &QuizResultsResponse{
		Quiz:       NewQuizSummaryResponse(res.Quiz),
		Statistics: res.Statistics,
		Attempts:   attempts,
	}
}

// NewMyResultsResponse создает историю попыток пользователя
func NewMyResultsResponse(attempts []entity.Attempt) []MyResultResponse {
	out := make([]MyResultResponse, 0, len(attempts))
	for _, a := range attempts {
		item := MyResultResponse{
			AttemptID:      a.ID,
			QuizID:         a.QuizID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			CorrectAnswers: a.CorrectAnswers,
			StartedAt:      a.StartedAt,
			FinishedAt:     a.FinishedAt,
		}
		if a.Quiz != nil {
			item.QuizTitle = a.Quiz.Title
		}
		out = append(out, item)
	}
	return out
}
