package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Salis02/quiz-app-backend/internal/handler/dto"
	"github.com/Salis02/quiz-app-backend/internal/middleware"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/internal/service"
)

// QuizHandler обрабатывает запросы участников: каталог, попытки, ответы, история
type QuizHandler struct {
	errorResponder
	catalog       *service.CatalogService
	attempts      *service.AttemptService
	answers       *service.AnswerService
	resultService *service.ResultService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(
	catalog *service.CatalogService,
	attempts *service.AttemptService,
	answers *service.AnswerService,
	resultService *service.ResultService,
	log *logger.Logger,
) *QuizHandler {
	return &QuizHandler{
		errorResponder: errorResponder{log: log.With("handler", "QuizHandler")},
		catalog:        catalog,
		attempts:       attempts,
		answers:        answers,
		resultService:  resultService,
	}
}

// SubmitAnswerRequest - выбранный вариант
type SubmitAnswerRequest struct {
	OptionID uint `json:"option_id" binding:"required,min=1"`
}

// ListPublished возвращает опубликованные викторины
func (h *QuizHandler) ListPublished(c *gin.Context) {
	quizzes, err := h.catalog.ListPublishedQuizzes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizListResponse(quizzes))
}

// GetQuiz возвращает опубликованную викторину без правильных ответов
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	quiz, err := h.catalog.GetPublishedQuiz(c.Request.Context(), quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz))
}

// StartQuiz начинает попытку
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID, _ := middleware.UserID(c)

	res, err := h.attempts.Start(c.Request.Context(), userID, quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewStartAttemptResponse(res))
}

// FinishQuiz завершает попытку и возвращает балл
func (h *QuizHandler) FinishQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID, _ := middleware.UserID(c)

	res, err := h.attempts.Finish(c.Request.Context(), userID, quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewFinishAttemptResponse(res))
}

// ReviewQuiz возвращает разбор завершенной попытки
func (h *QuizHandler) ReviewQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint)
	userID, _ := middleware.UserID(c)

	res, err := h.attempts.Review(c.Request.Context(), userID, quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewResponse(res))
}

// SubmitAnswer записывает ответ на вопрос
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)
	userID, _ := middleware.UserID(c)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	res, err := h.answers.Submit(c.Request.Context(), userID, questionID, req.OptionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSubmitAnswerResponse(res))
}

// MyResults возвращает историю завершенных попыток пользователя
func (h *QuizHandler) MyResults(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	attempts, err := h.resultService.GetUserResults(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMyResultsResponse(attempts))
}
