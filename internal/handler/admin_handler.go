package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Salis02/quiz-app-backend/internal/handler/dto"
	"github.com/Salis02/quiz-app-backend/internal/middleware"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/internal/service"
)

// AdminHandler - авторинг: категории, викторины, вопросы, публикация
type AdminHandler struct {
	errorResponder
	adminService *service.AdminService
}

// NewAdminHandler создает новый обработчик авторинга
func NewAdminHandler(adminService *service.AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		errorResponder: errorResponder{log: log.With("handler", "AdminHandler")},
		adminService:   adminService,
	}
}

// CreateCategoryRequest представляет запрос на создание категории
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// CreateQuizRequest представляет запрос на создание викторины
type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=200"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	CategoryID  *uint  `json:"category_id" binding:"omitempty,min=1"`
}

// OptionRequest - вариант ответа
type OptionRequest struct {
	Text      string `json:"text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// AddQuestionRequest представляет запрос на добавление вопроса
type AddQuestionRequest struct {
	Text    string          `json:"text" binding:"required,min=3,max=1000"`
	Type    string          `json:"type" binding:"omitempty,oneof=MCQ TRUE_FALSE MULTIPLE_CHOICE"`
	Options []OptionRequest `json:"options" binding:"omitempty,dive"`
}

// CreateCategory создает категорию
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	category, err := h.adminService.CreateCategory(c.Request.Context(), adminID, service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCategoryResponse(category))
}

// ListCategories возвращает категории с количеством викторин
func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.adminService.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategoryListResponse(categories))
}

// CreateQuiz создает неопубликованную викторину
func (h *AdminHandler) CreateQuiz(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	quiz, err := h.adminService.CreateQuiz(c.Request.Context(), adminID, service.CreateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAdminQuizResponse(quiz))
}

// ListMyQuizzes возвращает викторины текущего администратора
func (h *AdminHandler) ListMyQuizzes(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	quizzes, err := h.adminService.ListMyQuizzes(c.Request.Context(), adminID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizListResponse(quizzes))
}

// GetQuiz возвращает викторину автору вместе с правильными ответами
func (h *AdminHandler) GetQuiz(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.adminService.GetQuiz(c.Request.Context(), adminID, quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAdminQuizResponse(quiz))
}

// AddQuestion добавляет вопрос в викторину
func (h *AdminHandler) AddQuestion(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	quizID := c.MustGet("quizID").(uint)

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	in := service.AddQuestionInput{Text: req.Text, Type: req.Type}
	for _, o := range req.Options {
		in.Options = append(in.Options, service.OptionInput{Text: o.Text, IsCorrect: o.IsCorrect})
	}
	question, err := h.adminService.AddQuestion(c.Request.Context(), adminID, quizID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAdminQuestionResponse(question))
}

// AddOption добавляет вариант ответа к вопросу
func (h *AdminHandler) AddOption(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	questionID := c.MustGet("questionID").(uint)

	var req OptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	option, err := h.adminService.AddOption(c.Request.Context(), adminID, questionID, service.OptionInput{
		Text:      req.Text,
		IsCorrect: req.IsCorrect,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAdminOptionResponse(option))
}

// PublishQuiz публикует викторину после проверки полноты
func (h *AdminHandler) PublishQuiz(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.adminService.PublishQuiz(c.Request.Context(), adminID, quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAdminQuizResponse(quiz))
}

// UnpublishQuiz снимает викторину с публикации
func (h *AdminHandler) UnpublishQuiz(c *gin.Context) {
	adminID, _ := middleware.UserID(c)
	quizID := c.MustGet("quizID").(uint)

	quiz, err := h.adminService.UnpublishQuiz(c.Request.Context(), adminID, quizID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizSummaryResponse(quiz))
}
