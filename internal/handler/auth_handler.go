package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Salis02/quiz-app-backend/internal/handler/dto"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/internal/service"
)

// AuthHandler обрабатывает регистрацию и вход
type AuthHandler struct {
	errorResponder
	authService *service.AuthService
	expiresIn   int
}

// NewAuthHandler создает новый обработчик аутентификации.
// tokenTTLHours попадает в expires_in ответа.
func NewAuthHandler(authService *service.AuthService, tokenTTLHours int, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		errorResponder: errorResponder{log: log.With("handler", "AuthHandler")},
		authService:    authService,
		expiresIn:      tokenTTLHours * 3600,
	}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register обрабатывает запрос на регистрацию
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	res, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthResponse(res.User, res.Token, h.expiresIn))
}

// Login обрабатывает запрос на вход
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse(res.User, res.Token, h.expiresIn))
}
