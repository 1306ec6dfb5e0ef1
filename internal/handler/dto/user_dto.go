package dto

import (
	"time"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
)

// UserResponse - публичные поля пользователя
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse - пользователь и access-токен
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // секунды
}

// NewUserResponse создает DTO пользователя
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// NewAuthResponse создает ответ регистрации/входа
func NewAuthResponse(u *entity.User, token string, expiresIn int) *AuthResponse {
	return &AuthResponse{
		User:        NewUserResponse(u),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}
}
