package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/pkg/auth"
)

// Ключи gin.Context, которые заполняет RequireAuth
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// TokenParser проверяет access-токен (реализуется auth.JWTService)
type TokenParser interface {
	ParseToken(tokenString string) (*auth.JWTCustomClaims, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	tokens TokenParser
}

// NewAuthMiddleware создает middleware аутентификации
func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// RequireAuth проверяет заголовок Authorization: Bearer {token}
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", "token_missing")
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c, "Authorization header format must be Bearer {token}", "token_format")
			return
		}

		claims, err := m.tokens.ParseToken(parts[1])
		if err != nil {
			errType := "token_invalid"
			if errors.Is(err, auth.ErrTokenExpired) {
				errType = "token_expired"
			}
			abortUnauthorized(c, "Invalid or expired token", errType)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AdminOnly пропускает только пользователей с ролью ADMIN. Применяется после RequireAuth.
func (m *AuthMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			abortUnauthorized(c, "Unauthorized", apperrors.KindUnauthorized)
			return
		}
		if c.GetString(ContextRole) != entity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Admin rights required",
				"error_type": apperrors.KindPermissionDenied,
			})
			return
		}
		c.Next()
	}
}

// UserID возвращает ID аутентифицированного пользователя из контекста
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func abortUnauthorized(c *gin.Context, msg, errType string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "error_type": errType})
}
