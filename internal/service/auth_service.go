package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Salis02/quiz-app-backend/internal/domain/entity"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

// TokenIssuer выпускает токены доступа (реализуется auth.JWTService)
type TokenIssuer interface {
	GenerateToken(user *entity.User) (string, error)
}

// RegisterInput содержит данные для регистрации
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult - пользователь и выданный токен
type AuthResult struct {
	User  *entity.User
	Token string
}

// AuthService - регистрация и вход по email/паролю
type AuthService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	audit    *AuditLogger
	log      *logger.Logger
}

// NewAuthService создает AuthService
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, audit *AuditLogger, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		audit:    audit,
		log:      log.With("service", "AuthService"),
	}
}

// Register создает пользователя с ролью USER и сразу выдает токен
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)

	if len([]rune(in.Name)) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", apperrors.ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email format", apperrors.ErrValidation)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	user := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password, // хешируется в User.BeforeSave
		Role:     entity.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.audit.Record(ctx, nil, user.ID, entity.AuditRegister, entity.EntityUser, user.ID)

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	s.log.Info("user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login проверяет email и пароль. Любая неудача - одна и та же ошибка ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.log.Debug("login: unknown email", "email", email)
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		s.log.Debug("login: wrong password", "user_id", user.ID)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	s.audit.Record(ctx, nil, user.ID, entity.AuditLogin, entity.EntityUser, user.ID)

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// normalizeEmail приводит email к стандартному виду: trim пробелов + lowercase
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
