package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Salis02/quiz-app-backend/internal/middleware"
	apperrors "github.com/Salis02/quiz-app-backend/internal/pkg/errors"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
)

// statusByKind - HTTP-статус для каждого вида ошибки
var statusByKind = map[string]int{
	apperrors.KindNotFound:         http.StatusNotFound,
	apperrors.KindNotPublished:     http.StatusForbidden,
	apperrors.KindPermissionDenied: http.StatusForbidden,
	apperrors.KindUnauthorized:     http.StatusUnauthorized,
	apperrors.KindAlreadyActive:    http.StatusConflict,
	apperrors.KindAlreadyAnswered:  http.StatusConflict,
	apperrors.KindNoActiveSession:  http.StatusConflict,
	apperrors.KindConflict:         http.StatusConflict,
	apperrors.KindValidation:       http.StatusBadRequest,
	apperrors.KindInvalidOption:    http.StatusBadRequest,
}

// errorResponder переводит ошибки сервисов в JSON-ответы
type errorResponder struct {
	log *logger.Logger
}

// respondError пишет ответ с полями error и error_type.
// Для непредвиденных ошибок текст скрыт; details добавляется только вне release-режима.
func (r errorResponder) respondError(c *gin.Context, err error) {
	kind := apperrors.Kind(err)
	status, known := statusByKind[kind]
	if !known {
		r.log.Error("internal server error",
			"method", c.Request.Method, "path", c.Request.URL.Path,
			"request_id", c.GetString(middleware.ContextRequestID), "error", err)
		body := gin.H{"error": "Internal server error", "error_type": apperrors.KindInternal}
		if gin.Mode() != gin.ReleaseMode {
			body["details"] = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		return
	}

	body := gin.H{"error": err.Error(), "error_type": kind}
	var pve *apperrors.PublishValidationError
	if errors.As(err, &pve) {
		body["rule"] = pve.Rule
		if pve.QuestionID != 0 {
			body["question_id"] = pve.QuestionID
			body["question_text"] = pve.QuestionText
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// respondBindError - тело запроса не прошло проверку binding
func (r errorResponder) respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":      err.Error(),
		"error_type": apperrors.KindValidation,
	})
}
