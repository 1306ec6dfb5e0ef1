package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceName и Version отдаются в /health
const ServiceName = "quiz-app-backend"

// Version задается при сборке через -ldflags
var Version = "dev"

// Health - проверка живости сервиса
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   ServiceName,
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
