package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Salis02/quiz-app-backend/internal/middleware"
)

// Handlers - все обработчики API
type Handlers struct {
	Auth   *AuthHandler
	Quiz   *QuizHandler
	Admin  *AdminHandler
	Result *ResultHandler
}

// RegisterRoutes регистрирует маршруты API. authLimit применяется к /api/auth/*.
func RegisterRoutes(router *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, authLimit gin.HandlerFunc) {
	router.GET("/health", Health)

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.Use(authLimit)
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
		}

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("/public", h.Quiz.ListPublished)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", h.Quiz.GetQuiz)

				authedQuizzes := quizWithID.Group("")
				authedQuizzes.Use(authMiddleware.RequireAuth())
				{
					authedQuizzes.POST("/start", h.Quiz.StartQuiz)
					authedQuizzes.POST("/finish", h.Quiz.FinishQuiz)
					authedQuizzes.GET("/review", h.Quiz.ReviewQuiz)
				}
			}
		}

		questions := api.Group("/questions/:id")
		questions.Use(middleware.ExtractUintParam("id", "questionID"), authMiddleware.RequireAuth())
		{
			questions.POST("/answer", h.Quiz.SubmitAnswer)
		}

		results := api.Group("/results")
		results.Use(authMiddleware.RequireAuth())
		{
			results.GET("/me", h.Quiz.MyResults)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/categories", h.Admin.CreateCategory)
			admin.GET("/categories", h.Admin.ListCategories)

			admin.POST("/quizzes", h.Admin.CreateQuiz)
			admin.GET("/quizzes", h.Admin.ListMyQuizzes)

			adminQuiz := admin.Group("/quizzes/:id")
			adminQuiz.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				adminQuiz.GET("", h.Admin.GetQuiz)
				adminQuiz.POST("/questions", h.Admin.AddQuestion)
				adminQuiz.PATCH("/publish", h.Admin.PublishQuiz)
				adminQuiz.PATCH("/unpublish", h.Admin.UnpublishQuiz)
			}

			admin.POST("/questions/:id/options", middleware.ExtractUintParam("id", "questionID"), h.Admin.AddOption)

			adminResults := admin.Group("/results/:quizId")
			adminResults.Use(middleware.ExtractUintParam("quizId", "quizID"))
			{
				adminResults.GET("", h.Result.GetQuizResults)
				adminResults.GET("/export", h.Result.ExportQuizResults)
			}
		}
	}
}
