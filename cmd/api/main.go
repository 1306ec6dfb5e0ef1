package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Salis02/quiz-app-backend/internal/config"
	"github.com/Salis02/quiz-app-backend/internal/domain/repository"
	"github.com/Salis02/quiz-app-backend/internal/handler"
	"github.com/Salis02/quiz-app-backend/internal/middleware"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	pgRepo "github.com/Salis02/quiz-app-backend/internal/repository/postgres"
	redisRepo "github.com/Salis02/quiz-app-backend/internal/repository/redis"
	"github.com/Salis02/quiz-app-backend/internal/service"
	"github.com/Salis02/quiz-app-backend/pkg/auth"
	"github.com/Salis02/quiz-app-backend/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	gin.SetMode(cfg.Server.Mode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL и миграции
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), database.GormLogLevel(cfg.Server.Mode))
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := database.MigrateDB(db, database.DefaultMigrationsSource, log); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	// Redis необязателен: без него нет кеша каталога и лимита на /api/auth
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("failed to connect to Redis", "error", err)
		}
		defer redisClient.Close()

		repo, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Fatal("failed to initialize CacheRepo", "error", err)
		}
		cacheRepo = repo
		log.Info("connected to Redis", "mode", cfg.Redis.Mode)
	} else {
		log.Warn("Redis disabled: catalog cache and auth rate limit are off")
	}

	// Репозитории
	userRepo := pgRepo.NewUserRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	auditRepo := pgRepo.NewAuditRepo(db)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, log)
	if err != nil {
		log.Fatal("failed to initialize JWT service", "error", err)
	}

	// Сервисы
	audit := service.NewAuditLogger(auditRepo, log)
	catalog := service.NewCatalogService(quizRepo, cacheRepo,
		time.Duration(cfg.Cache.PublicQuizzesTTLSec)*time.Second, log)
	attemptService := service.NewAttemptService(db, catalog, quizRepo, questionRepo, attemptRepo, answerRepo, audit, log)
	answerService := service.NewAnswerService(db, questionRepo, attemptRepo, answerRepo, audit, log)
	adminService := service.NewAdminService(db, categoryRepo, quizRepo, questionRepo, catalog, audit, log)
	resultService := service.NewResultService(quizRepo, attemptRepo)
	authService := service.NewAuthService(userRepo, jwtService, audit, log)

	// Роутер
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log))

	// В release не доверяем прокси-заголовкам, в разработке доверяем localhost
	trusted := []string{"127.0.0.1", "::1"}
	if cfg.Server.IsRelease() {
		trusted = nil
	}
	if err := router.SetTrustedProxies(trusted); err != nil {
		log.Warn("failed to set trusted proxies", "error", err)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: !containsWildcard(cfg.CORS.AllowOrigins),
		MaxAge:           12 * time.Hour,
	}))

	limiter := middleware.NewRateLimiter(cacheRepo, log)
	authLimit := limiter.Limit(middleware.AuthRateLimitConfig(
		cfg.RateLimit.AuthMaxRequests,
		time.Duration(cfg.RateLimit.AuthWindowSec)*time.Second,
	))

	handler.RegisterRoutes(router, handler.Handlers{
		Auth:   handler.NewAuthHandler(authService, cfg.JWT.ExpirationHrs, log),
		Quiz:   handler.NewQuizHandler(catalog, attemptService, answerService, resultService, log),
		Admin:  handler.NewAdminHandler(adminService, log),
		Result: handler.NewResultHandler(resultService, log),
	}, middleware.NewAuthMiddleware(jwtService), authLimit)

	// HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server exited properly")
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
