package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Salis02/quiz-app-backend/internal/config"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/internal/seed"
	"github.com/Salis02/quiz-app-backend/pkg/database"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Read(configPath)
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

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), database.GormLogLevel(cfg.Server.Mode))
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	if err := database.MigrateDB(db, database.DefaultMigrationsSource, log); err != nil {
		log.Fatal("failed to migrate database", "error", err)
	}

	if err := seed.Run(context.Background(), db, log); err != nil {
		log.Fatal("seeding failed", "error", err)
	}
	log.Info("seeding completed",
		"admin", seed.AdminEmail+" / "+seed.AdminPassword,
		"user", seed.UserEmail+" / "+seed.UserPassword)
}
