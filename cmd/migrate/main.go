package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/Salis02/quiz-app-backend/internal/config"
	"github.com/Salis02/quiz-app-backend/internal/pkg/logger"
	"github.com/Salis02/quiz-app-backend/pkg/database"
)

// Утилита миграций: up, down [-steps N], force -version N, version.
// Настройки подключения берутся из того же config.yaml и DATABASE_* переменных, что и у API.
func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "path to config file")
	source := flag.String("source", database.DefaultMigrationsSource, "migrations source URL")
	steps := flag.Int("steps", 0, "number of migrations to roll back for 'down' (0 = all)")
	version := flag.Int("version", -1, "version for 'force'")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "up"
	}

	cfg, err := config.Read(*configPath)
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

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Fatal("failed to open database", "error", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("database is unreachable", "error", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("failed to create migrate driver", "error", err)
	}
	m, err := migrate.NewWithDatabaseInstance(*source, "postgres", driver)
	if err != nil {
		log.Fatal("failed to create migrator", "source", *source, "error", err)
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "force":
		if *version < 0 {
			log.Fatal("force requires -version")
		}
		// Снимает dirty-флаг после неудачной миграции
		err = m.Force(*version)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal("failed to read version", "error", verr)
		}
		log.Info("current migration version", "version", v, "dirty", dirty)
		return
	default:
		log.Fatal("unknown command, expected up, down, force or version", "command", cmd)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no change")
		return
	}
	if err != nil {
		log.Fatal("migration failed", "command", cmd, "error", err)
	}
	log.Info("migration completed", "command", cmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
