package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/config"
	"github.com/pageza/workwise/backend/internal/database"
	"github.com/pageza/workwise/backend/internal/logger"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	migrationsDir := flag.String("dir", "migrations", "Directory holding the migration files")
	flag.Parse()

	log := logger.Must(config.GetEnvironment())
	defer func() { _ = log.Sync() }()

	// DATABASE_URL wins over the DB_* settings
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal("DATABASE_URL is not set and configuration could not be loaded", zap.Error(err))
		}
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("database is not reachable", zap.Error(err))
	}

	if *rollback {
		name, err := database.RollbackLast(ctx, db, *migrationsDir, log)
		if errors.Is(err, database.ErrNothingToRollback) {
			log.Info("no migrations to rollback")
			return
		}
		if err != nil {
			log.Fatal("rollback failed", zap.Error(err))
		}
		log.Info("rollback complete", zap.String("migration", name))
		return
	}

	applied, err := database.ApplyMigrations(ctx, db, *migrationsDir, log)
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations complete", zap.Int("applied", len(applied)))
}
