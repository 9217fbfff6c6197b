package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"

	"github.com/quickserve/go-sales-cache/internal/httpapi"
	"github.com/quickserve/go-sales-cache/internal/seed"
	"github.com/quickserve/go-sales-cache/pkg/di"
	"github.com/quickserve/go-sales-cache/store"
)

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := context.Background()

	db, err := openDatabase()
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	container, err := di.NewContainerWithDefaults(db)
	if err != nil {
		logger.Error("container init failed", "error", err)
		os.Exit(1)
	}

	if os.Getenv("SEED_ON_START") == "true" {
		if err := seed.New(db).Seed(ctx); err != nil {
			logger.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		logger.Info("seeded demo data")
	}

	router := httpapi.NewRouter(container.Reports())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func openDatabase() (*bun.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return store.OpenPostgres(dsn)
	}
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "sales.db"
	}
	return store.OpenSQLite(path)
}
