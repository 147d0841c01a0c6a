package main

import (
	"context"
	"log"

	"watchlens/adapters/postgres"
	"watchlens/internal/api"
	"watchlens/internal/config"
	"watchlens/internal/errors"
	"watchlens/internal/importer"
	"watchlens/internal/migration"
	"watchlens/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase connects to PostgreSQL and brings the schema up to date.
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}

	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	hub := api.NewSSEHub()

	historyRepo := postgres.NewHistoryRepository(db)
	importRepo := postgres.NewImportRepository(db)
	files := importer.NewLocalFileStorage(appConfig.Storage.UploadDir)

	worker := importer.NewWorker(historyRepo, importRepo, files, hub,
		appConfig.Import.ChunkSize, appConfig.Import.WorkerTimeout)

	server := ui.NewServer(appConfig, historyRepo, importRepo, files, hub, worker)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
