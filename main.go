package main

import (
	"fmt"
	"os"
	"time"

	"spotify-behavior-analysis/config"
	"spotify-behavior-analysis/dataset"
	"spotify-behavior-analysis/models"
	"spotify-behavior-analysis/services"
	"spotify-behavior-analysis/storage"
	"spotify-behavior-analysis/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Spotify User Behavior Analysis starting ===")
	logger.Info("Config — input: %s | output: %s | postgres: %v",
		cfg.InputPath, cfg.CSVOutputPath, cfg.PostgresEnabled)

	raw, err := dataset.Load(cfg.InputPath)
	if err != nil {
		logger.Error("Dataset load failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Loaded %d raw rows from %s", len(raw), cfg.InputPath)

	cleaner := services.NewCleaner(logger)
	records, err := cleaner.Clean(raw)
	if err != nil {
		logger.Error("Cleaning failed: %v", err)
		os.Exit(1)
	}

	engineer := services.NewFeatureEngineer(logger)
	records, _ = engineer.Engineer(records)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.Write(records); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Cleaned dataset saved to %s", cfg.CSVOutputPath)
	}
	if err := csvWriter.Close(); err != nil {
		logger.Warn("CSV close failed: %v", err)
	}

	analysisRecords := records
	if cfg.PostgresEnabled {
		analysisRecords = persistToPostgres(cfg, logger, records)
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(analysisRecords)
	insightSvc.Print(report)

	modeler := services.NewModeler(logger)
	botModel, streamModel := modeler.FitAll(analysisRecords)
	modeler.Print(botModel)
	modeler.Print(streamModel)

	fmt.Printf("  Done. Clean data → %s\n\n", cfg.CSVOutputPath)
}

// persistToPostgres stores the cleaned records and reads them back so the
// analysis runs over what the database holds. Any failure degrades to the
// in-memory records; the pipeline itself never depends on the database.
func persistToPostgres(cfg *config.Config, logger *utils.Logger, records []*models.UserRecord) []*models.UserRecord {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		return records
	}
	defer pgWriter.Close()

	retrier := &utils.Retrier{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Second,
		Logger:      logger,
	}
	if err := retrier.Do("postgres write", func() error {
		return pgWriter.Write(records)
	}); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return records
	}
	logger.Info("Clean records stored in PostgreSQL (table: users)")

	dbRecords, err := pgWriter.FetchAll()
	if err != nil || len(dbRecords) == 0 {
		logger.Warn("Failed to fetch records from DB for analysis: %v", err)
		return records
	}
	return dbRecords
}
