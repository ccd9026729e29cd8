package infra

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gompa/internal/models/db_models"
	"gompa/internal/repositories"
)

func InitPostgresql(log *zap.Logger) (*gorm.DB, error) {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_URL is empty")
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Error("Error connecting to database", zap.Error(err))
		return nil, err
	}
	return connectionPool, nil
}

// Migrate creates the tables and seeds the landmark catalog.
func Migrate(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(&db_models.Landmark{}, &db_models.BookingRequest{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := repositories.NewLandmarkRepository(db).Upsert(ctx, DefaultLandmarks); err != nil {
		return fmt.Errorf("seed landmarks: %w", err)
	}
	log.Info("database migrated", zap.Int("landmarks", len(DefaultLandmarks)))
	return nil
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("Error closing database connection", zap.Error(err))
	} else {
		log.Info("PostgreSQL database connection closed successfully")
	}
}
