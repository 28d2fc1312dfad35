package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitPostgresql opens a pooled connection and checks it is reachable.
func InitPostgresql(ctx context.Context, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is empty")
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("get database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed")
	}
}
