package db

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/webstack/services/backend/pkg/retry"
)

const (
	connectAttempts = 5
	connectBackoff  = 3 * time.Second
)

// DB wraps the GORM database connection.
type DB struct {
	*gorm.DB
}

// Connect opens a PostgreSQL connection, retrying up to five times with a
// three second pause between attempts. The DSN carries the connect timeout.
// When every attempt fails the returned error wraps
// retry.ErrAttemptsExhausted; callers treat that as fatal at startup.
func Connect(ctx context.Context, dsn string, log *zap.Logger) (*DB, error) {
	var gormDB *gorm.DB

	attempt := 0
	err := retry.Do(ctx, connectAttempts, connectBackoff, func() error {
		attempt++
		var err error
		gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:                 gormlogger.Default.LogMode(gormlogger.Warn),
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
		if err != nil {
			log.Warn("Database connection failed",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", connectAttempts),
				zap.Error(err),
			)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &DB{DB: gormDB}, nil
}

// Ping probes database reachability with a short deadline.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
