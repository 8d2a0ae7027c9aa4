package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/newrelic/go-agent/v3/integrations/nrpq" // Registers "nrpostgres" driver
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tripbook/internal/config"
	"tripbook/internal/domain"
)

// NewDatabase opens the PostgreSQL pool and the gorm handle on top of it.
// If nrApp is provided, it uses New Relic instrumented driver for automatic SQL tracing.
func NewDatabase(ctx context.Context, cfg config.DatabaseConfig, nrApp *newrelic.Application, logger *zap.Logger) (*gorm.DB, *sql.DB, error) {
	driverName := "postgres"
	if nrApp != nil {
		// The "nrpostgres" driver is registered by the nrpq import.
		driverName = "nrpostgres"
	}

	sqlDB, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database with %s: %w", driverName, err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	// Rotate connections so DB failovers are picked up.
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	// Verify connection.
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gdb, err := OpenGorm(sqlDB, logger)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(ctx, gdb); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
	}

	return gdb, sqlDB, nil
}

// OpenGorm wraps an existing pool. Service operations open their own
// transactions, so gorm's implicit per-write transaction is disabled.
func OpenGorm(sqlDB *sql.DB, logger *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return gdb, nil
}

// Migrate creates or extends the users, drivers and trips tables.
func Migrate(ctx context.Context, gdb *gorm.DB) error {
	if err := gdb.WithContext(ctx).AutoMigrate(&domain.User{}, &domain.Driver{}, &domain.Trip{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func newGormLogger(logger *zap.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{logger.Sugar()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// gormWriter routes gorm's log output through zap.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warnf(format, args...)
}
