package db

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"lexium/config"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // registers the "libsql" database/sql driver
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the store selected by cfg.DBDriver.
// SQLite runs in WAL mode with foreign keys enforced.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// Determine log level based on environment
	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Warn
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.DBDriver == config.DBDriverPostgres {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}

	log.Info("Database connection established", zap.String("driver", cfg.DBDriver))
	return database, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DBDriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	case config.DBDriverPostgres:
		return postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		}), nil
	case config.DBDriverLibSQL:
		return sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        LibSQLDSN(cfg.TursoDatabaseURL, cfg.TursoAuthToken),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// SQLiteDSN builds the connection string for a local SQLite file
func SQLiteDSN(path string) string {
	return path + "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"
}

// LibSQLDSN appends the Turso auth token to the database URL when one is configured
func LibSQLDSN(databaseURL, authToken string) string {
	if authToken == "" {
		return databaseURL
	}
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	q := u.Query()
	q.Set("authToken", authToken)
	u.RawQuery = q.Encode()
	return u.String()
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(database *gorm.DB, models ...interface{}) error {
	if database == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := database.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection
func Close(database *gorm.DB) error {
	if database == nil {
		return nil
	}

	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
