package db

import (
	"fmt"
	"strings"

	"sage-portal/confs"
	"sage-portal/entities"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database, sizes the pool and migrates the schema.
func Connect(s *confs.Settings, log *zap.Logger) (Database, error) {
	dialector, err := dialectorFor(s, log)
	if err != nil {
		return nil, err
	}

	gormLogLevel := logger.Warn
	if s.LogLevel == "debug" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.Default.LogMode(gormLogLevel),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if s.DBDriver == confs.DBDriverSQLite {
		// single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(0)
	}

	log.Info("database connection established", zap.String("driver", s.DBDriver))

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("database migrations completed")

	return &GormDatabase{DB: db}, nil
}

// Migrate creates or updates every portal table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(entities.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// OpenSQLite opens and migrates a SQLite database, e.g. ":memory:" in tests.
func OpenSQLite(path string) (Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// an in-memory database lives as long as its only connection
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &GormDatabase{DB: db}, nil
}

func dialectorFor(s *confs.Settings, log *zap.Logger) (gorm.Dialector, error) {
	switch s.DBDriver {
	case confs.DBDriverSQLite:
		log.Info("using sqlite database", zap.String("path", s.SQLitePath))
		return sqlite.Open(s.SQLitePath), nil
	case confs.DBDriverPostgres:
		return postgres.Open(PostgresDSN(s)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", s.DBDriver)
	}
}

// PostgresDSN prefers DB_URL and enforces TLS for remote hosts.
func PostgresDSN(s *confs.Settings) string {
	if s.DBURL != "" {
		dsn := s.DBURL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		return dsn
	}

	sslMode := "require"
	if s.DBHost == "localhost" || s.DBHost == "127.0.0.1" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort, sslMode)
}
