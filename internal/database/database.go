package database

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/elibrary/internal/config"
	"github.com/mrlokans/elibrary/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the configured store and creates the schema.
func NewDatabase(cfg config.Database, log *zap.Logger) (*Database, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("Database initialized",
		zap.String("driver", string(cfg.Driver)),
		zap.String("path", cfg.Path),
	)

	return &Database{DB: db}, nil
}

// Migrate creates or updates all library tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entities.User{},
		&entities.Book{},
		&entities.Bookmark{},
		&entities.Note{},
		&entities.UserPreferences{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func newDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DatabaseDriverSQLite, "":
		return sqlite.Open(SQLiteDSN(cfg.Path)), nil
	case config.DatabaseDriverMySQL:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for driver %q", cfg.Driver)
		}
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN appends the pragma that makes SQLite enforce foreign keys, so
// cascading deletes of users and books reach bookmarks and notes.
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
