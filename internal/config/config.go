package config

import (
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DatabaseDriverSQLite DatabaseDriver = "sqlite" // Local file database (default)
	DatabaseDriverMySQL  DatabaseDriver = "mysql"  // External MySQL server, DSN required
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // SQLite file path
		DSN      string // MySQL data source name
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	Auth struct {
		TokenSecret string        // HMAC secret for access tokens; generated at boot if empty
		TokenExpiry time.Duration // Lifetime of an access token
		TokenIssuer string
		BcryptCost  int
	}
	Log struct {
		Level      string
		File       string // Optional rotating log file, stdout only when empty
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Database defaults
	v.SetDefault("database_driver", string(DatabaseDriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")

	// Auth defaults
	v.SetDefault("auth_token_secret", "") // Auto-generated if empty
	v.SetDefault("auth_token_expiry", "30m")
	v.SetDefault("auth_token_issuer", "elibrary")
	v.SetDefault("auth_bcrypt_cost", 12)

	// Log defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 1)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 0)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Auth: Auth{
			TokenSecret: v.GetString("AUTH_TOKEN_SECRET"),
			TokenExpiry: v.GetDuration("AUTH_TOKEN_EXPIRY"),
			TokenIssuer: v.GetString("AUTH_TOKEN_ISSUER"),
			BcryptCost:  v.GetInt("AUTH_BCRYPT_COST"),
		},
		Log: Log{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
	}
}
