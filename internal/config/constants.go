package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./elibrary.db"

	// DefaultTokenType is reported to clients alongside every issued access token
	DefaultTokenType = "bearer"
)
