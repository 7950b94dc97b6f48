package dbconfig

import (
	_ "github.com/lib/pq"
)

// DBConfig holds the connection string for the endpoints database. Each query
// opens its own connection, so a DBConfig is safe for concurrent use.
type DBConfig struct {
	dbConnStr string
}

// NewDBConfig creates a new DBConfig instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string; must be non-empty.
//
// Returns:
// - *DBConfig: a pointer to the newly created DBConfig instance.
// - error: ErrInvalidConnString if the connection string is empty.
func NewDBConfig(connStr string) (*DBConfig, error) {
	if connStr == "" {
		return nil, ErrInvalidConnString
	}

	return &DBConfig{
		dbConnStr: connStr,
	}, nil
}
