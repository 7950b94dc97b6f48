package dbconfig

import "github.com/pkg/errors"

var (
	ErrInvalidChainID    = errors.New("invalid chain id")
	ErrInvalidConnString = errors.New("invalid database connection string")
	ErrDatabaseConnect   = errors.New("failed to connect to database")
)
