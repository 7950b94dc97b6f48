package dbconfig

import (
	"context"
	"database/sql"

	"github.com/VaultRelay/parachain-lib/dbconfig/models"
)

// GetEndpointsByChainID returns all RPC endpoints for a given chain ID from the database,
// optionally filtering by active status.
//
// Parameters:
// - ctx: the context for managing the request.
// - chainID: the logical chain identifier.
// - activeOnly: a boolean flag to filter only active endpoints.
//
// Returns:
// - []models.Endpoint: a slice of Endpoint models, newest first.
// - error: an error if the database operation fails.
func (r *DBConfig) GetEndpointsByChainID(ctx context.Context, chainID string, activeOnly bool) ([]models.Endpoint, error) {
	if chainID == "" {
		return nil, ErrInvalidChainID
	}

	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	query := `
  		SELECT
  			id,
			chain_id,
			url,
			provider,
			active,
			created_at,
			updated_at
		FROM endpoints
		WHERE chain_id = $1
   `

	args := []interface{}{chainID}

	if activeOnly {
		query += " AND active = $2"
		args = append(args, true)
	}

	query += " ORDER BY created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer rows.Close()

	var endpoints []models.Endpoint
	for rows.Next() {
		var endpoint models.Endpoint
		var provider sql.NullString

		err := rows.Scan(
			&endpoint.ID,
			&endpoint.ChainID,
			&endpoint.URL,
			&provider,
			&endpoint.Active,
			&endpoint.CreatedAt,
			&endpoint.UpdatedAt,
		)
		if err != nil {
			return nil, ErrDatabaseConnect
		}

		if provider.Valid {
			endpoint.Provider = provider.String
		}

		endpoints = append(endpoints, endpoint)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrDatabaseConnect
	}

	return endpoints, nil
}
