package dbconfig

import (
	"context"

	"github.com/sirupsen/logrus"

	commontypes "github.com/VaultRelay/parachain-lib/common/types"
	"github.com/VaultRelay/parachain-lib/dbconfig/models"
)

// EndpointStore lists the endpoints recorded for a chain. *DBConfig satisfies
// this interface.
type EndpointStore interface {
	// GetEndpointsByChainID returns the endpoints for the chain, newest first.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	// - chainID: the logical chain identifier.
	// - activeOnly: a boolean flag to filter only active endpoints.
	//
	// Returns:
	// - []models.Endpoint: a slice of Endpoint models, newest first.
	// - error: an error if the lookup fails.
	GetEndpointsByChainID(ctx context.Context, chainID string, activeOnly bool) ([]models.Endpoint, error)
}

// dbEndpointSource resolves chain endpoints from the endpoints table, falling
// back to another source (typically the environment) when the table has no
// active row for the chain or the database is unreachable.
type dbEndpointSource struct {
	store    EndpointStore
	fallback commontypes.EndpointSource
	logger   *logrus.Logger
}

// NewEndpointSource creates an endpoint source backed by the database.
//
// Parameters:
// - store: the endpoint store queried first.
// - fallback: the source consulted when the store has no active endpoint; required.
// - logger: the logger for logging purposes.
//
// Returns:
// - commontypes.EndpointSource: the database-backed endpoint source.
func NewEndpointSource(store EndpointStore, fallback commontypes.EndpointSource, logger *logrus.Logger) commontypes.EndpointSource {
	return &dbEndpointSource{
		store:    store,
		fallback: fallback,
		logger:   logger,
	}
}

// Endpoint returns the most recently added active endpoint for the chain, or
// the fallback source's endpoint when the table has none. A store failure is
// logged before falling back, so a database outage stays visible even when
// the fallback answers.
//
// Parameters:
// - ctx: the context for managing the lookup.
// - chainID: the logical chain identifier.
//
// Returns:
// - string: the endpoint URL.
// - error: the fallback's error if neither source has an endpoint.
func (s *dbEndpointSource) Endpoint(ctx context.Context, chainID commontypes.ChainId) (string, error) {
	endpoints, err := s.store.GetEndpointsByChainID(ctx, chainID.String(), true)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"chain": chainID,
			"error": err,
		}).Warn("Failed to load endpoints from database, using fallback source")

		return s.fallback.Endpoint(ctx, chainID)
	}

	if len(endpoints) == 0 {
		return s.fallback.Endpoint(ctx, chainID)
	}

	return endpoints[0].URL, nil
}
