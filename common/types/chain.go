package types

import (
	"context"
)

// ChainId identifies a logical remote chain (e.g. a parachain). It is the
// registry key and stays stable for the process lifetime.
type ChainId string

const (
	// AssetHub represents the asset settlement parachain.
	AssetHub ChainId = "asset-hub"
	// Revive represents the revive-capable contracts parachain.
	Revive ChainId = "revive"
)

// String converts ChainId to string representation.
func (c ChainId) String() string {
	return string(c)
}

// Connection represents one live channel to a chain. Connections are owned
// exclusively by the registry; callers borrow them for the duration of one
// operation and never close them directly.
type Connection interface {
	// ChainID returns the logical chain identifier of the connection.
	ChainID() ChainId

	// Endpoint returns the RPC endpoint the connection was dialed against.
	Endpoint() string

	// Prober returns the capability prober for the currently cached metadata
	// snapshot. The snapshot is replaced by RefreshMetadata.
	Prober() CapabilityProber

	// Ping checks that the connection is alive.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	//
	// Returns:
	// - error: an error if the node did not answer the health probe.
	Ping(ctx context.Context) error

	// RefreshMetadata refetches the runtime metadata and rebuilds the
	// capability prober. Must be called after an observed runtime upgrade,
	// since call shapes can change between upgrades.
	//
	// Parameters:
	// - ctx: the context for managing the request.
	//
	// Returns:
	// - error: an error if the metadata fetch or decode fails.
	RefreshMetadata(ctx context.Context) error

	// Close releases the underlying transport. Called only by the registry
	// during teardown.
	Close() error
}

// ConnectionFactory creates live connections for the registry.
type ConnectionFactory interface {
	// Connect dials the endpoint and prepares a ready-to-use connection,
	// including the initial metadata fetch. No retry is performed; a failed
	// attempt surfaces to the caller.
	//
	// Parameters:
	// - ctx: the context for managing the dial.
	// - chainID: the logical chain identifier.
	// - endpoint: the RPC endpoint URL.
	//
	// Returns:
	// - Connection: the live connection.
	// - error: an error if dialing or the metadata fetch fails.
	Connect(ctx context.Context, chainID ChainId, endpoint string) (Connection, error)
}

// EndpointSource resolves the RPC endpoint configured for a chain.
type EndpointSource interface {
	// Endpoint returns the endpoint URL for the given chain.
	//
	// Parameters:
	// - ctx: the context bounding the lookup (some sources query a database).
	// - chainID: the logical chain identifier.
	//
	// Returns:
	// - string: the endpoint URL.
	// - error: a MissingConfigurationError if no endpoint is configured.
	Endpoint(ctx context.Context, chainID ChainId) (string, error)
}

// HealthStatus is the structured result of a registry health probe. It is
// always produced, even when configuration is missing or the dial failed.
type HealthStatus struct {
	ChainID   ChainId
	Connected bool
	Endpoint  string
	Error     string
}

// Registry manages at most one live connection per logical chain.
type Registry interface {
	// GetOrCreate returns the existing connection for the chain or lazily
	// dials a new one. Idempotent per ChainId; concurrent first-time callers
	// for the same ChainId share a single dial attempt.
	//
	// Parameters:
	// - ctx: the context for managing the dial.
	// - chainID: the logical chain identifier.
	//
	// Returns:
	// - Connection: the live connection.
	// - error: a MissingConfigurationError or NetworkError on failure.
	GetOrCreate(ctx context.Context, chainID ChainId) (Connection, error)

	// Health probes the chain connection and reports a structured status.
	// Never returns an error.
	//
	// Parameters:
	// - ctx: the context for managing the probe.
	// - chainID: the logical chain identifier.
	//
	// Returns:
	// - HealthStatus: the structured health result.
	Health(ctx context.Context, chainID ChainId) HealthStatus

	// Teardown disconnects every registered connection, logging individual
	// close failures without propagating them, and clears the registry.
	Teardown()
}
