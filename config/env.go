package config

import (
	"context"
	"os"
	"sync"

	commonerrors "github.com/VaultRelay/parachain-lib/common/errors"
	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

// Endpoint environment variables for the chains the library knows out of the
// box. Absence of the required variable is a configuration fault, never a
// silent default.
const (
	// AssetHubEndpointVar configures the asset settlement chain endpoint.
	AssetHubEndpointVar = "ASSET_HUB_RPC_URL"
	// ReviveEndpointVar configures the revive-capable chain endpoint.
	ReviveEndpointVar = "REVIVE_RPC_URL"
)

var (
	endpointVars = map[commontypes.ChainId]string{
		commontypes.AssetHub: AssetHubEndpointVar,
		commontypes.Revive:   ReviveEndpointVar,
	}
	endpointVarsMutex sync.RWMutex
)

// RegisterChainEndpointVar registers the environment variable holding the
// endpoint for an additional chain. Deployments call this once at startup for
// chains the library does not know out of the box.
//
// Parameters:
// - chainID: the logical chain identifier.
// - envVar: the environment variable name holding the endpoint URL.
func RegisterChainEndpointVar(chainID commontypes.ChainId, envVar string) {
	endpointVarsMutex.Lock()
	defer endpointVarsMutex.Unlock()

	endpointVars[chainID] = envVar
}

// EndpointVar returns the environment variable name configured for a chain.
//
// Parameters:
// - chainID: the logical chain identifier.
//
// Returns:
// - string: the environment variable name.
// - bool: false if the chain is unknown.
func EndpointVar(chainID commontypes.ChainId) (string, bool) {
	endpointVarsMutex.RLock()
	defer endpointVarsMutex.RUnlock()

	envVar, ok := endpointVars[chainID]
	return envVar, ok
}

// envEndpointSource resolves chain endpoints from the environment.
type envEndpointSource struct{}

// NewEnvEndpointSource creates an endpoint source backed by environment
// variables, one variable per registered chain.
//
// Returns:
// - commontypes.EndpointSource: the environment-backed endpoint source.
func NewEnvEndpointSource() commontypes.EndpointSource {
	return &envEndpointSource{}
}

// Endpoint returns the endpoint URL for the given chain from the environment.
//
// Parameters:
// - ctx: the context bounding the lookup; unused for environment reads.
// - chainID: the logical chain identifier.
//
// Returns:
// - string: the endpoint URL.
// - error: a MissingConfigurationError if the variable is unregistered or unset.
func (s *envEndpointSource) Endpoint(ctx context.Context, chainID commontypes.ChainId) (string, error) {
	envVar, ok := EndpointVar(chainID)
	if !ok {
		return "", &commonerrors.MissingConfigurationError{Chain: chainID}
	}

	endpoint := os.Getenv(envVar)
	if endpoint == "" {
		return "", &commonerrors.MissingConfigurationError{Chain: chainID, EnvVar: envVar}
	}

	return endpoint, nil
}
