package substrate

import (
	"context"
	"sync"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

// substrateConnection is a live channel to a Substrate-family chain. It owns
// one RPC client and the capability prober for the metadata snapshot fetched
// at connect time.
type substrateConnection struct {
	chainID  commontypes.ChainId
	endpoint string
	logger   *logrus.Logger

	clientMutex sync.RWMutex       // Mutex for the RPC client.
	api         *gsrpc.SubstrateAPI // Substrate RPC client.

	proberMutex sync.RWMutex                // Mutex for the capability prober.
	prober      commontypes.CapabilityProber // Prober over the cached metadata snapshot.
}

// ChainID returns the logical chain identifier of the connection.
func (c *substrateConnection) ChainID() commontypes.ChainId {
	return c.chainID
}

// Endpoint returns the RPC endpoint the connection was dialed against.
func (c *substrateConnection) Endpoint() string {
	return c.endpoint
}

// Prober returns the capability prober for the currently cached metadata
// snapshot.
func (c *substrateConnection) Prober() commontypes.CapabilityProber {
	c.proberMutex.RLock()
	defer c.proberMutex.RUnlock()
	return c.prober
}

// Ping checks the connection by querying node health.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - error: an error if the client is not initialized or the node did not answer.
func (c *substrateConnection) Ping(ctx context.Context) error {
	c.clientMutex.RLock()
	api := c.api
	c.clientMutex.RUnlock()

	if api == nil {
		return errors.New("client not initialized")
	}

	_, err := api.RPC.System.Health()
	return err
}

// RefreshMetadata refetches the runtime metadata and swaps in a prober over
// the new snapshot. Capability flags obtained before the refresh are stale
// afterwards.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - error: an error if the metadata fetch fails or the version is unsupported.
func (c *substrateConnection) RefreshMetadata(ctx context.Context) error {
	c.clientMutex.RLock()
	api := c.api
	c.clientMutex.RUnlock()

	if api == nil {
		return errors.New("client not initialized")
	}

	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		return errors.Wrap(err, "failed to fetch runtime metadata")
	}

	prober, err := NewSnapshotProber(meta)
	if err != nil {
		return errors.Wrap(err, "failed to build capability prober")
	}

	c.proberMutex.Lock()
	c.prober = prober
	c.proberMutex.Unlock()

	c.logger.WithFields(logrus.Fields{
		"chain":    c.chainID,
		"endpoint": c.endpoint,
	}).Debug("Runtime metadata refreshed")

	return nil
}

// Close releases the underlying RPC client. Called only by the registry
// during teardown.
func (c *substrateConnection) Close() error {
	c.clientMutex.Lock()
	defer c.clientMutex.Unlock()

	if c.api == nil {
		return nil
	}

	c.api.Client.Close()
	c.api = nil
	return nil
}
