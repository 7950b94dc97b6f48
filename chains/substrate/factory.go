package substrate

import (
	"context"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	commontypes "github.com/VaultRelay/parachain-lib/common/types"
)

// connectionFactory creates Substrate connections for the registry.
type connectionFactory struct {
	logger *logrus.Logger
}

// NewConnectionFactory creates a new connection factory instance.
//
// Parameters:
// - logger: the logger for logging purposes.
//
// Returns:
// - commontypes.ConnectionFactory: the new connection factory instance.
func NewConnectionFactory(logger *logrus.Logger) commontypes.ConnectionFactory {
	return &connectionFactory{
		logger: logger,
	}
}

// Connect dials the endpoint, performs the initial metadata fetch and returns
// a ready-to-use connection. No retry is performed; a failed attempt surfaces
// to the caller, who may try again from scratch.
//
// Parameters:
// - ctx: the context for managing the dial.
// - chainID: the logical chain identifier.
// - endpoint: the RPC endpoint URL.
//
// Returns:
// - commontypes.Connection: the live connection.
// - error: an error if dialing or the metadata fetch fails.
func (f *connectionFactory) Connect(ctx context.Context, chainID commontypes.ChainId, endpoint string) (commontypes.Connection, error) {
	api, err := gsrpc.NewSubstrateAPI(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial node")
	}

	conn := &substrateConnection{
		chainID:  chainID,
		endpoint: endpoint,
		logger:   f.logger,
		api:      api,
	}

	if err := conn.RefreshMetadata(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	f.logger.WithFields(logrus.Fields{
		"chain":    chainID,
		"endpoint": endpoint,
	}).Info("Chain connection established")

	return conn, nil
}
