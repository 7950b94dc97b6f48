package connmanager

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	commonerrors "github.com/VaultRelay/parachain-lib/common/errors"
	commontypes "github.com/VaultRelay/parachain-lib/common/types"
	"github.com/VaultRelay/parachain-lib/connectionmonitor"
)

// connectionRegistry owns at most one live connection per logical chain.
// Connections are created lazily on first use; concurrent first-time requests
// for the same chain collapse into a single dial, while requests for
// different chains proceed independently.
type connectionRegistry struct {
	logger    *logrus.Logger
	factory   commontypes.ConnectionFactory
	endpoints commontypes.EndpointSource

	conns      map[commontypes.ChainId]commontypes.Connection
	connsMutex sync.RWMutex
	group      singleflight.Group

	monitorInterval time.Duration
	monitors        map[commontypes.ChainId]connectionmonitor.ConnectionMonitor
	monitorsMutex   sync.Mutex
}

// Option configures the connection registry.
type Option func(*connectionRegistry)

// WithHealthMonitoring starts a passive health monitor for every connection
// the registry creates. Monitors only observe and log; they never reconnect.
//
// Parameters:
// - interval: the interval between health checks; zero selects the default.
//
// Returns:
// - Option: the registry option.
func WithHealthMonitoring(interval time.Duration) Option {
	return func(r *connectionRegistry) {
		if interval <= 0 {
			interval = connectionmonitor.DefaultHealthCheckInterval
		}
		r.monitorInterval = interval
	}
}

// NewConnectionRegistry creates a new connection registry instance.
//
// Parameters:
// - factory: the connection factory used for lazy dialing.
// - endpoints: the endpoint source consulted per chain.
// - logger: the logger for logging purposes.
// - opts: optional registry configuration.
//
// Returns:
// - commontypes.Registry: the new connection registry instance.
func NewConnectionRegistry(
	factory commontypes.ConnectionFactory,
	endpoints commontypes.EndpointSource,
	logger *logrus.Logger,
	opts ...Option,
) commontypes.Registry {
	registry := &connectionRegistry{
		logger:    logger,
		factory:   factory,
		endpoints: endpoints,
		conns:     make(map[commontypes.ChainId]commontypes.Connection),
		monitors:  make(map[commontypes.ChainId]connectionmonitor.ConnectionMonitor),
	}

	for _, opt := range opts {
		opt(registry)
	}

	return registry
}

// GetOrCreate returns the existing connection for the chain or lazily dials a
// new one. A failed attempt does not populate the registry, so the next call
// retries from scratch. No retry and no timeout are applied internally; the
// caller bounds the dial through ctx.
//
// Parameters:
// - ctx: the context for managing the dial.
// - chainID: the logical chain identifier.
//
// Returns:
// - commontypes.Connection: the live connection.
// - error: a MissingConfigurationError or NetworkError on failure.
func (r *connectionRegistry) GetOrCreate(ctx context.Context, chainID commontypes.ChainId) (commontypes.Connection, error) {
	r.connsMutex.RLock()
	conn, ok := r.conns[chainID]
	r.connsMutex.RUnlock()

	if ok {
		return conn, nil
	}

	result, err, _ := r.group.Do(chainID.String(), func() (interface{}, error) {
		// Re-check under the flight: an earlier flight for this chain may
		// have populated the map between the fast path and Do.
		r.connsMutex.RLock()
		conn, ok := r.conns[chainID]
		r.connsMutex.RUnlock()

		if ok {
			return conn, nil
		}

		endpoint, err := r.endpoints.Endpoint(ctx, chainID)
		if err != nil {
			return nil, err
		}

		created, err := r.factory.Connect(ctx, chainID, endpoint)
		if err != nil {
			return nil, &commonerrors.NetworkError{Chain: chainID, Endpoint: endpoint, Err: err}
		}

		r.connsMutex.Lock()
		r.conns[chainID] = created
		r.connsMutex.Unlock()

		r.startMonitor(created)

		return created, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(commontypes.Connection), nil
}

// Health probes the chain connection and reports a structured status. It
// never returns an error: missing configuration and failed dials or pings are
// reported inside the status.
//
// Parameters:
// - ctx: the context for managing the probe.
// - chainID: the logical chain identifier.
//
// Returns:
// - commontypes.HealthStatus: the structured health result.
func (r *connectionRegistry) Health(ctx context.Context, chainID commontypes.ChainId) commontypes.HealthStatus {
	status := commontypes.HealthStatus{ChainID: chainID}

	endpoint, err := r.endpoints.Endpoint(ctx, chainID)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Endpoint = endpoint

	conn, err := r.GetOrCreate(ctx, chainID)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	if err := conn.Ping(ctx); err != nil {
		status.Error = err.Error()
		return status
	}

	status.Connected = true
	return status
}

// Teardown disconnects every registered connection, tolerating and logging
// individual close failures, stops all monitors and clears the registry. This
// is the only place connections are closed.
func (r *connectionRegistry) Teardown() {
	r.monitorsMutex.Lock()
	for _, monitor := range r.monitors {
		monitor.Stop()
	}
	r.monitors = make(map[commontypes.ChainId]connectionmonitor.ConnectionMonitor)
	r.monitorsMutex.Unlock()

	r.connsMutex.Lock()
	defer r.connsMutex.Unlock()

	for chainID, conn := range r.conns {
		if err := conn.Close(); err != nil {
			r.logger.WithFields(logrus.Fields{
				"chain": chainID,
				"error": err,
			}).Warn("Failed to close chain connection")
			continue
		}

		r.logger.WithField("chain", chainID).Info("Chain connection closed")
	}

	r.conns = make(map[commontypes.ChainId]commontypes.Connection)
}

// startMonitor starts a passive health monitor for the connection when
// monitoring is enabled.
//
// Parameters:
// - conn: the connection to monitor.
func (r *connectionRegistry) startMonitor(conn commontypes.Connection) {
	if r.monitorInterval <= 0 {
		return
	}

	monitor := connectionmonitor.NewConnectionMonitor(conn, r.logger, conn.ChainID().String(), r.monitorInterval)
	if err := monitor.Start(context.Background()); err != nil {
		r.logger.WithFields(logrus.Fields{
			"chain": conn.ChainID(),
			"error": err,
		}).Warn("Failed to start connection monitor")
		return
	}

	r.monitorsMutex.Lock()
	r.monitors[conn.ChainID()] = monitor
	r.monitorsMutex.Unlock()
}
