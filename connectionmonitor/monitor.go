package connectionmonitor

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultHealthCheckInterval defines the default interval between
	// connection health checks.
	DefaultHealthCheckInterval = 30 * time.Second
)

// ConnectionMonitor represents connection state monitoring interface.
// The monitor is passive: it observes and logs connection health transitions
// but never reconnects; reconnection policy belongs to the caller.
type ConnectionMonitor interface {
	// Start starts connection monitoring
	Start(ctx context.Context) error
	// Stop stops connection monitoring
	Stop()
}

// HealthChecker represents a pingable chain connection.
type HealthChecker interface {
	// Ping checks if the connection is alive.
	Ping(ctx context.Context) error
}

type connectionMonitor struct {
	checker      HealthChecker
	logger       *logrus.Logger
	chainName    string
	interval     time.Duration
	healthy      bool
	stopChan     chan struct{}
	isMonitoring bool
	monitorMutex sync.RWMutex
}

// NewConnectionMonitor creates a new connection monitor instance.
//
// Parameters:
// - checker: the chain connection to monitor.
// - logger: the logger for logging purposes.
// - chainName: the name of the monitored chain.
// - interval: the interval between health checks; zero selects the default.
//
// Returns:
// - ConnectionMonitor: the new connection monitor instance.
func NewConnectionMonitor(
	checker HealthChecker,
	logger *logrus.Logger,
	chainName string,
	interval time.Duration,
) ConnectionMonitor {
	if interval <= 0 {
		interval = DefaultHealthCheckInterval
	}

	return &connectionMonitor{
		checker:      checker,
		logger:       logger,
		chainName:    chainName,
		interval:     interval,
		healthy:      true,
		isMonitoring: false,
	}
}

// Start starts connection monitoring. A stopped monitor can be started again.
//
// Parameters:
// - ctx: the context for managing the request.
//
// Returns:
// - error: an error if the connection monitor is already running.
func (m *connectionMonitor) Start(ctx context.Context) error {
	m.monitorMutex.Lock()
	if m.isMonitoring {
		m.monitorMutex.Unlock()
		return errors.Errorf("connection monitor is already running for chain %s", m.chainName)
	}
	// Stop closes the previous channel, so each run gets a fresh one.
	stopChan := make(chan struct{})
	m.stopChan = stopChan
	m.isMonitoring = true
	m.monitorMutex.Unlock()

	go m.monitorConnection(ctx, stopChan)
	return nil
}

// Stop stops connection monitoring.
func (m *connectionMonitor) Stop() {
	m.monitorMutex.Lock()
	defer m.monitorMutex.Unlock()

	if !m.isMonitoring {
		return
	}

	close(m.stopChan)
	m.isMonitoring = false
}

// monitorConnection periodically pings the connection and logs health state
// transitions.
//
// Parameters:
// - ctx: the context for managing the request.
// - stopChan: the stop channel belonging to this monitoring run.
func (m *connectionMonitor) monitorConnection(ctx context.Context, stopChan <-chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.WithField("chain", m.chainName).Info("Connection monitoring stopped due to context cancellation")
			return

		case <-stopChan:
			m.logger.WithField("chain", m.chainName).Info("Connection monitoring stopped")
			return

		case <-ticker.C:
			m.checkConnection(ctx)
		}
	}
}

// checkConnection pings the connection once and records the transition.
//
// Parameters:
// - ctx: the context for managing the request.
func (m *connectionMonitor) checkConnection(ctx context.Context) {
	err := m.checker.Ping(ctx)

	m.monitorMutex.Lock()
	wasHealthy := m.healthy
	m.healthy = err == nil
	m.monitorMutex.Unlock()

	if err != nil {
		if wasHealthy {
			m.logger.WithFields(logrus.Fields{
				"chain": m.chainName,
				"error": err,
			}).Warn("Connection became unhealthy")
		}
		return
	}

	if !wasHealthy {
		m.logger.WithField("chain", m.chainName).Info("Connection recovered")
	}
}
