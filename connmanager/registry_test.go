package connmanager

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/VaultRelay/parachain-lib/common/errors"
	commontypes "github.com/VaultRelay/parachain-lib/common/types"
	"github.com/VaultRelay/parachain-lib/config"
)

type fakeConnection struct {
	chainID  commontypes.ChainId
	endpoint string
	pingErr  error
	closeErr error
	closed   atomic.Bool
}

func (c *fakeConnection) ChainID() commontypes.ChainId              { return c.chainID }
func (c *fakeConnection) Endpoint() string                          { return c.endpoint }
func (c *fakeConnection) Prober() commontypes.CapabilityProber      { return nil }
func (c *fakeConnection) Ping(ctx context.Context) error            { return c.pingErr }
func (c *fakeConnection) RefreshMetadata(ctx context.Context) error { return nil }

func (c *fakeConnection) Close() error {
	c.closed.Store(true)
	return c.closeErr
}

type fakeFactory struct {
	dials    atomic.Int64
	dialErrs chan error
	delay    time.Duration
	closeErr error
}

func (f *fakeFactory) Connect(ctx context.Context, chainID commontypes.ChainId, endpoint string) (commontypes.Connection, error) {
	f.dials.Add(1)

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	select {
	case err := <-f.dialErrs:
		if err != nil {
			return nil, err
		}
	default:
	}

	return &fakeConnection{chainID: chainID, endpoint: endpoint, closeErr: f.closeErr}, nil
}

type fakeEndpoints struct {
	endpoints map[commontypes.ChainId]string
}

func (s *fakeEndpoints) Endpoint(ctx context.Context, chainID commontypes.ChainId) (string, error) {
	endpoint, ok := s.endpoints[chainID]
	if !ok {
		return "", &commonerrors.MissingConfigurationError{Chain: chainID, EnvVar: "TEST_" + chainID.String()}
	}
	return endpoint, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testEndpoints() *fakeEndpoints {
	return &fakeEndpoints{endpoints: map[commontypes.ChainId]string{
		commontypes.AssetHub: "ws://asset-hub.test:9944",
		commontypes.Revive:   "ws://revive.test:9944",
	}}
}

func TestGetOrCreateReturnsSameConnection(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	first, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)

	second, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, factory.dials.Load())
}

func TestGetOrCreateConcurrentSingleFlight(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1), delay: 20 * time.Millisecond}
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	const goroutines = 16
	conns := make([]commontypes.Connection, goroutines)
	errs := make([]error, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conns[i], errs[i] = registry.GetOrCreate(context.Background(), commontypes.AssetHub)
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
	}
	for i := 1; i < goroutines; i++ {
		assert.Same(t, conns[0], conns[i])
	}
	assert.EqualValues(t, 1, factory.dials.Load())
}

func TestGetOrCreateIndependentChains(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	assetHub, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)

	revive, err := registry.GetOrCreate(context.Background(), commontypes.Revive)
	require.NoError(t, err)

	assert.NotSame(t, assetHub, revive)
	assert.Equal(t, commontypes.AssetHub, assetHub.ChainID())
	assert.Equal(t, commontypes.Revive, revive.ChainID())
	assert.EqualValues(t, 2, factory.dials.Load())
}

func TestGetOrCreateMissingConfiguration(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	_, err := registry.GetOrCreate(context.Background(), commontypes.ChainId("unknown"))
	require.Error(t, err)
	assert.True(t, commonerrors.IsMissingConfiguration(err))
	assert.EqualValues(t, 0, factory.dials.Load())
}

func TestGetOrCreateDialFailureIsRetryable(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	factory.dialErrs <- errors.New("connection refused")
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	_, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.Error(t, err)
	assert.True(t, commonerrors.IsNetwork(err))

	// The failed attempt must not populate the registry: the next call dials
	// again from scratch and succeeds.
	conn, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)
	assert.NotNil(t, conn)
	assert.EqualValues(t, 2, factory.dials.Load())
}

func TestTeardownClosesConnections(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	first, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)
	second, err := registry.GetOrCreate(context.Background(), commontypes.Revive)
	require.NoError(t, err)

	registry.Teardown()

	assert.True(t, first.(*fakeConnection).closed.Load())
	assert.True(t, second.(*fakeConnection).closed.Load())

	// The registry is cleared: the next request dials a fresh connection.
	recreated, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)
	assert.NotSame(t, first, recreated)
	assert.EqualValues(t, 3, factory.dials.Load())
}

func TestTeardownToleratesCloseFailure(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1), closeErr: errors.New("socket already gone")}
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	_, err := registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)

	// Must not panic or propagate the close failure.
	registry.Teardown()

	_, err = registry.GetOrCreate(context.Background(), commontypes.AssetHub)
	require.NoError(t, err)
}

func TestHealthUnconfiguredChain(t *testing.T) {
	t.Setenv(config.AssetHubEndpointVar, "")

	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	registry := NewConnectionRegistry(factory, config.NewEnvEndpointSource(), testLogger())

	status := registry.Health(context.Background(), commontypes.AssetHub)
	assert.False(t, status.Connected)
	assert.Contains(t, status.Error, config.AssetHubEndpointVar)
}

func TestHealthDialFailure(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	factory.dialErrs <- errors.New("connection refused")
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	status := registry.Health(context.Background(), commontypes.AssetHub)
	assert.False(t, status.Connected)
	assert.Equal(t, "ws://asset-hub.test:9944", status.Endpoint)
	assert.Contains(t, status.Error, "connection refused")
}

func TestHealthConnected(t *testing.T) {
	factory := &fakeFactory{dialErrs: make(chan error, 1)}
	registry := NewConnectionRegistry(factory, testEndpoints(), testLogger())

	status := registry.Health(context.Background(), commontypes.AssetHub)
	assert.True(t, status.Connected)
	assert.Equal(t, "ws://asset-hub.test:9944", status.Endpoint)
	assert.Empty(t, status.Error)
}
