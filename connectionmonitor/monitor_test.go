package connectionmonitor

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingChecker struct {
	pings atomic.Int64
}

func (c *countingChecker) Ping(ctx context.Context) error {
	c.pings.Add(1)
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func waitForPings(t *testing.T, checker *countingChecker, atLeast int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		return checker.pings.Load() >= atLeast
	}, 2*time.Second, time.Millisecond)
}

func TestStartRejectsDoubleStart(t *testing.T) {
	checker := &countingChecker{}
	monitor := NewConnectionMonitor(checker, testLogger(), "asset-hub", time.Hour)
	defer monitor.Stop()

	require.NoError(t, monitor.Start(context.Background()))
	assert.Error(t, monitor.Start(context.Background()))
}

func TestStopWithoutStart(t *testing.T) {
	checker := &countingChecker{}
	monitor := NewConnectionMonitor(checker, testLogger(), "asset-hub", time.Hour)

	// Must not panic.
	monitor.Stop()
	monitor.Stop()
}

func TestStartAfterStopResumesMonitoring(t *testing.T) {
	checker := &countingChecker{}
	monitor := NewConnectionMonitor(checker, testLogger(), "asset-hub", 5*time.Millisecond)

	require.NoError(t, monitor.Start(context.Background()))
	waitForPings(t, checker, 1)

	monitor.Stop()
	// Let any tick already in flight finish before taking the snapshot.
	time.Sleep(20 * time.Millisecond)
	stopped := checker.pings.Load()

	require.NoError(t, monitor.Start(context.Background()))
	waitForPings(t, checker, stopped+1)
	monitor.Stop()
}
