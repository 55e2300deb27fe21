package logmanager

import (
	"context"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	manager, err := New(&types.Config{StorageDirectory: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = manager.Close()
	})
	return manager
}

func TestManager_WriteThenRead(t *testing.T) {
	manager := newTestManager(t)

	logger, err := manager.Logger("workspace123", "machine123")
	require.NoError(t, err)
	require.NoError(t, logger.WriteLine("first"))
	require.NoError(t, logger.WriteLine("second"))

	entries, err := manager.Read(context.Background(), "workspace123", "machine123")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestManager_LoggerIsSharedPerMachine(t *testing.T) {
	manager := newTestManager(t)

	first, err := manager.Logger("workspace123", "machine123")
	require.NoError(t, err)
	second, err := manager.Logger("workspace123", "machine123")
	require.NoError(t, err)
	other, err := manager.Logger("workspace123", "machine456")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestManager_ConcurrentFirstLoggerCallsShareOneLog(t *testing.T) {
	manager := newTestManager(t)

	const callers = 32
	loggers := make([]types.LineConsumer, callers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			logger, err := manager.Logger("workspace123", "machine123")
			assert.NoError(t, err)
			loggers[i] = logger
		}()
	}
	close(start)
	wg.Wait()

	for _, logger := range loggers {
		assert.Same(t, loggers[0], logger)
	}
}

func TestManager_ConcurrentWrites(t *testing.T) {
	manager := newTestManager(t)
	logger, err := manager.Logger("workspace123", "machine123")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, logger.WriteLine("line"))
		}()
	}
	wg.Wait()

	entries, err := manager.Read(context.Background(), "workspace123", "machine123")
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestManager_ReadMissingLog(t *testing.T) {
	entries, err := newTestManager(t).Read(context.Background(), "workspace123", "machine123")

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestManager_RejectsPathTraversal(t *testing.T) {
	manager := newTestManager(t)

	for _, ids := range [][2]string{{"..", "machine123"}, {"workspace123", "a/b"}, {"", "machine123"}} {
		_, err := manager.Logger(ids[0], ids[1])
		assert.Error(t, err, ids)
	}
}
