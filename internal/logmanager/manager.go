package logmanager

import (
	"fmt"
	"github.com/alphadose/haxmap"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Manager struct {
	log          *slog.Logger
	logDirectory string
	machineLogs  *haxmap.Map[string, *machineLog]
	lock         sync.Mutex
}

var _ types.MachineLogManager = (*Manager)(nil)

func New(config *types.Config) (*Manager, error) {
	logDirectory := filepath.Join(config.StorageDirectory, "logs")
	if err := os.MkdirAll(logDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &Manager{
		log:          slog.With(slog.String("component", "logmanager")),
		logDirectory: logDirectory,
		machineLogs:  haxmap.New[string, *machineLog](),
	}, nil
}

// Logger returns the append-only log of a machine. The underlying file is
// opened on the first write.
func (m *Manager) Logger(workspaceID, machineID string) (types.LineConsumer, error) {
	logPath, err := m.logPath(workspaceID, machineID)
	if err != nil {
		return nil, err
	}

	if existing, ok := m.machineLogs.Get(logPath); ok {
		return existing, nil
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	logger, _ := m.machineLogs.GetOrSet(logPath, &machineLog{logPath: logPath})
	return logger, nil
}

func (m *Manager) Close() error {
	var closeErr error
	m.machineLogs.ForEach(func(logPath string, machineLog *machineLog) bool {
		if err := machineLog.Close(); err != nil {
			m.log.Error("failed to close machine log", slog.String("path", logPath), slog.Any("error", err))
			closeErr = err
		}
		return true
	})
	return closeErr
}

func (m *Manager) logPath(workspaceID, machineID string) (string, error) {
	for _, id := range []string{workspaceID, machineID} {
		if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
			return "", fmt.Errorf("invalid log identifier %q", id)
		}
	}

	return filepath.Join(m.logDirectory, workspaceID, machineID+".json"), nil
}
