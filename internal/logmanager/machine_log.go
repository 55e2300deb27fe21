package logmanager

import (
	"encoding/json"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type machineLog struct {
	logPath string
	logFile *os.File
	encoder *json.Encoder
	mutex   sync.Mutex
}

var _ types.LineConsumer = (*machineLog)(nil)

func (l *machineLog) WriteLine(line string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.encoder == nil {
		if err := os.MkdirAll(filepath.Dir(l.logPath), 0755); err != nil {
			return fmt.Errorf("failed to create machine log directory: %w", err)
		}

		file, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open machine log: %w", err)
		}

		l.logFile = file
		l.encoder = json.NewEncoder(file)
	}

	return l.encoder.Encode(types.MachineLogEntry{
		Timestamp: time.Now(),
		Message:   line,
	})
}

func (l *machineLog) Close() error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.logFile == nil {
		return nil
	}

	err := l.logFile.Close()
	l.logFile = nil
	l.encoder = nil
	return err
}
