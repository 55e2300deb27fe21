package logmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"io"
	"os"
)

// Read returns every entry persisted for a machine, oldest first.
func (m *Manager) Read(ctx context.Context, workspaceID, machineID string) ([]*types.MachineLogEntry, error) {
	logPath, err := m.logPath(workspaceID, machineID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*types.MachineLogEntry{}, nil
		}

		return nil, fmt.Errorf("failed to open machine log: %w", err)
	}
	defer file.Close()

	entries := []*types.MachineLogEntry{}
	decoder := json.NewDecoder(file)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			var entry types.MachineLogEntry
			err = decoder.Decode(&entry)
			if err == io.EOF {
				return entries, nil
			} else if err != nil {
				return nil, fmt.Errorf("failed to decode machine log entry: %w", err)
			}

			entries = append(entries, &entry)
		}
	}
}
