package types

import (
	"context"
	"time"
)

type MachineLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

type MachineLogManager interface {
	Logger(workspaceID string, machineID string) (LineConsumer, error)

	Read(ctx context.Context, workspaceID string, machineID string) ([]*MachineLogEntry, error)
}
