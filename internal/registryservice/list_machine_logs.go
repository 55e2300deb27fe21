package registryservice

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
)

func (s *Service) ListMachineLogs(ctx context.Context, workspaceID string, machineID string) ([]*types.MachineLogEntry, error) {
	if _, err := s.findMachine(ctx, s.db, workspaceID, machineID); err != nil {
		return nil, err
	}

	entries, err := s.logManager.Read(ctx, workspaceID, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine logs: %w", err)
	}

	return entries, nil
}
