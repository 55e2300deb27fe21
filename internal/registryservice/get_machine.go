package registryservice

import (
	"context"
	"errors"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"gorm.io/gorm"
)

// GetMachine returns the machine with its log sink attached.
func (s *Service) GetMachine(ctx context.Context, workspaceID string, machineID string) (*types.Machine, error) {
	machine, err := s.findMachine(ctx, s.db, workspaceID, machineID)
	if err != nil {
		return nil, err
	}

	machine.Logger, err = s.logManager.Logger(workspaceID, machineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get machine logger: %w", err)
	}

	return machine, nil
}

func (s *Service) findMachine(ctx context.Context, db *gorm.DB, workspaceID string, machineID string) (*types.Machine, error) {
	var machine *types.Machine
	err := db.WithContext(ctx).
		First(&machine, "workspace_id = ? AND id = ?", workspaceID, machineID).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrMachineNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to find machine: %w", err)
	}

	return machine, nil
}
