package registryservice

import (
	"context"
	"errors"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"gorm.io/gorm"
	"log/slog"
)

// SaveMachine creates or replaces a machine of an existing workspace. A status
// change is published on the event bus.
func (s *Service) SaveMachine(ctx context.Context, opts types.MachineSaveOptions) (*types.Machine, error) {
	var machine *types.Machine
	var statusChanged bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var workspace *types.Workspace
		err := tx.First(&workspace, "id = ?", opts.WorkspaceID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrWorkspaceNotFound
		} else if err != nil {
			return fmt.Errorf("failed to find workspace: %w", err)
		}

		machine, err = s.findMachine(ctx, tx, opts.WorkspaceID, opts.MachineID)
		if errors.Is(err, types.ErrMachineNotFound) {
			machine = &types.Machine{ID: opts.MachineID, WorkspaceID: opts.WorkspaceID}
		} else if err != nil {
			return err
		}

		statusChanged = machine.Status != opts.Status
		machine.Owner = opts.Owner
		if machine.Owner == "" {
			machine.Owner = workspace.Owner
		}
		machine.Dev = opts.Dev
		machine.Status = opts.Status
		machine.Runtime = opts.Runtime

		if err = tx.Save(machine).Error; err != nil {
			return fmt.Errorf("failed to save machine: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("machine saved",
		slog.String("workspace-id", machine.WorkspaceID),
		slog.String("machine-id", machine.ID),
		slog.String("status", string(machine.Status)))
	if statusChanged {
		s.publishStatusEvent(machine, nil)
	}
	return machine, nil
}
