package registryservice

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/nrednav/cuid2"
	"log/slog"
	"time"
)

func (s *Service) UpdateMachineStatus(ctx context.Context, opts types.MachineUpdateStatusOptions) (*types.Machine, error) {
	machine, err := s.findMachine(ctx, s.db, opts.WorkspaceID, opts.MachineID)
	if err != nil {
		return nil, err
	}

	machine.Status = opts.Status
	if err = s.db.WithContext(ctx).Select("Status").Save(machine).Error; err != nil {
		return nil, fmt.Errorf("failed to update machine status: %w", err)
	}

	s.log.Info("machine status updated",
		slog.String("workspace-id", machine.WorkspaceID),
		slog.String("machine-id", machine.ID),
		slog.String("status", string(machine.Status)))
	s.publishStatusEvent(machine, opts.Error)
	return machine, nil
}

func (s *Service) publishStatusEvent(machine *types.Machine, errorMessage *string) {
	s.eventBus.PublishEvent(&types.MachineStatusEvent{
		ID:          cuid2.Generate(),
		EventType:   machine.Status.EventType(),
		WorkspaceID: machine.WorkspaceID,
		MachineID:   machine.ID,
		Error:       errorMessage,
		Timestamp:   time.Now(),
	})
}
