package types

import (
	"context"
	"time"
)

type (
	MachineStatusEventType string

	MachineStatusEvent struct {
		ID          string                 `json:"id"`
		EventType   MachineStatusEventType `json:"eventType" validate:"required,oneof=CREATING STARTING RUNNING DESTROYING DESTROYED ERROR"`
		WorkspaceID string                 `json:"workspaceId" validate:"required"`
		MachineID   string                 `json:"machineId" validate:"required"`
		Error       *string                `json:"error,omitempty"`
		Timestamp   time.Time              `json:"timestamp"`
	}

	MachineEventBus interface {
		PublishEvent(event *MachineStatusEvent)

		SubscribeToEvents(handler func(context.Context, *MachineStatusEvent)) func()
	}
)

const (
	MachineStatusEventTypeCreating   MachineStatusEventType = "CREATING"
	MachineStatusEventTypeStarting   MachineStatusEventType = "STARTING"
	MachineStatusEventTypeRunning    MachineStatusEventType = "RUNNING"
	MachineStatusEventTypeDestroying MachineStatusEventType = "DESTROYING"
	MachineStatusEventTypeDestroyed  MachineStatusEventType = "DESTROYED"
	MachineStatusEventTypeError      MachineStatusEventType = "ERROR"
)

func (t MachineStatusEventType) MachineStatus() MachineStatus {
	switch t {
	case MachineStatusEventTypeCreating, MachineStatusEventTypeStarting:
		return MachineStatusCreating
	case MachineStatusEventTypeRunning:
		return MachineStatusRunning
	case MachineStatusEventTypeDestroying:
		return MachineStatusDestroying
	case MachineStatusEventTypeDestroyed:
		return MachineStatusDestroyed
	default:
		return MachineStatusError
	}
}

func (s MachineStatus) EventType() MachineStatusEventType {
	switch s {
	case MachineStatusCreating:
		return MachineStatusEventTypeCreating
	case MachineStatusRunning:
		return MachineStatusEventTypeRunning
	case MachineStatusDestroying:
		return MachineStatusEventTypeDestroying
	case MachineStatusDestroyed:
		return MachineStatusEventTypeDestroyed
	default:
		return MachineStatusEventTypeError
	}
}
