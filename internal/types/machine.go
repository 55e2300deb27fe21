package types

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type (
	MachineStatus string

	Machine struct {
		ID          string `gorm:"primaryKey"`
		WorkspaceID string `gorm:"primaryKey"`
		Owner       string
		Dev         bool
		Status      MachineStatus
		Runtime     *MachineRuntime
		Logger      LineConsumer `gorm:"-" json:"-"`
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	MachineRuntime struct {
		Properties map[string]string `json:"properties,omitempty"`
		Servers    map[string]Server `json:"servers,omitempty"`
	}

	Server struct {
		Ref      string `json:"ref"`
		URL      string `json:"url"`
		Address  string `json:"address,omitempty"`
		Protocol string `json:"protocol,omitempty"`
	}

	MachineSaveOptions struct {
		WorkspaceID string
		MachineID   string
		Owner       string
		Dev         bool
		Status      MachineStatus
		Runtime     *MachineRuntime
	}

	MachineUpdateStatusOptions struct {
		WorkspaceID string
		MachineID   string
		Status      MachineStatus
		Error       *string
	}

	MachineRegistry interface {
		GetMachine(ctx context.Context, workspaceID string, machineID string) (*Machine, error)
	}
)

const (
	MachineStatusCreating   MachineStatus = "CREATING"
	MachineStatusRunning    MachineStatus = "RUNNING"
	MachineStatusDestroying MachineStatus = "DESTROYING"
	MachineStatusDestroyed  MachineStatus = "DESTROYED"
	MachineStatusError      MachineStatus = "ERROR"

	// MachineRuntimePropertyContainerID holds the id of the container backing the machine.
	MachineRuntimePropertyContainerID = "id"

	WsAgentReference = "wsagent"
)

func (*MachineRuntime) GormDataType() string {
	return "jsonb"
}

func (r *MachineRuntime) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, &r)
	case string:
		return json.Unmarshal([]byte(v), &r)
	default:
		return fmt.Errorf("cannot scan %T into machine runtime", value)
	}
}

func (r *MachineRuntime) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *MachineRuntime) ContainerID() string {
	if r == nil {
		return ""
	}
	return r.Properties[MachineRuntimePropertyContainerID]
}

func (m *Machine) Servers() map[string]Server {
	if m.Runtime == nil {
		return nil
	}
	return m.Runtime.Servers
}
