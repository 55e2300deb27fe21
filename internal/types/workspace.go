package types

import (
	"context"
	"time"
)

type (
	WorkspaceStatus string

	Workspace struct {
		ID        string `gorm:"primaryKey"`
		Namespace string `gorm:"uniqueIndex:idx_workspace_namespace_name"`
		Name      string `gorm:"uniqueIndex:idx_workspace_namespace_name"`
		Owner     string
		Status    WorkspaceStatus
		Machines  []*Machine `gorm:"foreignKey:WorkspaceID"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// WorkspaceKey is a parsed composite key. Either ID is set, or Name is set
	// with an optional Namespace.
	WorkspaceKey struct {
		ID        string
		Namespace string
		Name      string
	}

	WorkspaceSaveOptions struct {
		WorkspaceID string
		Namespace   string
		Name        string
		Owner       string
		Status      WorkspaceStatus
	}

	WorkspaceRegistry interface {
		FindWorkspace(ctx context.Context, subject string, key WorkspaceKey) (*Workspace, error)
	}
)

const (
	WorkspaceStatusStarting     WorkspaceStatus = "STARTING"
	WorkspaceStatusRunning      WorkspaceStatus = "RUNNING"
	WorkspaceStatusStopping     WorkspaceStatus = "STOPPING"
	WorkspaceStatusStopped      WorkspaceStatus = "STOPPED"
	WorkspaceStatusSnapshotting WorkspaceStatus = "SNAPSHOTTING"
)

// DevMachine returns the running dev machine of the workspace runtime, if any.
func (w *Workspace) DevMachine() *Machine {
	for _, machine := range w.Machines {
		if machine.Dev && machine.Status == MachineStatusRunning {
			return machine
		}
	}
	return nil
}

func (k WorkspaceKey) IsID() bool {
	return k.ID != ""
}
