package types

import "context"

type RegistryService interface {
	WorkspaceRegistry
	MachineRegistry

	SaveWorkspace(ctx context.Context, opts WorkspaceSaveOptions) (*Workspace, error)

	SaveMachine(ctx context.Context, opts MachineSaveOptions) (*Machine, error)

	UpdateMachineStatus(ctx context.Context, opts MachineUpdateStatusOptions) (*Machine, error)

	ListMachineLogs(ctx context.Context, workspaceID string, machineID string) ([]*MachineLogEntry, error)
}
