package apiserver

import (
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"time"
)

type (
	workspaceView struct {
		ID        string                `json:"id"`
		Namespace string                `json:"namespace"`
		Name      string                `json:"name"`
		Owner     string                `json:"owner"`
		Status    types.WorkspaceStatus `json:"status"`
		CreatedAt time.Time             `json:"createdAt"`
		UpdatedAt time.Time             `json:"updatedAt"`
	}

	machineView struct {
		ID          string                `json:"id"`
		WorkspaceID string                `json:"workspaceId"`
		Owner       string                `json:"owner"`
		Dev         bool                  `json:"dev"`
		Status      types.MachineStatus   `json:"status"`
		Runtime     *types.MachineRuntime `json:"runtime,omitempty"`
		CreatedAt   time.Time             `json:"createdAt"`
		UpdatedAt   time.Time             `json:"updatedAt"`
	}

	sshPairView struct {
		Service    string  `json:"service"`
		Name       string  `json:"name"`
		PublicKey  *string `json:"publicKey,omitempty"`
		PrivateKey *string `json:"privateKey,omitempty"`
	}
)

func adaptWorkspace(workspace *types.Workspace) *workspaceView {
	return &workspaceView{
		ID:        workspace.ID,
		Namespace: workspace.Namespace,
		Name:      workspace.Name,
		Owner:     workspace.Owner,
		Status:    workspace.Status,
		CreatedAt: workspace.CreatedAt,
		UpdatedAt: workspace.UpdatedAt,
	}
}

func adaptMachine(machine *types.Machine) *machineView {
	return &machineView{
		ID:          machine.ID,
		WorkspaceID: machine.WorkspaceID,
		Owner:       machine.Owner,
		Dev:         machine.Dev,
		Status:      machine.Status,
		Runtime:     machine.Runtime,
		CreatedAt:   machine.CreatedAt,
		UpdatedAt:   machine.UpdatedAt,
	}
}

// adaptSSHPair hides private keys unless explicitly requested, which only
// happens in the response of a generation.
func adaptSSHPair(pair *types.SSHPair, withPrivateKey bool) *sshPairView {
	view := &sshPairView{
		Service:   pair.Service,
		Name:      pair.Name,
		PublicKey: pair.PublicKey,
	}
	if withPrivateKey {
		view.PrivateKey = pair.PrivateKey
	}
	return view
}
