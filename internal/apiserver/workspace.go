package apiserver

import (
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/go-chi/chi/v5"
	"net/http"
)

type (
	saveWorkspaceRequest struct {
		Namespace string                `json:"namespace"`
		Name      string                `json:"name" validate:"required"`
		Status    types.WorkspaceStatus `json:"status" validate:"required,oneof=STARTING RUNNING STOPPING STOPPED SNAPSHOTTING"`
	}

	saveMachineRequest struct {
		Dev     bool                  `json:"dev"`
		Status  types.MachineStatus   `json:"status" validate:"required,oneof=CREATING RUNNING DESTROYING DESTROYED ERROR"`
		Runtime *types.MachineRuntime `json:"runtime"`
	}

	updateMachineStatusRequest struct {
		Status types.MachineStatus `json:"status" validate:"required,oneof=CREATING RUNNING DESTROYING DESTROYED ERROR"`
		Error  *string             `json:"error"`
	}
)

func (s *Server) saveWorkspace(w http.ResponseWriter, r *http.Request) {
	var req saveWorkspaceRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	workspace, err := s.registry.SaveWorkspace(r.Context(), types.WorkspaceSaveOptions{
		WorkspaceID: chi.URLParam(r, "workspaceId"),
		Namespace:   req.Namespace,
		Name:        req.Name,
		Owner:       subjectFromContext(r.Context()),
		Status:      req.Status,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, adaptWorkspace(workspace))
}

func (s *Server) saveMachine(w http.ResponseWriter, r *http.Request) {
	var req saveMachineRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	workspace, ok := s.authorizeWorkspace(w, r)
	if !ok {
		return
	}

	machine, err := s.registry.SaveMachine(r.Context(), types.MachineSaveOptions{
		WorkspaceID: workspace.ID,
		MachineID:   chi.URLParam(r, "machineId"),
		Owner:       workspace.Owner,
		Dev:         req.Dev,
		Status:      req.Status,
		Runtime:     req.Runtime,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, adaptMachine(machine))
}

func (s *Server) updateMachineStatus(w http.ResponseWriter, r *http.Request) {
	var req updateMachineStatusRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	workspace, ok := s.authorizeWorkspace(w, r)
	if !ok {
		return
	}

	machine, err := s.registry.UpdateMachineStatus(r.Context(), types.MachineUpdateStatusOptions{
		WorkspaceID: workspace.ID,
		MachineID:   chi.URLParam(r, "machineId"),
		Status:      req.Status,
		Error:       req.Error,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, adaptMachine(machine))
}

func (s *Server) listMachineLogs(w http.ResponseWriter, r *http.Request) {
	workspace, ok := s.authorizeWorkspace(w, r)
	if !ok {
		return
	}

	entries, err := s.registry.ListMachineLogs(r.Context(), workspace.ID, chi.URLParam(r, "machineId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) authorizeWorkspace(w http.ResponseWriter, r *http.Request) (*types.Workspace, bool) {
	workspace, err := s.registry.FindWorkspace(r.Context(), subjectFromContext(r.Context()), types.WorkspaceKey{
		ID: chi.URLParam(r, "workspaceId"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return workspace, true
}
