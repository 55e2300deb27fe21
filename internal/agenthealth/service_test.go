package agenthealth

import (
	"context"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type registryMock struct {
	mock.Mock
}

func (m *registryMock) FindWorkspace(ctx context.Context, subject string, key types.WorkspaceKey) (*types.Workspace, error) {
	args := m.Called(ctx, subject, key)
	workspace, _ := args.Get(0).(*types.Workspace)
	return workspace, args.Error(1)
}

type checkerMock struct {
	mock.Mock
}

func (m *checkerMock) AgentID() string {
	return "myagent"
}

func (m *checkerMock) Check(ctx context.Context, devMachine *types.Machine) *types.AgentState {
	return m.Called(ctx, devMachine).Get(0).(*types.AgentState)
}

func TestService_NotRunningWorkspaceIsNotProbed(t *testing.T) {
	registry := &registryMock{}
	registry.Test(t)
	checker := &checkerMock{}
	checker.Test(t)
	registry.On("FindWorkspace", mock.Anything, "user123", types.WorkspaceKey{ID: "workspace123"}).
		Return(&types.Workspace{ID: "workspace123", Status: types.WorkspaceStatusStopped}, nil)

	state, err := NewService(registry, []types.AgentHealthChecker{checker}).
		Check(context.Background(), "user123", "workspace123", "myagent")

	require.NoError(t, err)
	assert.Equal(t, &types.AgentHealthState{WorkspaceStatus: types.WorkspaceStatusStopped}, state)
	checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestService_RunningWorkspaceWithoutDevMachine(t *testing.T) {
	registry := &registryMock{}
	registry.Test(t)
	checker := &checkerMock{}
	checker.Test(t)
	registry.On("FindWorkspace", mock.Anything, "user123", types.WorkspaceKey{Namespace: "ns", Name: "ws"}).
		Return(&types.Workspace{
			Status:   types.WorkspaceStatusRunning,
			Machines: []*types.Machine{{ID: "machine123", Dev: true, Status: types.MachineStatusCreating}},
		}, nil)

	state, err := NewService(registry, []types.AgentHealthChecker{checker}).
		Check(context.Background(), "user123", "ns:ws", "myagent")

	require.NoError(t, err)
	assert.Equal(t, types.WorkspaceStatusRunning, state.WorkspaceStatus)
	assert.Equal(t, http.StatusNotFound, state.AgentStates["myagent"].Code)
	checker.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestService_RunningWorkspaceDelegatesToChecker(t *testing.T) {
	devMachine := &types.Machine{ID: "machine123", Dev: true, Status: types.MachineStatusRunning}
	registry := &registryMock{}
	registry.Test(t)
	checker := &checkerMock{}
	checker.Test(t)
	registry.On("FindWorkspace", mock.Anything, "user123", types.WorkspaceKey{Name: "ws"}).
		Return(&types.Workspace{Status: types.WorkspaceStatusRunning, Machines: []*types.Machine{devMachine}}, nil)
	checker.On("Check", mock.Anything, devMachine).Return(&types.AgentState{Code: 200, Reason: "ok"})

	state, err := NewService(registry, []types.AgentHealthChecker{checker}).
		Check(context.Background(), "user123", ":ws", "myagent")

	require.NoError(t, err)
	assert.Equal(t, &types.AgentState{Code: 200, Reason: "ok"}, state.AgentStates["myagent"])
	checker.AssertExpectations(t)
}

func TestService_InvalidKeyIsRejectedBeforeLookup(t *testing.T) {
	registry := &registryMock{}
	registry.Test(t)

	_, err := NewService(registry, nil).Check(context.Background(), "user123", "a:b:c", types.WsAgentReference)

	assert.ErrorIs(t, err, types.ErrInvalidKeyFormat)
	registry.AssertNotCalled(t, "FindWorkspace", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UnknownAgent(t *testing.T) {
	registry := &registryMock{}
	registry.Test(t)

	_, err := NewService(registry, nil).Check(context.Background(), "user123", "workspace123", "unknown")

	assert.ErrorIs(t, err, types.ErrAgentCheckerNotFound)
	registry.AssertNotCalled(t, "FindWorkspace", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_PropagatesRegistryErrors(t *testing.T) {
	registry := &registryMock{}
	registry.Test(t)
	registry.On("FindWorkspace", mock.Anything, "intruder", types.WorkspaceKey{ID: "workspace123"}).
		Return(nil, types.ErrForbidden)
	checker := &checkerMock{}

	_, err := NewService(registry, []types.AgentHealthChecker{checker}).
		Check(context.Background(), "intruder", "workspace123", "myagent")

	assert.ErrorIs(t, err, types.ErrForbidden)
}

func TestService_CheckAllWithWsAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	devMachine := &types.Machine{
		ID:     "machine123",
		Dev:    true,
		Status: types.MachineStatusRunning,
		Runtime: &types.MachineRuntime{Servers: map[string]types.Server{
			"4401/tcp": {Ref: types.WsAgentReference, URL: srv.URL},
		}},
	}
	registry := &registryMock{}
	registry.Test(t)
	registry.On("FindWorkspace", mock.Anything, "user123", types.WorkspaceKey{ID: "workspace123"}).
		Return(&types.Workspace{Status: types.WorkspaceStatusRunning, Machines: []*types.Machine{devMachine}}, nil)
	wsAgent := NewWsAgentChecker(NewProber(nil), &types.Config{AgentPingTimeout: time.Second}, nil)

	state, err := NewService(registry, []types.AgentHealthChecker{wsAgent}).
		CheckAll(context.Background(), "user123", "workspace123")

	require.NoError(t, err)
	assert.Equal(t, map[string]*types.AgentState{
		types.WsAgentReference: {Code: http.StatusOK, Reason: "pong"},
	}, state.AgentStates)
}

func TestWsAgentChecker_MissingEndpoint(t *testing.T) {
	checker := NewWsAgentChecker(NewProber(nil), &types.Config{AgentPingTimeout: time.Second}, nil)

	state := checker.Check(context.Background(), &types.Machine{ID: "machine123"})

	assert.Equal(t, NotAvailableState(), state)
	assert.Equal(t, types.WsAgentReference, checker.AgentID())
}
