package agenthealth

import (
	"context"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/baepo-cloud/baepo-wsmaster/internal/workspacekey"
	"sort"
)

type Service struct {
	registry types.WorkspaceRegistry
	checkers map[string]types.AgentHealthChecker
}

var _ types.AgentHealthService = (*Service)(nil)

func NewService(registry types.WorkspaceRegistry, checkers []types.AgentHealthChecker) *Service {
	table := make(map[string]types.AgentHealthChecker, len(checkers))
	for _, checker := range checkers {
		table[checker.AgentID()] = checker
	}
	return &Service{
		registry: registry,
		checkers: table,
	}
}

// Check reports the health of one agent of the workspace addressed by key.
func (s *Service) Check(ctx context.Context, subject string, key string, agentID string) (*types.AgentHealthState, error) {
	workspaceKey, err := workspacekey.Resolve(key)
	if err != nil {
		return nil, err
	}

	checker, ok := s.checkers[agentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrAgentCheckerNotFound, agentID)
	}

	return s.check(ctx, subject, workspaceKey, []types.AgentHealthChecker{checker})
}

// CheckAll reports the health of every known agent of the workspace addressed by key.
func (s *Service) CheckAll(ctx context.Context, subject string, key string) (*types.AgentHealthState, error) {
	workspaceKey, err := workspacekey.Resolve(key)
	if err != nil {
		return nil, err
	}

	return s.check(ctx, subject, workspaceKey, s.sortedCheckers())
}

func (s *Service) AgentIDs() []string {
	ids := make([]string, 0, len(s.checkers))
	for id := range s.checkers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Service) check(ctx context.Context, subject string, key types.WorkspaceKey, checkers []types.AgentHealthChecker) (*types.AgentHealthState, error) {
	workspace, err := s.registry.FindWorkspace(ctx, subject, key)
	if err != nil {
		return nil, err
	}

	state := &types.AgentHealthState{WorkspaceStatus: workspace.Status}
	if workspace.Status != types.WorkspaceStatusRunning {
		return state, nil
	}

	state.AgentStates = make(map[string]*types.AgentState, len(checkers))
	devMachine := workspace.DevMachine()
	for _, checker := range checkers {
		if devMachine == nil {
			state.AgentStates[checker.AgentID()] = NotAvailableState()
			continue
		}
		state.AgentStates[checker.AgentID()] = checker.Check(ctx, devMachine)
	}
	return state, nil
}

func (s *Service) sortedCheckers() []types.AgentHealthChecker {
	ids := s.AgentIDs()
	checkers := make([]types.AgentHealthChecker, len(ids))
	for index, id := range ids {
		checkers[index] = s.checkers[id]
	}
	return checkers
}
