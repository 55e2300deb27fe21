package types

import "context"

type (
	AgentState struct {
		Code   int    `json:"code"`
		Reason string `json:"reason"`
	}

	AgentHealthState struct {
		WorkspaceStatus WorkspaceStatus        `json:"workspaceStatus"`
		AgentStates     map[string]*AgentState `json:"agentStates,omitempty"`
	}

	// LegacyAgentHealthState is the single-agent response shape.
	//
	// Deprecated: use AgentHealthState, which carries every agent keyed by reference.
	LegacyAgentHealthState struct {
		WorkspaceStatus WorkspaceStatus `json:"workspaceStatus"`
		AgentID         string          `json:"agentId,omitempty"`
		AgentState      *AgentState     `json:"agentState,omitempty"`
	}

	AgentHealthChecker interface {
		AgentID() string

		Check(ctx context.Context, devMachine *Machine) *AgentState
	}

	AgentHealthService interface {
		Check(ctx context.Context, subject string, key string, agentID string) (*AgentHealthState, error)

		CheckAll(ctx context.Context, subject string, key string) (*AgentHealthState, error)
	}
)

func (s *AgentHealthState) Legacy(agentID string) *LegacyAgentHealthState {
	legacy := &LegacyAgentHealthState{WorkspaceStatus: s.WorkspaceStatus}
	if state, ok := s.AgentStates[agentID]; ok {
		legacy.AgentID = agentID
		legacy.AgentState = state
	}
	return legacy
}
