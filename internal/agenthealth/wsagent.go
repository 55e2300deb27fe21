package agenthealth

import (
	"context"
	"github.com/baepo-cloud/baepo-wsmaster/internal/metrics"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"log/slog"
	"net/http"
	"time"
)

const AgentNotAvailableReason = "Workspace Agent not available if Dev machine is not RUNNING"

type WsAgentChecker struct {
	log     *slog.Logger
	prober  *Prober
	timeout time.Duration
	metrics *metrics.Metrics
}

var _ types.AgentHealthChecker = (*WsAgentChecker)(nil)

func NewWsAgentChecker(prober *Prober, config *types.Config, m *metrics.Metrics) *WsAgentChecker {
	return &WsAgentChecker{
		log:     slog.With(slog.String("component", "wsagentchecker")),
		prober:  prober,
		timeout: config.AgentPingTimeout,
		metrics: m,
	}
}

func (c *WsAgentChecker) AgentID() string {
	return types.WsAgentReference
}

func (c *WsAgentChecker) Check(ctx context.Context, devMachine *types.Machine) *types.AgentState {
	server := FindAgentEndpoint(devMachine.Servers())
	if server == nil {
		return NotAvailableState()
	}

	state := c.prober.Probe(ctx, server, c.timeout)
	c.metrics.ObserveAgentProbe(state.Code)
	if state.Code != http.StatusOK {
		c.log.Debug("workspace agent is not healthy",
			slog.String("workspace-id", devMachine.WorkspaceID),
			slog.String("machine-id", devMachine.ID),
			slog.Int("code", state.Code))
	}
	return state
}

func NotAvailableState() *types.AgentState {
	return &types.AgentState{
		Code:   http.StatusNotFound,
		Reason: AgentNotAvailableReason,
	}
}
