package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"strconv"
)

type Metrics struct {
	agentProbes    *prometheus.CounterVec
	keysInjections *prometheus.CounterVec
	machineEvents  *prometheus.CounterVec
}

const (
	InjectionResultSkipped   = "skipped"
	InjectionResultSucceeded = "succeeded"
	InjectionResultFailed    = "failed"
)

func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		agentProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wsmaster_agent_probes_total",
			Help: "Workspace agent probes by response code.",
		}, []string{"code"}),
		keysInjections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wsmaster_keys_injections_total",
			Help: "SSH public keys injections into machines by result.",
		}, []string{"result"}),
		machineEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wsmaster_machine_events_total",
			Help: "Machine status events received by type.",
		}, []string{"type"}),
	}
	registerer.MustRegister(m.agentProbes, m.keysInjections, m.machineEvents)
	return m
}

func (m *Metrics) ObserveAgentProbe(code int) {
	if m == nil {
		return
	}
	m.agentProbes.WithLabelValues(strconv.Itoa(code)).Inc()
}

func (m *Metrics) ObserveKeysInjection(result string) {
	if m == nil {
		return
	}
	m.keysInjections.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveMachineEvent(eventType string) {
	if m == nil {
		return
	}
	m.machineEvents.WithLabelValues(eventType).Inc()
}
