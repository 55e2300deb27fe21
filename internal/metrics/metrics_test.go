package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAgentProbe(200)
	m.ObserveAgentProbe(503)
	m.ObserveAgentProbe(503)
	m.ObserveKeysInjection(InjectionResultFailed)
	m.ObserveMachineEvent("RUNNING")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.agentProbes.WithLabelValues("200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.agentProbes.WithLabelValues("503")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.keysInjections.WithLabelValues(InjectionResultFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.machineEvents.WithLabelValues("RUNNING")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAgentProbe(200)
		m.ObserveKeysInjection(InjectionResultSucceeded)
		m.ObserveMachineEvent("RUNNING")
	})
}
