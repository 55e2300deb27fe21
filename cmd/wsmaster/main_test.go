package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("WSMASTER_JWT_SECRET", "secret")
	t.Setenv("WSMASTER_STORAGE_DIRECTORY", t.TempDir())
}

func TestProvideConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	config, err := provideConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", config.APIAddr)
	assert.Equal(t, time.Second, config.AgentPingTimeout)
	assert.Equal(t, time.Minute, config.KeysInjectionTimeout)
	assert.Equal(t, 16, config.EventWorkers)
}

func TestProvideConfig_RequiresJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WSMASTER_JWT_SECRET", "")

	_, err := provideConfig()

	assert.ErrorContains(t, err, "WSMASTER_JWT_SECRET")
}

func TestProvideConfig_RejectsNonPositivePingTimeout(t *testing.T) {
	for _, value := range []string{"0", "-5"} {
		t.Run(value, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv("WSMASTER_AGENT_PING_TIMEOUT_MS", value)

			_, err := provideConfig()

			assert.ErrorContains(t, err, "WSMASTER_AGENT_PING_TIMEOUT_MS")
		})
	}
}
