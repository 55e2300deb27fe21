package ctlcmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAPIClient_SendsTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))
		assert.Equal(t, "/ssh/machine/generate", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "default", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"name":"default","service":"machine"}`))
	}))
	defer srv.Close()

	client := &apiClient{baseURL: srv.URL, token: "token123", httpClient: srv.Client()}
	var pair sshPair
	err := client.do(context.Background(), http.MethodPost, "/ssh/machine/generate", map[string]string{"name": "default"}, &pair)

	require.NoError(t, err)
	assert.Equal(t, "default", pair.Name)
}

func TestAPIClient_ReturnsAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"workspace not found"}`))
	}))
	defer srv.Close()

	client := &apiClient{baseURL: srv.URL, httpClient: srv.Client()}
	err := client.do(context.Background(), http.MethodGet, "/workspace-agent-health/unknown", nil, &struct{}{})

	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "workspace not found", apiErr.Message)
}

func TestSSHListCmd_PrintsPlaceholderForMissingKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ssh/machine", r.URL.Path)
		_, _ = w.Write([]byte(`[{"name":"default","service":"machine","publicKey":"ssh-ed25519 AAAA"},{"name":"empty","service":"machine"}]`))
	}))
	defer srv.Close()
	t.Setenv("WSMASTER_URL", srv.URL)

	var output bytes.Buffer
	rootCmd.SetOut(&output)
	rootCmd.SetArgs([]string{"ssh", "list"})
	defer rootCmd.SetArgs(nil)
	defer rootCmd.SetOut(nil)

	require.NoError(t, Execute())
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"default", "machine", "ssh-ed25519", "AAAA"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"empty", "machine", "-"}, strings.Fields(lines[2]))
}

func TestMintToken(t *testing.T) {
	signed, err := mintToken("secret", "user123", time.Hour)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user123", claims.Subject)
}
