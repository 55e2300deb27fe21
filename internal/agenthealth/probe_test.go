package agenthealth

import (
	"context"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestProber_AppendsTrailingSlash(t *testing.T) {
	var requestedPath, requestedMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		requestedMethod = r.Method
		_, _ = w.Write([]byte("response"))
	}))
	defer srv.Close()

	state := NewProber(srv.Client()).Probe(context.Background(), &types.Server{URL: srv.URL + "/api"}, time.Second)

	assert.Equal(t, "/api/", requestedPath)
	assert.Equal(t, http.MethodGet, requestedMethod)
	assert.Equal(t, &types.AgentState{Code: http.StatusOK, Reason: "response"}, state)
}

func TestProber_KeepsExistingTrailingSlash(t *testing.T) {
	var requestedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
	}))
	defer srv.Close()

	NewProber(nil).Probe(context.Background(), &types.Server{URL: srv.URL + "/api/"}, time.Second)

	assert.Equal(t, "/api/", requestedPath)
}

func TestProber_ReportsResponseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	defer srv.Close()

	state := NewProber(nil).Probe(context.Background(), &types.Server{URL: srv.URL}, time.Second)

	assert.Equal(t, http.StatusNotFound, state.Code)
	assert.Equal(t, "missing", state.Reason)
}

func TestProber_ConnectionErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	state := NewProber(nil).Probe(context.Background(), &types.Server{URL: url}, time.Second)

	assert.Equal(t, http.StatusServiceUnavailable, state.Code)
	assert.NotEmpty(t, state.Reason)
}

func TestProber_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	startedAt := time.Now()
	state := NewProber(nil).Probe(context.Background(), &types.Server{URL: srv.URL}, 20*time.Millisecond)

	assert.Equal(t, http.StatusServiceUnavailable, state.Code)
	assert.Less(t, time.Since(startedAt), time.Second)
}

func TestProber_NonPositiveTimeoutFallsBackToDefault(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	prober := NewProber(&http.Client{})
	prober.defaultTimeout = 20 * time.Millisecond

	for _, timeout := range []time.Duration{0, -time.Second} {
		startedAt := time.Now()
		state := prober.Probe(context.Background(), &types.Server{URL: srv.URL}, timeout)

		assert.Equal(t, http.StatusServiceUnavailable, state.Code)
		assert.Less(t, time.Since(startedAt), time.Second)
	}
}

func TestNewProber_DefaultClientIsBounded(t *testing.T) {
	prober := NewProber(nil)

	assert.Equal(t, DefaultProbeTimeout, prober.httpClient.Timeout)
	assert.Equal(t, DefaultProbeTimeout, prober.defaultTimeout)
}

func TestProber_TruncatesLongReasons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 1<<20)))
	}))
	defer srv.Close()

	state := NewProber(nil).Probe(context.Background(), &types.Server{URL: srv.URL}, time.Second)

	assert.Equal(t, http.StatusOK, state.Code)
	assert.Len(t, state.Reason, maxReasonSize)
}

func TestFindAgentEndpoint(t *testing.T) {
	agent := types.Server{Ref: types.WsAgentReference, URL: "http://agent"}
	servers := map[string]types.Server{
		"4401/tcp": agent,
		"22/tcp":   {Ref: "ssh", URL: "ssh://machine"},
	}

	assert.Equal(t, &agent, FindAgentEndpoint(servers))
	assert.Nil(t, FindAgentEndpoint(map[string]types.Server{"22/tcp": {Ref: "ssh"}}))
	assert.Nil(t, FindAgentEndpoint(nil))
}
