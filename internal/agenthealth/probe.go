package agenthealth

import (
	"context"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultProbeTimeout = time.Second

	maxReasonSize = 4 << 10
)

type Prober struct {
	httpClient     *http.Client
	defaultTimeout time.Duration
}

func NewProber(httpClient *http.Client) *Prober {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultProbeTimeout}
	}
	return &Prober{
		httpClient:     httpClient,
		defaultTimeout: DefaultProbeTimeout,
	}
}

// Probe pings the server and reports its answer. Transport failures become a
// 503 state carrying the failure message. A non-positive timeout falls back to
// DefaultProbeTimeout.
func (p *Prober) Probe(ctx context.Context, server *types.Server, timeout time.Duration) *types.AgentState {
	if timeout <= 0 {
		timeout = p.defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pingURL(server.URL), nil)
	if err != nil {
		return unavailable(err)
	}

	res, err := p.httpClient.Do(req)
	if err != nil {
		return unavailable(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxReasonSize))
	if err != nil {
		return unavailable(err)
	}

	return &types.AgentState{
		Code:   res.StatusCode,
		Reason: string(body),
	}
}

// the agent router is mounted on the trailing slash, without it every ping
// answers not found
func pingURL(url string) string {
	if !strings.HasSuffix(url, "/") {
		return url + "/"
	}
	return url
}

func unavailable(err error) *types.AgentState {
	return &types.AgentState{
		Code:   http.StatusServiceUnavailable,
		Reason: err.Error(),
	}
}
