package agenthealth

import "github.com/baepo-cloud/baepo-wsmaster/internal/types"

// FindAgentEndpoint returns the server published under the workspace agent
// reference, or nil.
func FindAgentEndpoint(servers map[string]types.Server) *types.Server {
	for _, server := range servers {
		if server.Ref == types.WsAgentReference {
			return &server
		}
	}
	return nil
}
