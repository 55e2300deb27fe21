package workspacekey

import (
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"strings"
)

// Resolve parses a composite workspace key: a bare workspace id,
// "namespace:name", or ":name" when the namespace comes from the caller.
func Resolve(key string) (types.WorkspaceKey, error) {
	parts := strings.Split(key, ":")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return types.WorkspaceKey{}, fmt.Errorf("%w: workspace id required to be set", types.ErrInvalidKeyFormat)
		}
		return types.WorkspaceKey{ID: parts[0]}, nil
	case 2:
		if parts[1] == "" {
			return types.WorkspaceKey{}, fmt.Errorf("%w: workspace name required to be set", types.ErrInvalidKeyFormat)
		}
		return types.WorkspaceKey{Namespace: parts[0], Name: parts[1]}, nil
	default:
		return types.WorkspaceKey{}, fmt.Errorf("%w: wrong composite key %s, format should be 'namespace:workspace_name'",
			types.ErrInvalidKeyFormat, key)
	}
}
