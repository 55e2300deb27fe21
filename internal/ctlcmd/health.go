package ctlcmd

import (
	"encoding/json"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/spf13/cobra"
	"net/http"
	"net/url"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "health <workspace-key> [agent-id]",
		Short: "Get the health of the agents of a workspace",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/workspace-agent-health/" + url.PathEscape(args[0])
			if len(args) == 2 {
				path += "/" + url.PathEscape(args[1])
			}

			var state types.AgentHealthState
			if err := newClient().do(cmd.Context(), http.MethodGet, path, nil, &state); err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(state)
		},
	})
}
