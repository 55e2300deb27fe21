package ctlcmd

import (
	"encoding/json"
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/nats-io/nats.go"
	"github.com/nrednav/cuid2"
	"github.com/spf13/cobra"
	"strings"
	"time"
)

func init() {
	var errorMessage string
	cmd := &cobra.Command{
		Use:   "event <workspace-id> <machine-id> <type>",
		Short: "Publish a machine status event over nats",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			event := &types.MachineStatusEvent{
				ID:          cuid2.Generate(),
				EventType:   types.MachineStatusEventType(strings.ToUpper(args[2])),
				WorkspaceID: args[0],
				MachineID:   args[1],
				Timestamp:   time.Now(),
			}
			if errorMessage != "" {
				event.Error = &errorMessage
			}

			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}

			conn, err := nats.Connect(getenv("WSMASTER_NATS_URL", nats.DefaultURL))
			if err != nil {
				return fmt.Errorf("failed to connect to nats: %w", err)
			}
			defer conn.Close()

			subject := getenv("WSMASTER_NATS_SUBJECT", "machines.events")
			if err = conn.Publish(subject, payload); err != nil {
				return fmt.Errorf("failed to publish event: %w", err)
			}
			if err = conn.Flush(); err != nil {
				return fmt.Errorf("failed to flush nats connection: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "published %s event %s on %s\n", event.EventType, event.ID, subject)
			return nil
		},
	}
	cmd.Flags().StringVar(&errorMessage, "error", "", "error message attached to the event")
	rootCmd.AddCommand(cmd)
}
