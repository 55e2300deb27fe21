package ctlcmd

import (
	"github.com/spf13/cobra"
	"net/http"
	"os"
	"time"
)

var rootCmd = &cobra.Command{
	Use:   "wsmasterctl",
	Short: "Workspace master cli",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			panic(err)
		}
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func newClient() *apiClient {
	baseURL := os.Getenv("WSMASTER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &apiClient{
		baseURL:    baseURL,
		token:      os.Getenv("WSMASTER_TOKEN"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
