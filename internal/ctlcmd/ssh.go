package ctlcmd

import (
	"fmt"
	"github.com/baepo-cloud/baepo-wsmaster/internal/types"
	"github.com/baepo-cloud/baepo-wsmaster/internal/typeutil"
	"github.com/spf13/cobra"
	"net/http"
	"net/url"
	"text/tabwriter"
)

type sshPair struct {
	Service    string  `json:"service"`
	Name       string  `json:"name"`
	PublicKey  *string `json:"publicKey"`
	PrivateKey *string `json:"privateKey"`
}

func init() {
	var service string
	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Manage ssh pairs",
	}
	sshCmd.PersistentFlags().StringVar(&service, "service", types.SSHServiceMachine, "service owning the ssh pairs")

	sshCmd.AddCommand(&cobra.Command{
		Use:   "generate <name>",
		Short: "Generate an ssh pair and print its private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pair sshPair
			err := newClient().do(cmd.Context(), http.MethodPost, "/ssh/"+url.PathEscape(service)+"/generate",
				map[string]string{"name": args[0]}, &pair)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), typeutil.Deref(pair.PrivateKey))
			return nil
		},
	})

	sshCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List ssh pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pairs []sshPair
			err := newClient().do(cmd.Context(), http.MethodGet, "/ssh/"+url.PathEscape(service), nil, &pairs)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tSERVICE\tPUBLIC KEY")
			for _, pair := range pairs {
				publicKey := typeutil.Deref(pair.PublicKey)
				if publicKey == "" {
					publicKey = "-"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", pair.Name, pair.Service, publicKey)
			}
			return writer.Flush()
		},
	})

	rootCmd.AddCommand(sshCmd)
}
