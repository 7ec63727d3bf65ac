package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the Interview Service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := newClient(cfg, logger).Ping(cmd.Context())
		if err != nil {
			return fmt.Errorf("interview service at %s: %w", cfg.API.BaseURL, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}
