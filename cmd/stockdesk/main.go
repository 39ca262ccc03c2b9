package main

import (
	"os"

	"github.com/spf13/cobra"

	"stockdesk/internal/interfaces/cli/migrate"
	"stockdesk/internal/interfaces/cli/server"
	"stockdesk/internal/interfaces/cli/user"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "stockdesk",
		Short:         "stockdesk - material request tracking for construction sites",
		Long:          `stockdesk tracks material requests from site applicants to the storeroom: tickets, status changes, comments and pickup proof.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	rootCmd.AddCommand(
		server.NewCommand(&configPath),
		migrate.NewCommand(&configPath),
		user.NewCommand(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
