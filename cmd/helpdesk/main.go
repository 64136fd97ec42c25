package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/helpdesk-inc/helpdesk/internal/interfaces/cli/migrate"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/cli/server"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/cli/user"
	"github.com/helpdesk-inc/helpdesk/internal/interfaces/cli/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "helpdesk",
		Short:        "Helpdesk - support ticket tracker",
		Long:         `Helpdesk takes support tickets from anonymous users and gives administrators a console to triage and answer them.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		user.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
