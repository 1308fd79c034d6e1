package main

import (
	"os"

	"github.com/spf13/cobra"

	"supportdesk/internal/interfaces/cli/migrate"
	"supportdesk/internal/interfaces/cli/server"
	"supportdesk/internal/interfaces/cli/token"
	"supportdesk/internal/interfaces/cli/watch"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "supportdesk",
		Short: "Support desk ticket conversation service",
		Long:  `supportdesk serves the ticket conversation API and ships the tools around it: schema migrations, development tokens and a terminal conversation client.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		token.NewCommand(),
		watch.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
