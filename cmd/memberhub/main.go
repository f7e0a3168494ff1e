package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/memberhub/internal/interfaces/cli/migrate"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/operator"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/reconcile"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/seed"
	"github.com/orris-inc/memberhub/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "memberhub",
		Short: "memberhub - member accounting backend",
		Long:  `memberhub records member recharges and consumptions for a store front desk, with HTTP server, migration and maintenance commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		operator.NewCommand(),
		seed.NewCommand(),
		reconcile.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
